// notify-mcp is a protocol server that lets an AI agent raise notifications
// on the desktop, by SMS, in Slack and in Microsoft Teams.
//
// Usage:
//
//	notify-mcp                       # serve tools over stdio
//	notify-mcp serve --transport http
//	notify-mcp send --title "Done" --message "Task complete" --priority high
//	notify-mcp providers
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "notify-mcp",
		Short: "Notification tools for AI agents",
		Long: `notify-mcp exposes send_notification and list_providers to AI agents.

Channels are enabled from environment variables (or a .env file):
  DESKTOP_NOTIFICATIONS    local OS notifications (default true)
  TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER, TWILIO_TO_NUMBER
  SLACK_WEBHOOK_URL
  TEAMS_WEBHOOK_URL`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional dotenv file")

	serve := serveCmd(&envFile)
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(sendCmd(&envFile))
	rootCmd.AddCommand(providersCmd(&envFile))

	return rootCmd
}
