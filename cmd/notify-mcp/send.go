package main

import (
	"fmt"
	"time"

	"github.com/kursadbilgin/notify-mcp/internal/domain"
	"github.com/spf13/cobra"
)

func sendCmd(envFile *string) *cobra.Command {
	var title, message, priority string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one notification to every configured channel",
		Long: `Send one notification and print how each provider handled it.

The command fails only when every configured provider failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := domain.NewMessage(title, message, priority)
			if err != nil {
				return err
			}

			rt, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			outcomes, err := rt.dispatcher.Dispatch(cmd.Context(), msg)

			out := cmd.OutOrStdout()
			if len(outcomes) == 0 && err == nil {
				fmt.Fprintln(out, "No notification providers configured; nothing was sent.")
				return nil
			}
			for _, o := range outcomes {
				if o.Succeeded {
					fmt.Fprintf(out, "%s: sent (%s)\n", o.Provider, o.Duration.Round(time.Millisecond))
					continue
				}
				fmt.Fprintf(out, "%s: failed: %s\n", o.Provider, o.Error)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Notification title (required)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Notification message (required)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(domain.PriorityNormal), "Priority: low, normal or high")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
