package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kursadbilgin/notify-mcp/internal/config"
	"github.com/kursadbilgin/notify-mcp/internal/tools"
	"github.com/kursadbilgin/notify-mcp/internal/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(envFile *string) *cobra.Command {
	var transportFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notification tools",
		Long: `Serve send_notification and list_providers.

The stdio transport speaks the agent protocol on stdin/stdout. The http
transport exposes POST /v1/tools/:name, /v1/providers, /livez, /readyz
and /metrics on HTTP_PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			mode := rt.cfg.TransportMode()
			if flag := strings.ToLower(strings.TrimSpace(transportFlag)); flag != "" {
				mode = flag
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, rt, mode)
		},
	}

	cmd.Flags().StringVar(&transportFlag, "transport", "", "Transport to serve: stdio or http (default from MCP_TRANSPORT)")
	return cmd
}

func serve(ctx context.Context, rt *runtime, mode string) error {
	handlers, err := tools.NewHandlers(rt.dispatcher, rt.logger)
	if err != nil {
		return err
	}

	started := func() {
		rt.logger.Info("notify-mcp started",
			zap.String("version", version),
			zap.String("transport", mode),
			zap.String("providers", providerSummary(rt.dispatcher.ProviderNames())),
		)
	}

	switch mode {
	case config.TransportStdio:
		return transport.ServeStdio(ctx, transport.NewMCPServer(handlers, version), os.Stdin, os.Stdout, rt.logger, started)
	case config.TransportHTTP:
		app, err := transport.NewHTTPApp(handlers, rt.dispatcher, rt.metrics, rt.logger)
		if err != nil {
			return err
		}
		return transport.ServeHTTP(ctx, app, rt.cfg.HTTPPort, rt.logger, started)
	default:
		return fmt.Errorf("unknown transport %q", mode)
	}
}
