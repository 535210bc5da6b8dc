package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kursadbilgin/notify-mcp/internal/handler"
	"github.com/kursadbilgin/notify-mcp/internal/observability"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPApp wires the tool, provider, health and metrics routes.
func NewHTTPApp(
	caller handler.ToolCaller,
	providers handler.ProviderLister,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*fiber.App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "notify-mcp",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
	app.Use(recover.New())
	if metrics != nil {
		app.Use(metrics.HTTPMiddleware())
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	handler.RegisterHealthRoutes(app, providers)
	if err := handler.RegisterToolRoutes(app, caller, providers); err != nil {
		return nil, err
	}

	return app, nil
}

// ServeHTTP listens on port until ctx is cancelled, then shuts down gracefully.
// ready, when set, runs once the listener is bound.
func ServeHTTP(ctx context.Context, app *fiber.App, port int, logger *zap.Logger, ready func()) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http transport failed: %w", err)
	}
	logger.Info("http transport listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down http transport")
		err := app.ShutdownWithTimeout(shutdownTimeout)
		_ = ln.Close()
		if err != nil {
			return fmt.Errorf("http shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http transport failed: %w", err)
		}
		return nil
	}
}
