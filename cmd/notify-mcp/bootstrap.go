package main

import (
	"fmt"
	"strings"

	"github.com/kursadbilgin/notify-mcp/internal/config"
	"github.com/kursadbilgin/notify-mcp/internal/observability"
	"github.com/kursadbilgin/notify-mcp/internal/service"
	"go.uber.org/zap"
)

type runtime struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher *service.Dispatcher
}

func bootstrap(envFile string) (*runtime, func(), error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	cleanup := func() { _ = logger.Sync() }

	for _, warning := range cfg.Warnings() {
		logger.Warn("configuration warning", zap.String("warning", warning))
	}

	dispatcher, err := service.NewDispatcherFromConfig(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	metrics := observability.NewMetrics()
	dispatcher.SetMetrics(metrics)

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
		dispatcher: dispatcher,
	}, cleanup, nil
}

func providerSummary(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
