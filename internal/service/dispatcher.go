package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/notify-mcp/internal/config"
	"github.com/kursadbilgin/notify-mcp/internal/domain"
	"github.com/kursadbilgin/notify-mcp/internal/observability"
	"github.com/kursadbilgin/notify-mcp/internal/provider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrAllProvidersFailed is returned when every active provider failed.
var ErrAllProvidersFailed = errors.New("all notification providers failed")

// Dispatcher fans a message out to a fixed set of providers.
type Dispatcher struct {
	providers []provider.Provider
	names     []string
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
	newID     func() string
}

func NewDispatcher(providers []provider.Provider, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	active := make([]provider.Provider, 0, len(providers))
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		active = append(active, p)
		names = append(names, p.Name())
	}

	return &Dispatcher{
		providers: active,
		names:     names,
		logger:    logger.Named("dispatcher"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NewDispatcherFromConfig activates one provider per fully configured channel.
func NewDispatcherFromConfig(cfg *config.Config, logger *zap.Logger) (*Dispatcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return NewDispatcher(provider.FromChannels(cfg.Channels(), cfg.SendTimeout()), logger), nil
}

func (d *Dispatcher) SetMetrics(metrics *observability.Metrics) {
	if d == nil {
		return
	}
	d.metrics = metrics
}

// ProviderNames returns the active provider names in construction order.
func (d *Dispatcher) ProviderNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Send delivers msg through every active provider. It fails only when all of
// them failed; individual failures are logged.
func (d *Dispatcher) Send(ctx context.Context, msg domain.Message) error {
	_, err := d.Dispatch(ctx, msg)
	return err
}

// Dispatch is Send that also returns the per-provider outcomes, ordered like
// ProviderNames. With no active providers it returns no outcomes and no error.
func (d *Dispatcher) Dispatch(ctx context.Context, msg domain.Message) ([]domain.DispatchOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = observability.WithDispatchID(ctx, d.newID())
	logger := observability.WithContextLogger(d.logger, ctx)

	if len(d.providers) == 0 {
		logger.Warn("no notification providers configured")
		d.metrics.IncDispatch(domain.DispatchResultSkipped.String())
		return nil, nil
	}

	d.metrics.IncDispatchInFlight()
	defer d.metrics.DecDispatchInFlight()

	outcomes := make([]domain.DispatchOutcome, len(d.providers))
	errs := make([]error, len(d.providers))

	// Every goroutine returns nil so one failure never cancels its siblings.
	var g errgroup.Group
	for i, p := range d.providers {
		g.Go(func() error {
			outcomes[i], errs[i] = d.sendOne(ctx, logger, p, msg)
			return nil
		})
	}
	_ = g.Wait()

	result := domain.SummarizeOutcomes(outcomes)
	d.metrics.IncDispatch(result.String())

	switch result {
	case domain.DispatchResultFailed:
		logger.Error("all notification providers failed", zap.Int("providers", len(outcomes)))
		return outcomes, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
	case domain.DispatchResultPartial:
		logger.Warn("notification partially delivered",
			zap.Strings("failedProviders", domain.FailedProviders(outcomes)),
		)
	}

	return outcomes, nil
}

func (d *Dispatcher) sendOne(
	ctx context.Context,
	logger *zap.Logger,
	p provider.Provider,
	msg domain.Message,
) (outcome domain.DispatchOutcome, err error) {
	name := p.Name()
	start := d.now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s provider panicked: %v", name, r)
		}

		elapsed := d.now().Sub(start)
		outcome = domain.DispatchOutcome{
			Provider:  name,
			Succeeded: err == nil,
			Duration:  elapsed,
		}
		d.metrics.ObserveNotificationSendDuration(name, elapsed)

		if err != nil {
			outcome.Error = err.Error()
			d.metrics.IncNotificationFailed(name, provider.FailureReason(err))
			logger.Error("notification failed",
				zap.String("provider", name),
				zap.Error(err),
			)
			return
		}

		d.metrics.IncNotificationSent(name)
		logger.Info("notification sent",
			zap.String("provider", name),
			zap.Int64("durationMs", elapsed.Milliseconds()),
		)
	}()

	err = p.Send(ctx, msg)
	return outcome, err
}
