package provider

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/kursadbilgin/notify-mcp/internal/domain"
)

// notifyHook and alertHook wrap the OS notification facility; tests swap them.
var (
	notifyHook = func(title, message string) error { return beeep.Notify(title, message, "") }
	alertHook  = func(title, message string) error { return beeep.Alert(title, message, "") }
)

// DesktopProvider raises a local OS notification. High priority messages use
// an alert with sound.
type DesktopProvider struct {
	notify func(title, message string) error
	alert  func(title, message string) error
}

func NewDesktopProvider() *DesktopProvider {
	return &DesktopProvider{notify: notifyHook, alert: alertHook}
}

func (p *DesktopProvider) Name() string { return NameDesktop }

func (p *DesktopProvider) Send(ctx context.Context, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return &ProviderError{Provider: NameDesktop, Message: "Desktop notification failed", Cause: err}
	}

	show := p.notify
	if msg.Priority == domain.PriorityHigh {
		show = p.alert
	}

	if err := show(msg.Title, msg.Body); err != nil {
		return &ProviderError{
			Provider: NameDesktop,
			Message:  "Desktop notification failed",
			Cause:    fmt.Errorf("os notifier: %w", err),
		}
	}
	return nil
}
