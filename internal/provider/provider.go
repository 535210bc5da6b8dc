package provider

import (
	"context"

	"github.com/kursadbilgin/notify-mcp/internal/domain"
)

// Provider delivers a message over one notification channel.
//
// Send performs a single delivery attempt and returns an error only when the
// channel itself rejected or failed the attempt. Implementations never retry.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg domain.Message) error
}

// Provider display names, also used as log and metric labels.
const (
	NameDesktop = "Desktop"
	NameSMS     = "SMS"
	NameSlack   = "Slack"
	NameTeams   = "Microsoft Teams"
)
