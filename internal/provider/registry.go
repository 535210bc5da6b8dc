package provider

import (
	"time"

	"github.com/kursadbilgin/notify-mcp/internal/config"
)

// FromChannels instantiates one provider per configured channel in the fixed
// order Desktop, SMS, Slack, Microsoft Teams. Unconfigured channels are
// skipped. Activation depends only on presence; values are checked by Send.
func FromChannels(channels config.Channels, timeout time.Duration) []Provider {
	providers := make([]Provider, 0, 4)

	if channels.Desktop {
		providers = append(providers, NewDesktopProvider())
	}
	if channels.SMS != nil {
		providers = append(providers, NewSMSProvider(*channels.SMS, nil, timeout))
	}
	if channels.Slack != nil {
		providers = append(providers, NewSlackProvider(channels.Slack.WebhookURL, nil, timeout))
	}
	if channels.Teams != nil {
		providers = append(providers, NewTeamsProvider(channels.Teams.WebhookURL, nil, timeout))
	}

	return providers
}
