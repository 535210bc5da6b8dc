package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	defaultEnvFile = ".env"
)

type Config struct {
	DesktopEnabled     bool   `env:"DESKTOP_NOTIFICATIONS,default=true"`
	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber   string `env:"TWILIO_FROM_NUMBER"`
	TwilioToNumber     string `env:"TWILIO_TO_NUMBER"`
	SlackWebhookURL    string `env:"SLACK_WEBHOOK_URL"`
	TeamsWebhookURL    string `env:"TEAMS_WEBHOOK_URL"`
	SendTimeoutSeconds int    `env:"NOTIFY_SEND_TIMEOUT_SECONDS,default=10"`
	Transport          string `env:"MCP_TRANSPORT,default=stdio"`
	HTTPPort           int    `env:"HTTP_PORT,default=8080"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`
}

// SMSChannel holds the Twilio credentials. It only exists when every field is set.
type SMSChannel struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
}

// WebhookChannel is a pre-shared incoming webhook.
type WebhookChannel struct {
	WebhookURL string
}

// Channels is the read-only view of which notification channels are configured.
// A nil block means the channel is not configured.
type Channels struct {
	Desktop bool
	SMS     *SMSChannel
	Slack   *WebhookChannel
	Teams   *WebhookChannel
}

// Load reads the optional dotenv files (".env" when none are given) and then
// unmarshals the process environment. Variables already present in the
// environment take precedence over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{defaultEnvFile}
	}

	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Transport)) {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid MCP_TRANSPORT %q: want %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.SendTimeoutSeconds <= 0 {
		return fmt.Errorf("NOTIFY_SEND_TIMEOUT_SECONDS must be > 0, got %d", c.SendTimeoutSeconds)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	return nil
}

// SendTimeout bounds each outbound provider call.
func (c *Config) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}

// TransportMode returns the normalized transport name.
func (c *Config) TransportMode() string {
	return strings.ToLower(strings.TrimSpace(c.Transport))
}

// Channels resolves which channels have all of their required settings.
func (c *Config) Channels() Channels {
	channels := Channels{Desktop: c.DesktopEnabled}

	if allSet(c.TwilioAccountSID, c.TwilioAuthToken, c.TwilioFromNumber, c.TwilioToNumber) {
		channels.SMS = &SMSChannel{
			AccountSID: strings.TrimSpace(c.TwilioAccountSID),
			AuthToken:  strings.TrimSpace(c.TwilioAuthToken),
			FromNumber: strings.TrimSpace(c.TwilioFromNumber),
			ToNumber:   strings.TrimSpace(c.TwilioToNumber),
		}
	}
	if allSet(c.SlackWebhookURL) {
		channels.Slack = &WebhookChannel{WebhookURL: strings.TrimSpace(c.SlackWebhookURL)}
	}
	if allSet(c.TeamsWebhookURL) {
		channels.Teams = &WebhookChannel{WebhookURL: strings.TrimSpace(c.TeamsWebhookURL)}
	}

	return channels
}

// Warnings lists partially configured channels and webhook URLs that look
// unusable. None of them is fatal: partial channels stay inactive and a bad
// URL fails when the channel sends.
func (c *Config) Warnings() []string {
	var warnings []string

	twilio := []string{c.TwilioAccountSID, c.TwilioAuthToken, c.TwilioFromNumber, c.TwilioToNumber}
	if anySet(twilio...) && !allSet(twilio...) {
		warnings = append(warnings, "SMS partially configured: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER and TWILIO_TO_NUMBER are all required")
	}
	for _, hook := range []struct{ key, value string }{
		{"SLACK_WEBHOOK_URL", c.SlackWebhookURL},
		{"TEAMS_WEBHOOK_URL", c.TeamsWebhookURL},
	} {
		if allSet(hook.value) && !usableURL(hook.value) {
			warnings = append(warnings, fmt.Sprintf("%s is not an absolute URL; that channel will fail on send", hook.key))
		}
	}
	return warnings
}

func usableURL(raw string) bool {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(raw))
	return err == nil && parsed.Host != ""
}

func allSet(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func anySet(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
