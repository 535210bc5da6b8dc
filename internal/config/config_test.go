package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var managedKeys = []string{
	"DESKTOP_NOTIFICATIONS",
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"TWILIO_FROM_NUMBER",
	"TWILIO_TO_NUMBER",
	"SLACK_WEBHOOK_URL",
	"TEAMS_WEBHOOK_URL",
	"NOTIFY_SEND_TIMEOUT_SECONDS",
	"MCP_TRANSPORT",
	"HTTP_PORT",
	"LOG_LEVEL",
}

// clearEnv unsets every variable Load reads and restores the previous values
// when the test ends, including anything a dotenv file injected.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		prev, had := os.LookupEnv(key)
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
				return
			}
			_ = os.Unsetenv(key)
		})
	}
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.DesktopEnabled {
		t.Error("DesktopEnabled = false, want true")
	}
	if cfg.TransportMode() != TransportStdio {
		t.Errorf("Transport = %s, want stdio", cfg.Transport)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.SendTimeout() != 10*time.Second {
		t.Errorf("SendTimeout = %v, want 10s", cfg.SendTimeout())
	}

	channels := cfg.Channels()
	if channels.SMS != nil || channels.Slack != nil || channels.Teams != nil {
		t.Errorf("expected no remote channels, got %+v", channels)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESKTOP_NOTIFICATIONS", "false")
	t.Setenv("SLACK_WEBHOOK_URL", " https://hooks.example/x ")
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("NOTIFY_SEND_TIMEOUT_SECONDS", "3")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DesktopEnabled {
		t.Error("DesktopEnabled = true, want false")
	}
	if cfg.TransportMode() != TransportHTTP {
		t.Errorf("TransportMode = %s, want http", cfg.TransportMode())
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.SendTimeout() != 3*time.Second {
		t.Errorf("SendTimeout = %v, want 3s", cfg.SendTimeout())
	}

	channels := cfg.Channels()
	if channels.Slack == nil || channels.Slack.WebhookURL != "https://hooks.example/x" {
		t.Fatalf("Slack = %+v, want trimmed webhook", channels.Slack)
	}
}

func TestLoad_InvalidTransport(t *testing.T) {
	clearEnv(t)
	t.Setenv("MCP_TRANSPORT", "grpc")

	if _, err := Load(noEnvFile(t)); err == nil {
		t.Fatal("expected error for unknown transport, got nil")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTIFY_SEND_TIMEOUT_SECONDS", "0")

	if _, err := Load(noEnvFile(t)); err == nil {
		t.Fatal("expected error for zero timeout, got nil")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.example/from-env")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "TEAMS_WEBHOOK_URL=https://teams.example/hook\nSLACK_WEBHOOK_URL=https://hooks.example/from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TeamsWebhookURL != "https://teams.example/hook" {
		t.Errorf("TeamsWebhookURL = %q, want value from file", cfg.TeamsWebhookURL)
	}
	if cfg.SlackWebhookURL != "https://hooks.example/from-env" {
		t.Errorf("SlackWebhookURL = %q, environment should win over file", cfg.SlackWebhookURL)
	}
}

func TestChannels_SMSRequiresAllFields(t *testing.T) {
	t.Parallel()

	full := Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "secret",
		TwilioFromNumber: "+15550001111",
		TwilioToNumber:   "+15550002222",
	}
	if sms := full.Channels().SMS; sms == nil || sms.ToNumber != "+15550002222" {
		t.Fatalf("SMS = %+v, want configured", sms)
	}
	if w := full.Warnings(); len(w) != 0 {
		t.Fatalf("Warnings() = %v, want none", w)
	}

	partial := full
	partial.TwilioToNumber = ""
	if sms := partial.Channels().SMS; sms != nil {
		t.Fatalf("SMS = %+v, want nil for partial config", sms)
	}
	if w := partial.Warnings(); len(w) != 1 {
		t.Fatalf("Warnings() = %v, want one SMS warning", w)
	}
}

func TestWarnings_UnusableWebhookKeepsChannelActive(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		SlackWebhookURL: "hooks.slack.com/services/x",
		TeamsWebhookURL: "https://example.webhook.office.com/hook",
	}

	channels := cfg.Channels()
	if channels.Slack == nil || channels.Slack.WebhookURL != "hooks.slack.com/services/x" {
		t.Fatalf("Slack = %+v, want active with the raw URL", channels.Slack)
	}
	if channels.Teams == nil {
		t.Fatal("Teams = nil, want active")
	}

	warnings := cfg.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "SLACK_WEBHOOK_URL") {
		t.Fatalf("Warnings() = %v, want one SLACK_WEBHOOK_URL warning", warnings)
	}
}

func TestChannels_EmptyConfig(t *testing.T) {
	t.Parallel()

	channels := (&Config{}).Channels()
	if channels.Desktop || channels.SMS != nil || channels.Slack != nil || channels.Teams != nil {
		t.Fatalf("Channels() = %+v, want nothing configured", channels)
	}
}
