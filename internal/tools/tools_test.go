package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kursadbilgin/notify-mcp/internal/domain"
	"github.com/kursadbilgin/notify-mcp/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeDispatcher struct {
	names  []string
	err    error
	sent   []domain.Message
	panics bool
}

func (f *fakeDispatcher) Send(ctx context.Context, msg domain.Message) error {
	if f.panics {
		panic("dispatcher exploded")
	}
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeDispatcher) ProviderNames() []string { return f.names }

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) != 1 {
		t.Fatalf("content items = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func newHandlers(t *testing.T, d Dispatcher) *Handlers {
	t.Helper()
	h, err := NewHandlers(d, nil)
	if err != nil {
		t.Fatalf("NewHandlers() error = %v", err)
	}
	return h
}

func TestDefinitions(t *testing.T) {
	t.Parallel()

	defs := Definitions()
	if len(defs) != 2 {
		t.Fatalf("definitions = %d, want 2", len(defs))
	}

	send := defs[0]
	if send.Name != ToolSendNotification {
		t.Fatalf("defs[0].Name = %q, want %q", send.Name, ToolSendNotification)
	}
	required := map[string]bool{}
	for _, name := range send.InputSchema.Required {
		required[name] = true
	}
	if len(required) != 2 || !required["title"] || !required["message"] {
		t.Fatalf("required = %v, want title and message", send.InputSchema.Required)
	}
	if _, ok := send.InputSchema.Properties["priority"]; !ok {
		t.Fatal("priority property missing")
	}

	if defs[1].Name != ToolListProviders {
		t.Fatalf("defs[1].Name = %q, want %q", defs[1].Name, ToolListProviders)
	}
	if len(defs[1].InputSchema.Required) != 0 {
		t.Fatalf("list_providers required = %v, want none", defs[1].InputSchema.Required)
	}
}

func TestNewHandlersRequiresDispatcher(t *testing.T) {
	t.Parallel()

	if _, err := NewHandlers(nil, nil); err == nil {
		t.Fatal("expected error for nil dispatcher")
	}
}

func TestSendNotificationSuccess(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{names: []string{"Desktop", "Slack"}}
	h := newHandlers(t, d)

	result := h.Call(context.Background(), ToolSendNotification, map[string]any{
		"title":   "Done",
		"message": "Task complete",
	})

	if result.IsError {
		t.Fatalf("IsError = true, text = %q", resultText(t, result))
	}
	if got := resultText(t, result); got != "Notification sent successfully via: Desktop, Slack" {
		t.Fatalf("text = %q", got)
	}
	if len(d.sent) != 1 || d.sent[0].Priority != domain.PriorityNormal {
		t.Fatalf("sent = %+v, want one normal-priority message", d.sent)
	}
}

func TestSendNotificationPriority(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{names: []string{"Desktop"}}
	h := newHandlers(t, d)

	result := h.Call(context.Background(), ToolSendNotification, map[string]any{
		"title":    "Input needed",
		"message":  "Approve the plan",
		"priority": "high",
	})

	if result.IsError {
		t.Fatalf("IsError = true, text = %q", resultText(t, result))
	}
	if len(d.sent) != 1 || d.sent[0].Priority != domain.PriorityHigh {
		t.Fatalf("sent = %+v, want one high-priority message", d.sent)
	}
}

func TestSendNotificationArgumentErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing title", args: map[string]any{"message": "m"}, want: "Error: missing required argument: title"},
		{name: "missing message", args: map[string]any{"title": "t"}, want: "Error: missing required argument: message"},
		{name: "nil args", args: nil, want: "Error: missing required argument: title"},
		{name: "wrong type", args: map[string]any{"title": 42, "message": "m"}, want: "Error: argument title must be a string"},
		{name: "bad priority", args: map[string]any{"title": "t", "message": "m", "priority": "urgent"}, want: `Error: validation error: invalid priority "urgent"`},
		{name: "blank title", args: map[string]any{"title": "  ", "message": "m"}, want: "Error: validation error: title is required"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := &fakeDispatcher{}
			h := newHandlers(t, d)

			result := h.Call(context.Background(), ToolSendNotification, tc.args)

			if !result.IsError {
				t.Fatal("IsError = false, want true")
			}
			if got := resultText(t, result); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
			if len(d.sent) != 0 {
				t.Fatalf("sent = %+v, want nothing dispatched", d.sent)
			}
		})
	}
}

func TestSendNotificationAllProvidersFailed(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{
		names: []string{"Slack"},
		err:   fmt.Errorf("%w: %w", service.ErrAllProvidersFailed, errors.New("Slack notification failed: 500")),
	}
	h := newHandlers(t, d)

	result := h.Call(context.Background(), ToolSendNotification, map[string]any{"title": "t", "message": "m"})

	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	if got := resultText(t, result); got != "Error: all notification providers failed" {
		t.Fatalf("text = %q", got)
	}
}

func TestSendNotificationNoProviders(t *testing.T) {
	t.Parallel()

	h := newHandlers(t, &fakeDispatcher{})

	result := h.Call(context.Background(), ToolSendNotification, map[string]any{"title": "t", "message": "m"})

	if result.IsError {
		t.Fatal("IsError = true, want false")
	}
	if got := resultText(t, result); !strings.Contains(got, "No notification providers configured") {
		t.Fatalf("text = %q", got)
	}
}

func TestListProviders(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "configured", names: []string{"Desktop", "SMS"}, want: "Configured providers: Desktop, SMS"},
		{name: "empty", names: nil, want: "No providers configured. Check your .env file."},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHandlers(t, &fakeDispatcher{names: tc.names})
			result := h.Call(context.Background(), ToolListProviders, nil)
			if result.IsError {
				t.Fatal("IsError = true, want false")
			}
			if got := resultText(t, result); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnknownTool(t *testing.T) {
	t.Parallel()

	h := newHandlers(t, &fakeDispatcher{})

	result := h.Call(context.Background(), "send_fax", nil)

	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	if got := resultText(t, result); got != "Unknown tool: send_fax" {
		t.Fatalf("text = %q", got)
	}
}

func TestCallRecoversPanic(t *testing.T) {
	t.Parallel()

	h := newHandlers(t, &fakeDispatcher{panics: true})

	result := h.Call(context.Background(), ToolSendNotification, map[string]any{"title": "t", "message": "m"})

	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	if got := resultText(t, result); got != "Error: dispatcher exploded" {
		t.Fatalf("text = %q", got)
	}
}

func TestHandleUsesRequestParams(t *testing.T) {
	t.Parallel()

	h := newHandlers(t, &fakeDispatcher{names: []string{"Desktop"}})

	var request mcp.CallToolRequest
	request.Params.Name = ToolListProviders

	result, err := h.Handle(context.Background(), request)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := resultText(t, result); got != "Configured providers: Desktop" {
		t.Fatalf("text = %q", got)
	}
}
