// Package tools exposes the notification dispatcher as agent tools.
//
// The same Handlers value backs both transports: the stdio protocol server
// registers one tool handler per definition, and the HTTP transport forwards
// POST /v1/tools/:name bodies to Call.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kursadbilgin/notify-mcp/internal/domain"
	"github.com/kursadbilgin/notify-mcp/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

const (
	ToolSendNotification = "send_notification"
	ToolListProviders    = "list_providers"
)

// Dispatcher is the subset of service.Dispatcher the tools need.
type Dispatcher interface {
	Send(ctx context.Context, msg domain.Message) error
	ProviderNames() []string
}

var _ Dispatcher = (*service.Dispatcher)(nil)

// Definitions returns the tool schemas advertised to agents.
func Definitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolSendNotification,
			mcp.WithDescription("Send a notification across all configured channels (desktop, SMS, Slack, Teams). "+
				"Use this when the agent is waiting for user input, has completed a task, or needs attention."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description(`The notification title (e.g., "Input Needed", "Task Complete")`),
			),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("The detailed notification message"),
			),
			mcp.WithString("priority",
				mcp.Enum(domain.PriorityLow.String(), domain.PriorityNormal.String(), domain.PriorityHigh.String()),
				mcp.Description("Notification priority level (default: normal)"),
			),
		),
		mcp.NewTool(ToolListProviders,
			mcp.WithDescription("List all configured notification providers"),
		),
	}
}

type Handlers struct {
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewHandlers(dispatcher Dispatcher, logger *zap.Logger) (*Handlers, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{dispatcher: dispatcher, logger: logger.Named("tools")}, nil
}

// Call runs the named tool. Every failure, including a panic, comes back as
// an error-flagged result rather than a Go error.
func (h *Handlers) Call(ctx context.Context, name string, args map[string]any) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("tool handler panicked", zap.String("tool", name), zap.Any("panic", r))
			result = mcp.NewToolResultError(fmt.Sprintf("Error: %v", r))
		}
	}()

	switch name {
	case ToolSendNotification:
		return h.sendNotification(ctx, args)
	case ToolListProviders:
		return h.listProviders()
	default:
		h.logger.Warn("unknown tool requested", zap.String("tool", name))
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name))
	}
}

// Handle adapts Call to the protocol server's tool handler signature.
func (h *Handlers) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.Call(ctx, request.Params.Name, request.GetArguments()), nil
}

func (h *Handlers) sendNotification(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	title, err := requiredString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
	body, err := requiredString(args, "message")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
	priority, err := optionalString(args, "priority")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}

	msg, err := domain.NewMessage(title, body, priority)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}

	if err := h.dispatcher.Send(ctx, msg); err != nil {
		if errors.Is(err, service.ErrAllProvidersFailed) {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %s", service.ErrAllProvidersFailed.Error()))
		}
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}

	names := h.dispatcher.ProviderNames()
	if len(names) == 0 {
		return mcp.NewToolResultText("No notification providers configured; nothing was sent.")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Notification sent successfully via: %s", strings.Join(names, ", ")))
}

func (h *Handlers) listProviders() *mcp.CallToolResult {
	names := h.dispatcher.ProviderNames()
	if len(names) == 0 {
		return mcp.NewToolResultText("No providers configured. Check your .env file.")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Configured providers: %s", strings.Join(names, ", ")))
}

func requiredString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string", key)
	}
	return value, nil
}

func optionalString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string", key)
	}
	return value, nil
}
