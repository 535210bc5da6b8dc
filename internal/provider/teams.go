package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/notify-mcp/internal/domain"
)

const (
	adaptiveCardContentType = "application/vnd.microsoft.card.adaptive"
	adaptiveCardSchema      = "http://adaptivecards.io/schemas/adaptive-card.json"
	adaptiveCardVersion     = "1.4"
)

type teamsTextBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Weight   string `json:"weight,omitempty"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Spacing  string `json:"spacing,omitempty"`
	Wrap     bool   `json:"wrap"`
	IsSubtle bool   `json:"isSubtle,omitempty"`
}

type teamsCard struct {
	Schema  string           `json:"$schema"`
	Type    string           `json:"type"`
	Version string           `json:"version"`
	Body    []teamsTextBlock `json:"body"`
}

type teamsAttachment struct {
	ContentType string    `json:"contentType"`
	ContentURL  *string   `json:"contentUrl"`
	Content     teamsCard `json:"content"`
}

type teamsPayload struct {
	Type        string            `json:"type"`
	Attachments []teamsAttachment `json:"attachments"`
}

// TeamsProvider posts adaptive cards to a Teams Workflows webhook.
type TeamsProvider struct {
	client     *resty.Client
	webhookURL string
	now        func() time.Time
}

// NewTeamsProvider stores webhookURL as given. An unusable URL is reported
// by Send as a failed delivery.
func NewTeamsProvider(webhookURL string, client *resty.Client, timeout time.Duration) *TeamsProvider {
	return &TeamsProvider{
		client:     prepareClient(client, timeout),
		webhookURL: strings.TrimSpace(webhookURL),
		now:        time.Now,
	}
}

func (p *TeamsProvider) Name() string { return NameTeams }

func (p *TeamsProvider) Send(ctx context.Context, msg domain.Message) error {
	return postJSON(ctx, p.client, "Teams", p.webhookURL, p.payload(msg))
}

func (p *TeamsProvider) payload(msg domain.Message) teamsPayload {
	card := teamsCard{
		Schema:  adaptiveCardSchema,
		Type:    "AdaptiveCard",
		Version: adaptiveCardVersion,
		Body: []teamsTextBlock{
			{
				Type:   "TextBlock",
				Text:   msg.Title,
				Weight: "Bolder",
				Size:   "Large",
				Color:  priorityColor(msg.Priority),
				Wrap:   true,
			},
			{
				Type:    "TextBlock",
				Text:    msg.Body,
				Spacing: "Medium",
				Wrap:    true,
			},
			{
				Type:     "TextBlock",
				Text:     fmt.Sprintf("Priority: %s • %s", msg.Priority, timestamp(p.now)),
				Size:     "Small",
				Color:    "Accent",
				Spacing:  "Medium",
				Wrap:     true,
				IsSubtle: true,
			},
		},
	}

	return teamsPayload{
		Type: "message",
		Attachments: []teamsAttachment{
			{ContentType: adaptiveCardContentType, Content: card},
		},
	}
}

// priorityColor maps a priority onto an adaptive card color name.
func priorityColor(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "Attention"
	case domain.PriorityLow:
		return "Accent"
	default:
		return "Good"
	}
}
