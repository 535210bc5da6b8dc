package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/notify-mcp/internal/domain"
)

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

// SlackProvider posts block-kit messages to a Slack incoming webhook.
type SlackProvider struct {
	client     *resty.Client
	webhookURL string
	now        func() time.Time
}

// NewSlackProvider stores webhookURL as given. An unusable URL is reported
// by Send as a failed delivery.
func NewSlackProvider(webhookURL string, client *resty.Client, timeout time.Duration) *SlackProvider {
	return &SlackProvider{
		client:     prepareClient(client, timeout),
		webhookURL: strings.TrimSpace(webhookURL),
		now:        time.Now,
	}
}

func (p *SlackProvider) Name() string { return NameSlack }

func (p *SlackProvider) Send(ctx context.Context, msg domain.Message) error {
	return postJSON(ctx, p.client, NameSlack, p.webhookURL, p.payload(msg))
}

func (p *SlackProvider) payload(msg domain.Message) slackPayload {
	return slackPayload{
		Text: msg.Title,
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: msg.Title, Emoji: true},
			},
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: msg.Body},
			},
			{
				Type: "context",
				Elements: []slackText{
					{Type: "mrkdwn", Text: fmt.Sprintf("Priority: %s | %s", msg.Priority, timestamp(p.now))},
				},
			},
		},
	}
}
