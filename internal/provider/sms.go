package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/notify-mcp/internal/config"
	"github.com/kursadbilgin/notify-mcp/internal/domain"
)

const twilioAPIBase = "https://api.twilio.com"

// SMSProvider sends text messages through the Twilio Messages API.
type SMSProvider struct {
	client  *resty.Client
	baseURL string
	creds   config.SMSChannel
}

func NewSMSProvider(creds config.SMSChannel, client *resty.Client, timeout time.Duration) *SMSProvider {
	return &SMSProvider{
		client:  prepareClient(client, timeout),
		baseURL: twilioAPIBase,
		creds:   creds,
	}
}

func (p *SMSProvider) Name() string { return NameSMS }

func (p *SMSProvider) Send(ctx context.Context, msg domain.Message) error {
	if p.creds.AccountSID == "" || p.creds.AuthToken == "" || p.creds.FromNumber == "" || p.creds.ToNumber == "" {
		return misconfigured(NameSMS, fmt.Errorf("%w: account sid, auth token, from and to numbers are required", errMisconfigured))
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.creds.AccountSID, p.creds.AuthToken).
		SetFormData(map[string]string{
			"To":   p.creds.ToNumber,
			"From": p.creds.FromNumber,
			"Body": smsBody(msg),
		}).
		Post(p.endpoint())
	return checkResponse(NameSMS, response, err)
}

func (p *SMSProvider) endpoint() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(p.baseURL, "/"), url.PathEscape(p.creds.AccountSID))
}

func smsBody(msg domain.Message) string {
	return fmt.Sprintf("%s\n\n%s", msg.Title, msg.Body)
}
