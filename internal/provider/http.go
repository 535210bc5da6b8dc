package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultHTTPTimeout = 10 * time.Second

// newHTTPClient returns a resty client that never retries on its own.
func newHTTPClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	return client
}

func prepareClient(client *resty.Client, timeout time.Duration) *resty.Client {
	if client == nil {
		return newHTTPClient(timeout)
	}
	if client.GetClient().Timeout == 0 {
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client.SetTimeout(timeout)
	}
	client.SetRetryCount(0)
	return client
}

// errMisconfigured marks failures caused by channel settings that are present
// but unusable. They are reported when sending, never at construction.
var errMisconfigured = errors.New("channel misconfigured")

func validateEndpoint(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return "", fmt.Errorf("%w: webhook url is empty", errMisconfigured)
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: invalid webhook url: %w", errMisconfigured, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: invalid webhook url %q: missing host", errMisconfigured, trimmed)
	}
	return trimmed, nil
}

func misconfigured(name string, cause error) error {
	return &ProviderError{
		Provider: name,
		Message:  fmt.Sprintf("%s notification failed", name),
		Cause:    cause,
	}
}

// postJSON sends one JSON POST and maps an unusable endpoint, transport
// errors and non-2xx responses to a ProviderError labelled with name.
func postJSON(ctx context.Context, client *resty.Client, name, endpoint string, payload any) error {
	target, err := validateEndpoint(endpoint)
	if err != nil {
		return misconfigured(name, err)
	}

	response, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(target)
	return checkResponse(name, response, err)
}

func checkResponse(name string, response *resty.Response, err error) error {
	message := fmt.Sprintf("%s notification failed", name)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &ProviderError{Provider: name, Message: message, Cause: err}
		}
		return &ProviderError{Provider: name, Message: message, Cause: fmt.Errorf("request failed: %w", err)}
	}
	if response == nil {
		return &ProviderError{Provider: name, Message: message, Cause: errors.New("empty response")}
	}

	statusCode := response.StatusCode()
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}

	return &ProviderError{
		Provider:   name,
		StatusCode: statusCode,
		Body:       strings.TrimSpace(response.String()),
		Message:    message,
	}
}

func timestamp(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return now().Format("2006-01-02 15:04:05")
}
