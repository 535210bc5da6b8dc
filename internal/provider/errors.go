package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError describes a channel-level delivery failure.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 3)

	head := strings.TrimSpace(e.Message)
	if head == "" {
		head = "provider error"
	}
	parts = append(parts, head)

	if e.StatusCode > 0 {
		status := fmt.Sprintf("%d", e.StatusCode)
		if body := strings.TrimSpace(e.Body); body != "" {
			status = fmt.Sprintf("%s %s", status, body)
		}
		parts = append(parts, status)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode
	}
	return 0
}

// FailureReason is a low-cardinality label for metrics.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		return "error"
	}

	switch {
	case providerErr.StatusCode >= 500:
		return "status_5xx"
	case providerErr.StatusCode >= 400:
		return "status_4xx"
	case providerErr.StatusCode > 0:
		return "status_other"
	case errors.Is(providerErr.Cause, errMisconfigured):
		return "config"
	case providerErr.Cause != nil:
		return "transport"
	default:
		return "error"
	}
}
