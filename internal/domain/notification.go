package domain

import (
	"fmt"
	"strings"
)

// Priority represents the message priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// ParsePriorityFromString accepts any casing and surrounding whitespace.
// An empty input yields PriorityNormal.
func ParsePriorityFromString(s string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return PriorityNormal, nil
	}
	pr := Priority(normalized)
	if !pr.IsValid() {
		return "", fmt.Errorf("%w: invalid priority %q", ErrValidation, s)
	}
	return pr, nil
}

// Message is a single notification handed to every active provider.
type Message struct {
	Title    string
	Body     string
	Priority Priority
}

// NewMessage builds a validated Message. The priority defaults to normal.
func NewMessage(title, body, priority string) (Message, error) {
	pr, err := ParsePriorityFromString(priority)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		Title:    title,
		Body:     body,
		Priority: pr,
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	if !m.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, m.Priority)
	}
	return nil
}
