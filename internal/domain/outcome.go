package domain

import "time"

// DispatchOutcome records how a single provider handled one dispatch.
type DispatchOutcome struct {
	Provider  string
	Succeeded bool
	Error     string
	Duration  time.Duration
}

// DispatchResult summarizes a whole fan-out.
type DispatchResult string

const (
	DispatchResultDelivered DispatchResult = "delivered"
	DispatchResultPartial   DispatchResult = "partial"
	DispatchResultFailed    DispatchResult = "failed"
	DispatchResultSkipped   DispatchResult = "skipped"
)

func (r DispatchResult) String() string { return string(r) }

// SummarizeOutcomes classifies a set of outcomes. No outcomes means nothing
// was attempted.
func SummarizeOutcomes(outcomes []DispatchOutcome) DispatchResult {
	if len(outcomes) == 0 {
		return DispatchResultSkipped
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded {
			failed++
		}
	}

	switch {
	case failed == 0:
		return DispatchResultDelivered
	case failed == len(outcomes):
		return DispatchResultFailed
	default:
		return DispatchResultPartial
	}
}

// FailedProviders returns the names of the providers whose attempt failed,
// in the order the outcomes were collected.
func FailedProviders(outcomes []DispatchOutcome) []string {
	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Succeeded {
			names = append(names, o.Provider)
		}
	}
	return names
}
