package ai

import (
	"tripscout/internal/modules/intent"
)

// ExtractionResult captures the structured output from the AI model.
type ExtractionResult struct {
	// Intent is the oracle's best guess at the traveler's request. Partial:
	// any field it could not infer stays at its zero value.
	Intent intent.TravelIntent `json:"intent"`

	// MissingInfo lists the fields the oracle believes are still unknown.
	// Informational only: the merge engine recomputes the authoritative set.
	MissingInfo []string `json:"missing_info"`

	// Confidence in the extraction accuracy, in [0,1].
	Confidence float64 `json:"confidence"`

	// Reply is a short conversational response to the user, asking for the
	// most important missing detail or confirming what was understood.
	Reply string `json:"reply"`
}

// ExtractOutcome wraps the oracle's answer with an explicit degraded marker,
// so every caller handles oracle failure the same way instead of re-growing
// ad hoc fallback chains.
type ExtractOutcome struct {
	Result   *ExtractionResult
	Degraded bool
	Reason   string
}

// Success wraps a healthy oracle answer.
func Success(res *ExtractionResult) ExtractOutcome {
	return ExtractOutcome{Result: res}
}

// DegradedOutcome marks a turn where the oracle was unreachable or returned
// malformed data. Result is nil; the merge engine accepts that and leaves the
// known intent untouched.
func DegradedOutcome(reason string) ExtractOutcome {
	return ExtractOutcome{Degraded: true, Reason: reason}
}
