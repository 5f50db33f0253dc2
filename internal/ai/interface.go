package ai

import (
	"context"

	"tripscout/internal/types"
)

// Turn is one transcript entry handed to the oracle.
type Turn struct {
	Role    string
	Content string
}

// Extractor defines the contract with the natural-language extraction oracle.
// It re-parses the full conversation transcript every turn and returns a
// structured (possibly partial) travel intent guess.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Extractor interface {
	// ExtractTravelIntent analyzes the transcript and extracts a structured
	// intent. today is the reference date the oracle uses to resolve relative
	// temporal phrases ("next month", "this summer").
	ExtractTravelIntent(ctx context.Context, transcript []Turn, today types.Date) (*ExtractionResult, error)
}
