package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tripscout/internal/types"
)

// GeminiProvider implements Extractor using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature: extraction should be stable, not creative.
	model.SetTemperature(0.2)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ExtractTravelIntent re-parses the full transcript into a structured intent.
func (p *GeminiProvider) ExtractTravelIntent(ctx context.Context, transcript []Turn, today types.Date) (*ExtractionResult, error) {
	fullPrompt := fmt.Sprintf("%s\n\nConversation:\n%s", buildSystemPrompt(today), formatTranscript(transcript))

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var result ExtractionResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v outside [0,1]", result.Confidence)
	}

	return &result, nil
}

func formatTranscript(transcript []Turn) string {
	var b strings.Builder
	for _, t := range transcript {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}

// buildSystemPrompt constructs the instructions for the AI.
func buildSystemPrompt(today types.Date) string {
	return fmt.Sprintf(`Role: You are the travel-intent extraction core for "tripscout", a trip planning assistant.
Context:
- Current Date: %s

Your task: read the WHOLE conversation below and extract the traveler's
accumulated intent as structured JSON. Re-derive every field from the full
transcript each time; later turns override earlier ones when they conflict.

RULES:

1. CRITICAL INFORMATION (always list in missing_info when absent):
   - Specific destination city/cities. A country or region alone ("California")
     is NOT a destination; list "destination" as missing.
   - Some form of date information: specific dates, a date range, a month
     ("June"), or "flexible" anchored to a month.
   - Trip length in days. Translate words: "a week" -> 7, "a weekend" -> 3,
     "two weeks" -> 14.

2. NON-CRITICAL INFORMATION (extract when present, never ask first):
   - origin, budget, travelers, preferred airlines, max stops.
   - "just me"/"alone" -> travelers 1; "couple" -> 2; "family" -> 4 unless stated.

3. DATES:
   - Resolve relative phrases against the Current Date and emit ISO dates
     (YYYY-MM-DD) in earliest_start/latest_start.
   - A bare month name goes into specific_month (capitalized English name),
     NOT into the date fields.
   - If the user says dates are "flexible" but names a timeframe, set
     flexible_dates true and keep the timeframe.
   - NEVER invent dates the user did not imply.

4. STATE PRESERVATION (CRITICAL):
   - If an earlier turn established a field and no later turn contradicts it,
     you MUST emit it again. Omitting a known field loses it.
   - If the user contradicts an earlier value ("actually, make it Lisbon"),
     emit only the newest value.

5. reply: ONE friendly conversational sentence or two. Ask for the single most
   important missing critical detail, or confirm the plan when nothing
   critical is missing. Never mention internal field names or JSON.

6. Output JSON Schema:
{
  "intent": {
    "origin": "string or omit",
    "destinations": ["string"],
    "budget": number or omit,
    "trip_length_days": integer or omit,
    "earliest_start": "YYYY-MM-DD" or omit,
    "latest_start": "YYYY-MM-DD" or omit,
    "specific_month": "string or omit",
    "flexible_dates": boolean,
    "travelers": integer or omit,
    "preferred_airlines": ["string"],
    "max_stops": integer or omit
  },
  "missing_info": ["string"],
  "confidence": number in [0,1],
  "reply": "string (user facing response)"
}
`, today)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
