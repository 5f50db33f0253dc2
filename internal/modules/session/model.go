// README: Conversation session aggregate and transcript records.
package session

import (
	"time"

	"github.com/google/uuid"

	"tripscout/internal/modules/intent"
	"tripscout/internal/modules/queryplan"
)

// Message is one transcript entry. The transcript is append-only.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one conversation's accumulated state, keyed by an opaque ID.
// It is mutated only under the store's per-session exclusion.
type Session struct {
	ID         string                 `json:"id"`
	Intent     intent.TravelIntent    `json:"intent"`
	Missing    intent.MissingFieldSet `json:"missing"`
	Transcript []Message              `json:"transcript"`

	// Queries holds the generated date queries; empty until the critical tier
	// is satisfied, and discarded again if a later merge reopens it.
	Queries          []queryplan.DateQuery `json:"queries,omitempty"`
	QueriesGenerated bool                  `json:"queries_generated"`
	PlanExplanation  string                `json:"plan_explanation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so snapshots handed to callers never alias the
// store's own state.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Transcript = append([]Message(nil), s.Transcript...)
	cp.Queries = append([]queryplan.DateQuery(nil), s.Queries...)
	cp.Intent.Destinations = append([]string(nil), s.Intent.Destinations...)
	cp.Intent.PreferredAirlines = append([]string(nil), s.Intent.PreferredAirlines...)
	cp.Missing.Critical = append([]intent.FieldID(nil), s.Missing.Critical...)
	cp.Missing.Optional = append([]intent.FieldID(nil), s.Missing.Optional...)
	if s.Intent.Budget != nil {
		v := *s.Intent.Budget
		cp.Intent.Budget = &v
	}
	if s.Intent.MaxStops != nil {
		v := *s.Intent.MaxStops
		cp.Intent.MaxStops = &v
	}
	return &cp
}

// AppendMessage records one transcript turn.
func (s *Session) AppendMessage(role, content string, at time.Time) {
	s.Transcript = append(s.Transcript, Message{Role: role, Content: content, Timestamp: at})
}

func newSession(id string, now time.Time) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		Missing:   intent.ComputeMissing(intent.TravelIntent{}),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
