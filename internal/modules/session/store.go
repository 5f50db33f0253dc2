// README: Session store contract; backends must serialize per-session access.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by read-only lookups of unknown session ids.
// The chat path never sees it: an unknown id there means "create new".
var ErrNotFound = errors.New("session not found")

// Store is the only shared mutable resource in the system.
//
// Contract: concurrent With calls for the same id serialize, so the second
// callback observes the first one's committed state; calls for different ids
// proceed independently. All returned sessions are snapshots; mutations are
// only persisted through With's callback returning nil.
type Store interface {
	// GetOrCreate returns a snapshot of the session with the given id,
	// creating it first when absent. An empty id gets a generated one.
	// The second result reports whether the session was just created.
	GetOrCreate(ctx context.Context, id string) (*Session, bool, error)

	// Get returns a snapshot of an existing session or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// With runs fn with exclusive access to the session's state, creating the
	// session when absent, and persists the result when fn returns nil.
	With(ctx context.Context, id string, fn func(*Session) error) error
}
