// README: In-memory session store; per-session mutex plus a creation mutex.
package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions for the process lifetime. Per-session exclusion
// uses one mutex per key; the store-level mutex only guards the maps, so
// different sessions never block each other.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// ensure returns the session's lock, creating session and lock when absent.
func (s *MemoryStore) ensure(id string) (string, *sync.Mutex, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if _, ok := s.sessions[id]; ok {
			return id, s.locks[id], false
		}
	}
	sess := newSession(id, s.now())
	s.sessions[sess.ID] = sess
	s.locks[sess.ID] = &sync.Mutex{}
	return sess.ID, s.locks[sess.ID], true
}

func (s *MemoryStore) GetOrCreate(_ context.Context, id string) (*Session, bool, error) {
	id, _, isNew := s.ensure(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id].Clone(), isNew, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) With(_ context.Context, id string, fn func(*Session) error) error {
	id, lock, _ := s.ensure(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	working := s.sessions[id].Clone()
	s.mu.Unlock()

	if err := fn(working); err != nil {
		return err
	}

	working.UpdatedAt = s.now()
	s.mu.Lock()
	s.sessions[id] = working
	s.mu.Unlock()
	return nil
}
