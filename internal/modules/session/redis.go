// README: Redis-backed session store (JSON blobs with TTL, process-local locking).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:%s"
	// TTL bounds abandoned conversations (sessions should resolve well within 7 days).
	sessionTTL = 7 * 24 * time.Hour
)

// RedisStore keeps sessions as JSON blobs in redis. Per-session serialization
// is process-local, matching the single-process contract of the in-memory
// store; the redis backend trades restart survival for no cross-process
// guarantees.
type RedisStore struct {
	redis *redis.Client
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	now   func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		redis: client,
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}
}

func (s *RedisStore) keyLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPrefix, id)
}

func (s *RedisStore) load(ctx context.Context, id string) (*Session, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.redis.Set(ctx, sessionKey(sess.ID), raw, sessionTTL).Err()
}

func (s *RedisStore) GetOrCreate(ctx context.Context, id string) (*Session, bool, error) {
	if id != "" {
		lock := s.keyLock(id)
		lock.Lock()
		defer lock.Unlock()
		sess, err := s.load(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if err != ErrNotFound {
			return nil, false, err
		}
	}
	sess := newSession(id, s.now())
	lock := s.keyLock(sess.ID)
	if id == "" {
		lock.Lock()
		defer lock.Unlock()
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, false, err
	}
	return sess.Clone(), true, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

func (s *RedisStore) With(ctx context.Context, id string, fn func(*Session) error) error {
	if id == "" {
		created, _, err := s.GetOrCreate(ctx, id)
		if err != nil {
			return err
		}
		id = created.ID
	}
	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	working, err := s.load(ctx, id)
	if err == ErrNotFound {
		working = newSession(id, s.now())
	} else if err != nil {
		return err
	}

	if err := fn(working); err != nil {
		return err
	}

	working.UpdatedAt = s.now()
	return s.save(ctx, working)
}
