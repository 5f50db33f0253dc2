// README: Redis-backed search queue; workers consume batches with BRPOP.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripscout/internal/modules/queryplan"
)

const (
	queueKey = "search:queue"
	// Queue entries for sessions nobody is searching anymore age out.
	queueTTL = 24 * time.Hour
)

// Batch is the wire format pushed onto the worker queue.
type Batch struct {
	SessionID  string                `json:"session_id"`
	Queries    []queryplan.DateQuery `json:"queries"`
	EnqueuedAt time.Time             `json:"enqueued_at"`
}

// RedisDispatcher enqueues query batches onto a redis list.
type RedisDispatcher struct {
	redis *redis.Client
}

func NewRedisDispatcher(client *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{redis: client}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, sessionID string, queries []queryplan.DateQuery) error {
	if len(queries) == 0 {
		return nil
	}
	raw, err := json.Marshal(Batch{
		SessionID:  sessionID,
		Queries:    queries,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode search batch: %w", err)
	}
	pipe := d.redis.Pipeline()
	pipe.LPush(ctx, queueKey, raw)
	pipe.Expire(ctx, queueKey, queueTTL)
	_, err = pipe.Exec(ctx)
	return err
}
