package cache

import (
	"context"
	"time"

	"github.com/luckyeats/food-order-api/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisAttemptGuard holds a per-session in-flight lock so a double-click
// cannot fire two concurrent submissions. The TTL is a backstop for a
// process that dies mid-attempt.
type RedisAttemptGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisAttemptGuard(rdb *redis.Client, ttl time.Duration) *RedisAttemptGuard {
	return &RedisAttemptGuard{rdb: rdb, ttl: ttl}
}

func (g *RedisAttemptGuard) TryBegin(ctx context.Context, sessionID string) (bool, error) {
	return g.rdb.SetNX(ctx, "checkout:inflight:"+sessionID, "1", g.ttl).Result()
}

func (g *RedisAttemptGuard) End(ctx context.Context, sessionID string) {
	_ = g.rdb.Del(ctx, "checkout:inflight:"+sessionID).Err()
}

var _ usecase.AttemptGuard = (*RedisAttemptGuard)(nil)
