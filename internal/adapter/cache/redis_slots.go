package cache

import (
	"context"

	"github.com/luckyeats/food-order-api/internal/cart"
	"github.com/luckyeats/food-order-api/internal/session"
	"github.com/redis/go-redis/v9"
)

// RedisSlots stores one JSON value per named slot. Carts and session states
// both live here under their own key prefixes.
type RedisSlots struct {
	rdb *redis.Client
}

func NewRedisSlots(rdb *redis.Client) *RedisSlots {
	return &RedisSlots{rdb: rdb}
}

func (s *RedisSlots) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, slot).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (s *RedisSlots) Save(ctx context.Context, slot string, data []byte) error {
	return s.rdb.Set(ctx, slot, data, 0).Err()
}

var (
	_ cart.Storage    = (*RedisSlots)(nil)
	_ session.Storage = (*RedisSlots)(nil)
)
