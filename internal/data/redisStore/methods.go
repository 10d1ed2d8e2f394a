package redisStore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ListPushFront prepends a value, so index 0 is always the newest entry.
func (s *Store) ListPushFront(ctx context.Context, key string, value interface{}) error {
	return s.client.LPush(ctx, key, value).Err()
}

func (s *Store) ListRange(ctx context.Context, key string, start int64, stop int64) ([]string, error) {
	return s.client.LRange(ctx, key, start, stop).Result()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
