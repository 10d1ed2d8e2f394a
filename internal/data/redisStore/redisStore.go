package redisStore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// New connects to redis and verifies the connection with a short ping. An
// offline redis returns an error so the caller can fall back to the
// in-memory store.
func New(ctx context.Context, addr string, db int) (*Store, error) {
	logger := logger_i.NewLogger("Redis Store")

	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "error", err.Error())
		return nil, err
	}

	logger.Info("Redis store initialized", "addr", addr, "db", db)
	return &Store{client: client, logger: logger}, nil
}

// NewTestStore wraps an externally constructed client, for tests.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}
