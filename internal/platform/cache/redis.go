package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
)

// RedisStore backs the shared cache with Redis. Backend errors degrade to a
// miss so a cache outage never aborts a provider fetch.
type RedisStore struct {
	client *redis.Client
	logger *logging.Logger
}

func NewRedisStore(client *redis.Client, logger *logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" || s.client == nil {
		return nil, false
	}

	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WarnContext(ctx, "redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if key == "" || s.client == nil {
		return
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache set failed", "key", key, "error", err)
	}
}

// Ping probes the backend so startup can fall back to the in-process Store
// when Redis is unreachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
