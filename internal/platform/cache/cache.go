package cache

import (
	"context"
	"time"
)

// Cache is the shared key-value collaborator adapters use for read-through
// response caching. Implementations must be safe for concurrent use and must
// degrade to a miss on backend failure; a cache outage never aborts a fetch.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Nop is a Cache that stores nothing. Adapters configured without cache
// support fall back to it and always perform a live fetch.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)               { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration)       {}
