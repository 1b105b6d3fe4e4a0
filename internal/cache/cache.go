package cache

import (
	"context"
	"time"
)

// Cache defines the interface for response cache operations
type Cache interface {
	// Get returns the cached value for key, or false on a miss.
	// Backend failures surface as misses.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the given TTL and tags. Returned
	// errors are advisory; callers log and continue.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error

	// InvalidateTag removes every entry carrying tag and returns how many
	// entries were actually dropped.
	InvalidateTag(ctx context.Context, tag string) (int, error)

	// Entries returns the approximate number of cached entries.
	Entries() int

	// Close releases backend resources held by the cache.
	Close()
}
