// Package cache stores raw provider responses keyed by derived fetch keys,
// with TTL expiry and tag-based invalidation.
//
// This package wraps battle-tested caching libraries:
//   - github.com/patrickmn/go-cache for local in-memory caching
//   - github.com/go-redis/redis/v8 for distributed Redis caching
//
// Values are opaque byte slices. Each entry may carry tags (league key,
// operation name) so related entries can be dropped together when a roster
// move or trade makes them stale.
//
// Cache failures are soft by contract: a read error is a miss, a write error
// is reported to the caller to log and ignore. A dead cache degrades
// performance, never correctness.
//
// Usage:
//
//	// Memory cache
//	c := cache.NewMemoryCache(5*time.Minute, 10*time.Minute)
//	c.Set(ctx, "key", payload, time.Hour, []string{"league:nfl.l.123"})
//	val, found := c.Get(ctx, "key")
//
//	// Redis cache
//	c := cache.NewRedisCache(redisClient, "fantasy:")
//
//	// Using factory
//	config := cache.Config{
//		Backend:     cache.BackendRedis,
//		KeyPrefix:   "fantasy:",
//		RedisClient: redisClient,
//	}
//	c, err := cache.New(config)
package cache
