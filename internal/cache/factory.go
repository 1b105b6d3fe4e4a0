package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Backend represents the cache backend type
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config holds cache configuration
type Config struct {
	Backend         Backend       `json:"backend"`
	DefaultTTL      time.Duration `json:"default_ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval,omitempty"`
	KeyPrefix       string        `json:"key_prefix,omitempty"`
	RedisClient     *redis.Client `json:"-"`
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		Backend:         BackendMemory,
		DefaultTTL:      time.Hour,
		CleanupInterval: 10 * time.Minute,
		KeyPrefix:       "fantasy:",
	}
}

// New creates a cache instance based on configuration
func New(config Config) (Cache, error) {
	switch config.Backend {
	case BackendMemory:
		ttl := config.DefaultTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		cleanup := config.CleanupInterval
		if cleanup <= 0 {
			cleanup = 10 * time.Minute
		}
		return NewMemoryCache(ttl, cleanup), nil

	case BackendRedis:
		if config.RedisClient == nil {
			return nil, fmt.Errorf("redis client required for redis cache")
		}
		return NewRedisCache(config.RedisClient, config.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Backend)
	}
}
