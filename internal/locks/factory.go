package locks

import (
	"fmt"

	"github.com/go-redis/redis/v8"

	"fantasy-gateway/internal/common/errors"
)

// Backend identifies a lock coordination backend.
type Backend string

const (
	// BackendLocal grants every lock without coordination. Suitable for
	// single-replica deployments.
	BackendLocal Backend = "local"

	// BackendRedis coordinates locks across replicas through Redis.
	BackendRedis Backend = "redis"
)

// Config selects and configures the lock backend.
type Config struct {
	Backend     Backend
	RedisClient *redis.Client `json:"-"`
}

// New creates a lock manager for the configured backend.
func New(config Config) (Manager, error) {
	switch config.Backend {
	case BackendLocal, "":
		return NewNoopManager(), nil
	case BackendRedis:
		if config.RedisClient == nil {
			return nil, errors.ConfigError("redis client required for redis lock backend")
		}
		return NewRedsyncManager(config.RedisClient)
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown lock backend: %s", config.Backend))
	}
}
