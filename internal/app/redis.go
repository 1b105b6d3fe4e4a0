package app

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/locks"
)

// initializeRedis connects to Redis when an address is configured and picks
// the lock backend. Without Redis, locks are process-local no-ops and the
// redis cache and rate limit backends are unavailable.
func (app *App) initializeRedis() error {
	if app.Config.RedisAddress == "" {
		if app.Config.CacheBackend == "redis" {
			return errors.ConfigError("REDIS_ADDRESS is required when CACHE_BACKEND is 'redis'")
		}
		if app.Config.RateLimitBackend == "redis" {
			return errors.ConfigError("REDIS_ADDRESS is required when RATE_LIMIT_BACKEND is 'redis'")
		}
		app.LockManager = locks.NewNoopManager()
		app.Logger.Info("Redis: Not configured (single-instance mode)")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     app.Config.RedisAddress,
		Password: app.Config.RedisPassword,
		DB:       app.Config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return errors.ConnectionError("failed to connect to Redis", err)
	}

	app.RedisClient = redisClient
	app.Logger.Info("Redis: Connected",
		logging.Field{Key: "address", Value: app.Config.RedisAddress})

	lockManager, err := locks.New(locks.Config{
		Backend:     locks.BackendRedis,
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}
	app.LockManager = lockManager
	app.Logger.Info("Distributed locks: Enabled")

	return nil
}
