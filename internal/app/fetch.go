package app

import (
	"fantasy-gateway/internal/cache"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/fetch"
	"fantasy-gateway/internal/provider"
	"fantasy-gateway/internal/ratelimit"
	"fantasy-gateway/internal/retry"
)

// initializeFetching assembles the outbound pipeline: the sliding-window
// limiter, the retry executor over it, the response cache, the provider
// client and the orchestrator tying them together.
func (app *App) initializeFetching() error {
	rlConfig := ratelimit.Config{
		Capacity: app.Config.RateLimitCapacity,
		Window:   app.Config.RateLimitWindow,
	}

	var limiter ratelimit.Limiter
	var err error
	switch app.Config.RateLimitBackend {
	case "redis":
		limiter, err = ratelimit.NewRedisWindowLimiter(rlConfig, app.RedisClient)
	default:
		limiter, err = ratelimit.NewWindowLimiter(rlConfig)
	}
	if err != nil {
		return err
	}
	app.Limiter = limiter
	app.Logger.Info("Rate limiting: Enabled",
		logging.Field{Key: "capacity", Value: app.Config.RateLimitCapacity},
		logging.Field{Key: "window", Value: app.Config.RateLimitWindow.String()},
		logging.Field{Key: "backend", Value: app.Config.RateLimitBackend},
	)

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxRetries = app.Config.MaxRetries
	retryConfig.BackoffFactor = app.Config.BackoffFactor
	retryConfig.MaxRateWait = app.Config.MaxRateWait
	app.Executor = retry.NewExecutor(limiter, retryConfig, logging.GetGlobalLogger())

	cacheConfig := cache.DefaultConfig()
	cacheConfig.Backend = cache.Backend(app.Config.CacheBackend)
	cacheConfig.KeyPrefix = app.Config.CacheKeyPrefix
	cacheConfig.RedisClient = app.RedisClient
	responseCache, err := cache.New(cacheConfig)
	if err != nil {
		return err
	}
	app.Cache = responseCache
	app.Logger.Info("Cache: Enabled",
		logging.Field{Key: "backend", Value: app.Config.CacheBackend})

	providerClient, err := provider.NewClient(provider.Config{
		BaseURL: app.Config.ProviderBaseURL,
		Timeout: app.Config.RequestTimeout,
	}, app.TokenManager, logging.GetGlobalLogger())
	if err != nil {
		return err
	}
	app.Provider = providerClient

	orchestrator, err := fetch.NewOrchestrator(providerClient, responseCache, app.Executor, fetch.Config{
		MaxConcurrent:  app.Config.MaxConcurrentFetches,
		RequestTimeout: app.Config.RequestTimeout,
		BatchTimeout:   app.Config.BatchTimeout,
	}, logging.GetGlobalLogger())
	if err != nil {
		return err
	}
	app.Fetcher = orchestrator

	return nil
}
