package app

import (
	"context"

	"github.com/go-redis/redis/v8"

	"fantasy-gateway/internal/auth"
	"fantasy-gateway/internal/cache"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/config"
	"fantasy-gateway/internal/crypto"
	"fantasy-gateway/internal/database"
	"fantasy-gateway/internal/fetch"
	"fantasy-gateway/internal/locks"
	"fantasy-gateway/internal/oauth2"
	"fantasy-gateway/internal/provider"
	"fantasy-gateway/internal/ratelimit"
	"fantasy-gateway/internal/retry"
	"fantasy-gateway/internal/token"
	"fantasy-gateway/internal/warmer"
)

// App holds all the application dependencies
type App struct {
	Config       *config.Config
	DB           *database.DB
	RedisClient  *redis.Client // shared go-redis connection for cache/limits/locks
	LockManager  locks.Manager
	Encryptor    *crypto.TokenEncryptor
	Credentials  token.CredentialStore
	OAuthClient  *oauth2.Client
	TokenManager *token.Manager
	Limiter      ratelimit.Limiter
	Executor     *retry.Executor
	Cache        cache.Cache
	Provider     *provider.Client
	Fetcher      *fetch.Orchestrator
	Auth         *auth.Service
	Warmer       *warmer.Warmer
	Logger       logging.Logger

	announcer *token.RotationAnnouncer
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	// Initialize components in order of dependency
	if err := app.initializeStorage(); err != nil {
		return nil, err
	}

	if err := app.initializeRedis(); err != nil {
		return nil, err
	}

	if err := app.initializeCredentials(); err != nil {
		return nil, err
	}

	if err := app.initializeTokenManager(); err != nil {
		return nil, err
	}

	if err := app.initializeFetching(); err != nil {
		return nil, err
	}

	if err := app.initializeAuth(); err != nil {
		return nil, err
	}

	if err := app.initializeWarmer(); err != nil {
		return nil, err
	}

	return app, nil
}

// Start launches the background components. The token manager runs one
// synchronous check first so the gateway boots on fresh credentials when the
// store already holds them; a failed initial check is logged here and retried
// by the manager's own loop.
func (app *App) Start(ctx context.Context) {
	if err := app.TokenManager.Start(ctx); err != nil {
		app.Logger.Warn("Initial token check failed",
			logging.Field{Key: "error", Value: err.Error()})
	}
	if app.Warmer != nil {
		app.Warmer.Start(ctx)
	}
}

// Cleanup releases all resources
func (app *App) Cleanup() {
	if app.announcer != nil {
		app.announcer.Close()
	}
	if app.Cache != nil {
		app.Cache.Close()
	}
	if app.LockManager != nil {
		app.LockManager.Close()
	}
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
	if app.DB != nil {
		app.DB.Close()
	}
}
