// Package config provides configuration management for the fantasy gateway.
// It handles loading configuration from environment variables with sensible
// defaults and validates the configuration so the service starts safely.
//
// The gateway mediates access to an OAuth2-protected fantasy-sports provider,
// so most settings describe the provider endpoints, the token lifecycle, the
// outbound rate limit and the cache in front of provider calls.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FORMAT: "console" or "json" (default: console)
//
// Provider Configuration:
//   - PROVIDER_BASE_URL: Fantasy data provider API root
//     (default: https://fantasysports.yahooapis.com/fantasy/v2)
//   - PROVIDER_GAME_KEY: Game scope for user league listings (default: nfl)
//   - OAUTH_CLIENT_ID: OAuth2 client identifier (required)
//   - OAUTH_CLIENT_SECRET: OAuth2 client secret (required)
//   - OAUTH_TOKEN_URL: OAuth2 token endpoint
//     (default: https://api.login.yahoo.com/oauth2/get_token)
//
// Token Lifecycle:
//   - TOKEN_REFRESH_BUFFER: Lead time before expiry at which refresh triggers (default: 10m)
//   - TOKEN_CHECK_INTERVAL: Background check cadence (default: 5m)
//   - TOKEN_SLEEP_INCREMENT: Loop sleep granularity; stop latency bound (default: 1s)
//   - CREDENTIAL_STORE: "env" or "database" (default: env)
//   - CREDENTIALS_FILE: Env-format credentials file for the env store (default: .env)
//   - CREDENTIAL_ENCRYPTION_KEY: Encrypt credentials at rest in the database store
//   - LAUNCHER_CONFIG_PATH: Optional launcher config JSON to mirror credentials into
//   - LAUNCHER_CONFIG_ENTRY: Server entry name inside the launcher config (default: fantasy-gateway)
//
// Rotation Announcements (optional, best-effort):
//   - PUBSUB_PROJECT_ID: Google Cloud project for rotation events
//   - PUBSUB_TOPIC: Pub/Sub topic name (default: token-rotations)
//   - PUBSUB_CREDENTIALS_JSON: Service account JSON; omit to use ambient credentials
//
// Outbound Rate Limiting:
//   - RATE_LIMIT_CAPACITY: Provider requests per window (default: 100)
//   - RATE_LIMIT_WINDOW: Window duration (default: 1h)
//   - RATE_LIMIT_BACKEND: "local" or "redis" (default: local)
//   - MAX_RATE_WAIT: Cap on waiting for the window to reset (default: 5m)
//
// Fetching:
//   - MAX_CONCURRENT_FETCHES: In-flight provider call bound (default: 10)
//   - REQUEST_TIMEOUT: Per-attempt provider timeout (default: 30s)
//   - MAX_RETRIES: Retries after the first attempt (default: 3)
//   - BACKOFF_FACTOR: Exponential backoff base (default: 2.0)
//   - BATCH_TIMEOUT: Overall multi-entity fetch ceiling; 0 scales with batch size (default: 0)
//
// Cache:
//   - CACHE_BACKEND: "memory" or "redis" (default: memory)
//   - CACHE_KEY_PREFIX: Key prefix for the redis backend (default: fantasy:)
//   - REDIS_ADDRESS: Redis server address; unset runs without Redis
//     (required for the redis cache, rate limit and lock backends)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//
// Cache Warming:
//   - WARMER_ENABLED: Enable scheduled cache warming (default: false)
//   - WARMER_SCHEDULE: Cron expression (default: "0 */4 * * *")
//   - WARMER_LEAGUE_KEYS: Comma-separated league keys to keep warm
//
// API Security:
//   - API_AUTH_ENABLED: Require bearer tokens on /api routes (default: false)
//   - API_KEY: Shared key exchanged for session tokens (required when auth enabled)
//   - JWT_SECRET: Session token signing secret, min 32 chars (required when auth enabled)
//   - JWT_TTL: Session token lifetime (default: 24h)
//   - API_RATE_LIMIT_RPS: Per-client API request rate (default: 10)
//   - API_RATE_LIMIT_BURST: Per-client burst (default: 20)
//
// Database (credential settings store):
//   - DATABASE_TYPE: "sqlite" or "postgres" (default: sqlite)
//   - DATABASE_PATH: SQLite file path (default: ./fantasy_gateway.db)
//   - POSTGRES_DSN: PostgreSQL DSN (required for postgres)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the gateway. Fields are loaded
// from environment variables by Load and checked by Validate.
type Config struct {
	// Application settings
	Port      string
	LogLevel  string
	LogFormat string

	// Provider settings
	ProviderBaseURL   string
	ProviderGameKey   string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string

	// Token lifecycle
	TokenRefreshBuffer      time.Duration
	TokenCheckInterval      time.Duration
	TokenSleepIncrement     time.Duration
	CredentialStore         string
	CredentialsFile         string
	CredentialEncryptionKey string
	LauncherConfigPath      string
	LauncherConfigEntry     string

	// Rotation announcements
	PubSubProjectID       string
	PubSubTopic           string
	PubSubCredentialsJSON string

	// Outbound rate limiting
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	RateLimitBackend  string
	MaxRateWait       time.Duration

	// Fetching
	MaxConcurrentFetches int
	RequestTimeout       time.Duration
	MaxRetries           int
	BackoffFactor        float64
	BatchTimeout         time.Duration

	// Cache
	CacheBackend   string
	CacheKeyPrefix string
	RedisAddress   string
	RedisPassword  string
	RedisDB        int

	// Cache warming
	WarmerEnabled    bool
	WarmerSchedule   string
	WarmerLeagueKeys []string

	// API security
	APIAuthEnabled    bool
	APIKey            string
	JWTSecret         string
	JWTTTL            time.Duration
	APIRateLimitRPS   float64
	APIRateLimitBurst int

	// Database
	DatabaseType string
	DatabasePath string
	PostgresDSN  string
}

// Load creates a new Config instance with values loaded from environment
// variables. Unset variables fall back to defaults; call Validate on the
// returned Config before use.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		ProviderBaseURL:   getEnv("PROVIDER_BASE_URL", "https://fantasysports.yahooapis.com/fantasy/v2"),
		ProviderGameKey:   getEnv("PROVIDER_GAME_KEY", "nfl"),
		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", "https://api.login.yahoo.com/oauth2/get_token"),

		TokenRefreshBuffer:      getDurationEnv("TOKEN_REFRESH_BUFFER", 10*time.Minute),
		TokenCheckInterval:      getDurationEnv("TOKEN_CHECK_INTERVAL", 5*time.Minute),
		TokenSleepIncrement:     getDurationEnv("TOKEN_SLEEP_INCREMENT", time.Second),
		CredentialStore:         getEnv("CREDENTIAL_STORE", "env"),
		CredentialsFile:         getEnv("CREDENTIALS_FILE", ".env"),
		CredentialEncryptionKey: getEnv("CREDENTIAL_ENCRYPTION_KEY", ""),
		LauncherConfigPath:      getEnv("LAUNCHER_CONFIG_PATH", ""),
		LauncherConfigEntry:     getEnv("LAUNCHER_CONFIG_ENTRY", "fantasy-gateway"),

		PubSubProjectID:       getEnv("PUBSUB_PROJECT_ID", ""),
		PubSubTopic:           getEnv("PUBSUB_TOPIC", "token-rotations"),
		PubSubCredentialsJSON: getEnv("PUBSUB_CREDENTIALS_JSON", ""),

		RateLimitCapacity: getIntEnv("RATE_LIMIT_CAPACITY", 100),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitBackend:  getEnv("RATE_LIMIT_BACKEND", "local"),
		MaxRateWait:       getDurationEnv("MAX_RATE_WAIT", 5*time.Minute),

		MaxConcurrentFetches: getIntEnv("MAX_CONCURRENT_FETCHES", 10),
		RequestTimeout:       getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:           getIntEnv("MAX_RETRIES", 3),
		BackoffFactor:        getFloat64Env("BACKOFF_FACTOR", 2.0),
		BatchTimeout:         getDurationEnv("BATCH_TIMEOUT", 0),

		CacheBackend:   getEnv("CACHE_BACKEND", "memory"),
		CacheKeyPrefix: getEnv("CACHE_KEY_PREFIX", "fantasy:"),
		RedisAddress:   getEnv("REDIS_ADDRESS", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getIntEnv("REDIS_DB", 0),

		WarmerEnabled:    getBoolEnv("WARMER_ENABLED", false),
		WarmerSchedule:   getEnv("WARMER_SCHEDULE", "0 */4 * * *"),
		WarmerLeagueKeys: getListEnv("WARMER_LEAGUE_KEYS"),

		APIAuthEnabled:    getBoolEnv("API_AUTH_ENABLED", false),
		APIKey:            getEnv("API_KEY", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getDurationEnv("JWT_TTL", 24*time.Hour),
		APIRateLimitRPS:   getFloat64Env("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: getIntEnv("API_RATE_LIMIT_BURST", 20),

		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DATABASE_PATH", "./fantasy_gateway.db"),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getFloat64Env retrieves a float environment variable value or returns a default value
func getFloat64Env(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable value or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated environment variable as a slice,
// trimming whitespace and dropping empty entries
func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks required fields, value ranges and cross-field dependencies.
// The application should call this after Load and before starting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if c.OAuthClientID == "" {
		return fmt.Errorf("OAUTH_CLIENT_ID environment variable is required")
	}
	if c.OAuthClientSecret == "" {
		return fmt.Errorf("OAUTH_CLIENT_SECRET environment variable is required")
	}

	if c.TokenRefreshBuffer <= 0 {
		return fmt.Errorf("TOKEN_REFRESH_BUFFER must be a positive duration")
	}
	if c.TokenCheckInterval <= 0 {
		return fmt.Errorf("TOKEN_CHECK_INTERVAL must be a positive duration")
	}
	if c.TokenSleepIncrement <= 0 || c.TokenSleepIncrement > c.TokenCheckInterval {
		return fmt.Errorf("TOKEN_SLEEP_INCREMENT must be positive and no longer than TOKEN_CHECK_INTERVAL")
	}

	switch c.CredentialStore {
	case "env", "database":
	default:
		return fmt.Errorf("CREDENTIAL_STORE must be 'env' or 'database'")
	}

	if c.RateLimitCapacity < 1 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be a positive number")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}
	switch c.RateLimitBackend {
	case "local", "redis":
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be 'local' or 'redis'")
	}

	if c.MaxConcurrentFetches < 1 {
		return fmt.Errorf("MAX_CONCURRENT_FETCHES must be a positive number")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative")
	}
	if c.BackoffFactor < 1 {
		return fmt.Errorf("BACKOFF_FACTOR must be at least 1")
	}

	switch c.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("CACHE_BACKEND must be 'memory' or 'redis'")
	}
	if c.RedisDB < 0 || c.RedisDB > 15 {
		return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
	}

	if c.APIAuthEnabled {
		if c.APIKey == "" {
			return fmt.Errorf("API_KEY is required when API_AUTH_ENABLED is set")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long when API_AUTH_ENABLED is set")
		}
	}

	switch c.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DATABASE_TYPE must be 'sqlite' or 'postgres'")
	}
	if c.CredentialStore == "database" && c.DatabaseType == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when using the postgres credential store")
	}

	if c.CredentialEncryptionKey != "" && len(c.CredentialEncryptionKey) < 16 {
		return fmt.Errorf("CREDENTIAL_ENCRYPTION_KEY must be at least 16 characters when provided")
	}

	return nil
}
