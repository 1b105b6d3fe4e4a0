// Package token owns the gateway's provider credentials: the Credentials
// value itself, durable stores that survive restarts, mirrors that copy
// rotated credentials to secondary consumers, and the lifecycle Manager
// that keeps the access token fresh in the background.
//
// # Credential model
//
// Credentials are replaced as a whole on every rotation and never patched
// field by field. Readers always see either the old set or the new set,
// guarded by the Manager's mutex.
//
// # Durable storage
//
// The CredentialStore interface persists four keys: ACCESS_TOKEN,
// REFRESH_TOKEN, TOKEN_TYPE and TOKEN_TIMESTAMP (the absolute Unix second
// the access token expires). Load always reads the backing medium so edits
// made by other processes, such as a manual re-authorization writing a new
// refresh token, are picked up on the next cycle.
//
// Two implementations are provided:
//   - EnvFileStore: a .env-format file via godotenv
//   - SettingsStore: the settings table from internal/database, with values
//     optionally encrypted by internal/crypto
//
// # Lifecycle
//
//	store := token.NewEnvFileStore(".env")
//	manager, err := token.NewManager(store, refresher, token.ManagerConfig{}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.Start(ctx); err != nil {
//	    logger.Warn("initial token check failed", logging.Field{Key: "error", Value: err.Error()})
//	}
//	defer manager.Stop()
//
//	creds, err := manager.ValidCredentials(ctx)
//	if err == nil {
//	    req.Header.Set("Authorization", creds.AuthorizationValue())
//	}
package token

import (
	"fmt"
	"time"
)

// Credentials is one complete set of provider OAuth2 credentials.
type Credentials struct {
	// AccessToken is the bearer token presented to the provider API.
	AccessToken string `json:"access_token"`
	// RefreshToken is exchanged at the token endpoint for a new access token.
	RefreshToken string `json:"refresh_token"`
	// TokenType is how the access token is used, typically "bearer".
	TokenType string `json:"token_type"`
	// ExpiresAt is the absolute time the access token expires.
	ExpiresAt time.Time `json:"expires_at"`
	// Scope is the space-separated grant scope, when the provider returns one.
	Scope string `json:"scope,omitempty"`
}

// TimeUntilExpiry returns how long the access token remains valid at now.
// Expired or zero-expiry credentials return a non-positive duration.
func (c *Credentials) TimeUntilExpiry(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// NeedsRefresh reports whether the token is within buffer of expiring.
// Credentials without a known expiry always need a refresh.
func (c *Credentials) NeedsRefresh(now time.Time, buffer time.Duration) bool {
	return c.TimeUntilExpiry(now) <= buffer
}

// Expired reports whether the access token is already past its expiry.
func (c *Credentials) Expired(now time.Time) bool {
	return c.TimeUntilExpiry(now) <= 0
}

// AuthorizationValue formats the credentials as an Authorization header
// value per RFC 6750. An empty token type defaults to Bearer.
func (c *Credentials) AuthorizationValue() string {
	tokenType := c.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return fmt.Sprintf("%s %s", tokenType, c.AccessToken)
}

// AuthState describes where the credentials sit in their lifecycle. Only the
// Manager transitions it.
type AuthState int

const (
	// StateUnauthenticated means no credentials have been provided yet.
	StateUnauthenticated AuthState = iota
	// StateAuthenticated means the current access token is usable.
	StateAuthenticated
	// StateTokenExpired means the access token lapsed and refresh is pending
	// or failing transiently.
	StateTokenExpired
	// StateRefreshFailed means the provider permanently rejected the refresh
	// token; manual re-authorization is required.
	StateRefreshFailed
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateTokenExpired:
		return "token_expired"
	case StateRefreshFailed:
		return "refresh_failed"
	default:
		return "unknown"
	}
}
