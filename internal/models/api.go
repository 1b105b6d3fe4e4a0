package models

import (
	"encoding/json"
	"time"
)

// API-friendly models for the HTTP surface and Swagger documentation.

// APIError is the JSON error envelope for non-2xx API responses.
type APIError struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// RefreshResponse reports the outcome of a forced token refresh.
type RefreshResponse struct {
	Success bool `json:"success"`
}

// TokenRequest exchanges the configured API key for an access token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse carries an issued API access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BatchRequest names the leagues and resource for one batch fetch.
type BatchRequest struct {
	LeagueKeys []string `json:"league_keys"`
	Resource   string   `json:"resource"`
	Week       int      `json:"week,omitempty"`
}

// BatchEntry is one league's slot in a batch response. Exactly one of Data
// and Error is set.
type BatchEntry struct {
	LeagueKey string          `json:"league_key"`
	Data      json.RawMessage `json:"data,omitempty" swaggertype:"object"`
	Error     *APIError       `json:"error,omitempty"`
}

// BatchResponse carries per-league batch results in request order.
type BatchResponse struct {
	Results []BatchEntry `json:"results"`
}

// CacheStatusResponse is the cache status snapshot.
type CacheStatusResponse struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Deduped       int64 `json:"deduped"`
	Invalidations int64 `json:"invalidations"`
	CachedEntries int   `json:"cached_entries"`
}

// InvalidateRequest names the cache tag to drop.
type InvalidateRequest struct {
	Tag string `json:"tag"`
}

// InvalidateResponse reports how many entries an invalidation removed.
type InvalidateResponse struct {
	Tag     string `json:"tag"`
	Removed int    `json:"removed"`
}

// TradeAnalyzeRequest describes a proposed trade between two teams.
type TradeAnalyzeRequest struct {
	TeamAKey   string   `json:"team_a_key"`
	TeamBKey   string   `json:"team_b_key"`
	TeamASends []string `json:"team_a_sends"`
	TeamBSends []string `json:"team_b_sends"`
	Week       int      `json:"week,omitempty"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	AuthState string            `json:"auth_state"`
	Breakers  map[string]string `json:"breakers,omitempty"`
	Cache     int               `json:"cached_entries"`
}
