package oauth2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasy-gateway/internal/common/errors"
)

func testConfig(tokenURL string) Config {
	return Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenURL,
		Timeout:      5 * time.Second,
	}
}

func newTestClient(t *testing.T, tokenURL string) *Client {
	t.Helper()

	client, err := NewClient(testConfig(tokenURL), nil)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"missing client id", Config{ClientSecret: "s", TokenURL: "http://example.com"}},
		{"missing client secret", Config{ClientID: "c", TokenURL: "http://example.com"}},
		{"missing token url", Config{ClientID: "c", ClientSecret: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config, nil)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
		})
	}
}

func TestClient_Refresh_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "new-access",
			"token_type":    "bearer",
			"expires_in":    3600,
			"refresh_token": "rotated-refresh",
			"scope":         "fspt-r",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	creds, err := client.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)

	assert.Equal(t, "new-access", creds.AccessToken)
	assert.Equal(t, "rotated-refresh", creds.RefreshToken)
	assert.Equal(t, "bearer", creds.TokenType)
	assert.Equal(t, "fspt-r", creds.Scope)
	assert.Equal(t, fixed.Add(time.Hour), creds.ExpiresAt)
}

func TestClient_Refresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "new-access",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	creds, err := client.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "old-refresh", creds.RefreshToken)
}

func TestClient_Refresh_EmptyRefreshToken(t *testing.T) {
	client := newTestClient(t, "http://example.com/token")

	_, err := client.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestClient_Refresh_InvalidGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "refresh token has been revoked",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Refresh(context.Background(), "revoked-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRevoked))
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestClient_Refresh_OtherOAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Refresh(context.Background(), "some-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRefresh))
}

func TestClient_Refresh_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Refresh(context.Background(), "some-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRefresh))
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Refresh_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Refresh(context.Background(), "some-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRefresh))
}

func TestClient_Refresh_BreakerOpensOnRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// OAuthConfig opens the circuit after five consecutive failures.
	for i := 0; i < 5; i++ {
		_, err := client.Refresh(context.Background(), "some-refresh")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeRefresh))
	}

	_, err := client.Refresh(context.Background(), "some-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUnavailable))
	assert.Equal(t, "open", client.BreakerStats().State)
}

func TestClient_Refresh_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Refresh(ctx, "some-refresh")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRefresh))
}
