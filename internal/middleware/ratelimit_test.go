package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasy-gateway/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/leagues", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_BurstThenRejects(t *testing.T) {
	captureLogs(t)
	handler := RateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 3})(okHandler())

	for i := 0; i < 3; i++ {
		rec := doRequest(handler, nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	rec := doRequest(handler, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Burst"))

	var body models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit", body.Type)
}

func TestRateLimitMiddleware_SeparatesClientIdentities(t *testing.T) {
	captureLogs(t)
	handler := RateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 1})(okHandler())

	asClient := func(id string) func(*http.Request) {
		return func(r *http.Request) { r.Header.Set("X-Client-ID", id) }
	}

	assert.Equal(t, http.StatusOK, doRequest(handler, asClient("key-a")).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, asClient("key-a")).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, asClient("key-b")).Code)
}

func TestRateLimitMiddleware_FallsBackToRemoteAddr(t *testing.T) {
	captureLogs(t)
	handler := RateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 1})(okHandler())

	fromAddr := func(addr string) func(*http.Request) {
		return func(r *http.Request) { r.RemoteAddr = addr }
	}

	assert.Equal(t, http.StatusOK, doRequest(handler, fromAddr("10.1.1.1:40000")).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, fromAddr("10.1.1.1:40001")).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, fromAddr("10.2.2.2:40000")).Code)
}

func TestRateLimitMiddleware_UsesForwardedFor(t *testing.T) {
	captureLogs(t)
	handler := RateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 1})(okHandler())

	forwarded := func(chain string) func(*http.Request) {
		return func(r *http.Request) { r.Header.Set("X-Forwarded-For", chain) }
	}

	assert.Equal(t, http.StatusOK, doRequest(handler, forwarded("203.0.113.7, 10.0.0.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, forwarded("203.0.113.7, 10.9.9.9")).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, forwarded("203.0.113.8")).Code)
}

func TestRateLimitMiddleware_DisabledWhenZero(t *testing.T) {
	handler := RateLimitMiddleware(RateLimitConfig{RPS: 0})(okHandler())

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, doRequest(handler, nil).Code)
	}
}
