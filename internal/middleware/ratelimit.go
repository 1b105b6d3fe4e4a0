package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/models"
)

// RateLimitConfig sets the per-client token bucket for the API surface.
// A zero or negative RPS disables the middleware.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// clientLimiters holds one token bucket per client key.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

const maxTrackedClients = 1024

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	limiter, ok := c.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(c.rps, c.burst)
		c.limiters[key] = limiter
		if len(c.limiters) > maxTrackedClients {
			c.evictIdle()
		}
	}
	return limiter
}

// evictIdle drops limiters whose buckets are full again; those clients
// have not sent a request in at least a burst's worth of refill time.
func (c *clientLimiters) evictIdle() {
	for key, limiter := range c.limiters {
		if limiter.Tokens() >= float64(c.burst) {
			delete(c.limiters, key)
		}
	}
}

// clientKey groups requests by the authenticated client identity when
// present, falling back to the network address for anonymous traffic.
func clientKey(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware bounds how fast any single client can hit the API.
// It rejects over-limit requests with 429, a Retry-After hint and the
// standard error envelope.
func RateLimitMiddleware(config RateLimitConfig) func(http.Handler) http.Handler {
	if config.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if config.Burst < 1 {
		config.Burst = int(config.RPS)
		if config.Burst < 1 {
			config.Burst = 1
		}
	}

	limiters := &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(config.RPS),
		burst:    config.Burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			limiter := limiters.get(key)
			if !limiter.Allow() {
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := int(delay.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%g", config.RPS))
				w.Header().Set("X-RateLimit-Burst", strconv.Itoa(config.Burst))

				logging.Warn("API rate limit exceeded",
					logging.Field{Key: "client", Value: key},
					logging.Field{Key: "path", Value: r.URL.Path},
					logging.Field{Key: "retry_after", Value: retryAfter},
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(models.APIError{
					Error: "rate limit exceeded, retry later",
					Type:  string(errors.ErrTypeRateLimit),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
