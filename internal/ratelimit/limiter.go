// Package ratelimit provides sliding-window admission control for outbound
// provider requests. A limiter tracks how many requests were recorded in the
// current window; callers ask CanAdmit before sending and Record after the
// request actually goes out, so local failures never consume budget.
//
// Two backends are available: WindowLimiter keeps the window in process
// memory, RedisWindowLimiter shares one window across instances through a
// Redis sorted set.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter is the admission-control interface consumed by the retry executor
// and the fetch orchestrator.
type Limiter interface {
	// CanAdmit reports whether another request fits in the current window.
	CanAdmit(ctx context.Context) bool

	// Record counts one request against the current window. Call it once
	// per request that is actually sent, regardless of outcome.
	Record(ctx context.Context)

	// TimeUntilReset returns how long until the current window expires.
	// Zero means a fresh window would start now.
	TimeUntilReset(ctx context.Context) time.Duration

	// Stats returns limiter statistics for monitoring.
	Stats() map[string]interface{}

	// Health checks whether the limiter backend is reachable.
	Health() error
}

// Config represents rate limiter configuration
type Config struct {
	// Capacity is the number of requests allowed per window
	Capacity int `json:"capacity"`

	// Window is the sliding window duration
	Window time.Duration `json:"window"`

	// KeyPrefix namespaces keys for the redis backend
	KeyPrefix string `json:"key_prefix,omitempty"`
}

// Validate validates the rate limiter configuration
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("rate limit capacity must be at least 1")
	}
	if c.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	return nil
}

// DefaultConfig returns a default rate limiter configuration
func DefaultConfig() Config {
	return Config{
		Capacity:  100,
		Window:    time.Hour,
		KeyPrefix: "ratelimit:",
	}
}

// WindowLimiter is an in-process sliding window limiter. The window resets
// lazily: any call that observes more than a full window since windowStart
// rolls the window forward before doing its work. Safe for concurrent use.
type WindowLimiter struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	count       int
	windowStart time.Time

	now func() time.Time
}

// NewWindowLimiter creates a local sliding window limiter.
func NewWindowLimiter(config Config) (*WindowLimiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	l := &WindowLimiter{
		capacity: config.Capacity,
		window:   config.Window,
		now:      time.Now,
	}
	l.windowStart = l.now()

	return l, nil
}

// maybeReset rolls the window forward once a full window has elapsed.
// Caller must hold mu.
func (l *WindowLimiter) maybeReset(now time.Time) {
	if now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}
}

// CanAdmit reports whether another request fits in the current window.
func (l *WindowLimiter) CanAdmit(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeReset(l.now())
	return l.count < l.capacity
}

// Record counts one request against the current window.
func (l *WindowLimiter) Record(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeReset(l.now())
	l.count++
}

// TimeUntilReset returns the remaining time in the current window, or zero
// when the window has already expired.
func (l *WindowLimiter) TimeUntilReset(ctx context.Context) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.window - l.now().Sub(l.windowStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stats returns rate limiter statistics
func (l *WindowLimiter) Stats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.capacity - l.count
	if remaining < 0 {
		remaining = 0
	}

	return map[string]interface{}{
		"backend":      "local",
		"capacity":     l.capacity,
		"window":       l.window.String(),
		"count":        l.count,
		"remaining":    remaining,
		"window_start": l.windowStart.Format(time.RFC3339),
	}
}

// Health reports limiter backend health. The local limiter is always healthy.
func (l *WindowLimiter) Health() error {
	return nil
}

// Ensure WindowLimiter implements Limiter interface
var _ Limiter = (*WindowLimiter)(nil)
