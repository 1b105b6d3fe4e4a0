// Package retry executes provider operations with rate-limit admission,
// per-attempt timeouts and exponential backoff. Every attempt, including the
// first, must be admitted by the rate limiter before it runs, and every
// attempt that runs is recorded against the limiter whether it succeeds or
// fails.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/ratelimit"
)

// Config holds configuration for retrying provider operations.
type Config struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int

	// BackoffFactor is the multiplier for exponential backoff (e.g., 2.0 doubles delay)
	BackoffFactor float64

	// BaseDelay is the unit the backoff multiplies: delay = BaseDelay * BackoffFactor^attempt
	BaseDelay time.Duration

	// BaseTimeout bounds each individual attempt; zero disables the per-attempt timeout
	BaseTimeout time.Duration

	// MaxRateWait caps how long one execution waits for the rate window to reset
	MaxRateWait time.Duration

	// Retryable determines which errors trigger another attempt.
	// If nil, transient errors (connection, timeout) are retried.
	Retryable func(error) bool
}

// DefaultConfig returns a sensible default retry configuration.
//
// Default settings:
//   - MaxRetries: 3 (four attempts total)
//   - BackoffFactor: 2.0 with a 1 second base (1s, 2s, 4s between attempts)
//   - BaseTimeout: 30 seconds per attempt
//   - MaxRateWait: 5 minutes
//   - Retryable: errors.IsTransient
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		BaseDelay:     time.Second,
		BaseTimeout:   30 * time.Second,
		MaxRateWait:   5 * time.Minute,
		Retryable:     errors.IsTransient,
	}
}

// withDefaults fills zero values so a partially specified config behaves.
func (c Config) withDefaults() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = 2.0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxRateWait <= 0 {
		c.MaxRateWait = 5 * time.Minute
	}
	if c.Retryable == nil {
		c.Retryable = errors.IsTransient
	}
	return c
}

// Executor runs operations against the provider under admission control.
// The zero value is not usable; create one with NewExecutor.
type Executor struct {
	limiter ratelimit.Limiter
	config  Config
	logger  logging.Logger
}

// NewExecutor creates an Executor bound to the given rate limiter.
func NewExecutor(limiter ratelimit.Limiter, config Config, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Executor{
		limiter: limiter,
		config:  config.withDefaults(),
		logger:  logger,
	}
}

// Execute runs op with admission control, retries and backoff.
//
// Flow per attempt: admission check first (waiting out the rate window up to
// MaxRateWait if needed), then op under the per-attempt timeout, then Record.
// Transient failures back off and retry; anything else propagates immediately
// with the remaining retries unconsumed. After MaxRetries+1 failed attempts
// the last error is returned wrapped, still classifiable via errors.IsType.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	var lastErr error

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		if err := e.admit(ctx); err != nil {
			return nil, err
		}

		result, err := e.invoke(ctx, op)
		e.limiter.Record(ctx)

		if err == nil {
			return result, nil
		}
		lastErr = err

		if !e.config.Retryable(err) {
			return nil, err
		}

		if attempt == e.config.MaxRetries {
			break
		}

		delay := e.backoffDelay(attempt)
		e.logger.Warn("Transient provider failure, backing off",
			logging.Field{Key: "attempt", Value: attempt + 1},
			logging.Field{Key: "delay", Value: delay.String()},
			logging.Field{Key: "error", Value: err.Error()},
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// admit blocks until the limiter admits a request or the capped wait runs out.
// A denial after the capped wait fails fast without consuming any attempt.
func (e *Executor) admit(ctx context.Context) error {
	if e.limiter.CanAdmit(ctx) {
		return nil
	}

	wait := e.limiter.TimeUntilReset(ctx)
	if wait > e.config.MaxRateWait {
		wait = e.config.MaxRateWait
	}

	e.logger.Warn("Rate limit reached, waiting for window reset",
		logging.Field{Key: "wait", Value: wait.String()},
	)

	select {
	case <-ctx.Done():
		return fmt.Errorf("retry cancelled: %w", ctx.Err())
	case <-time.After(wait):
	}

	if e.limiter.CanAdmit(ctx) {
		return nil
	}

	return errors.RateLimitError("provider request budget")
}

// invoke runs op under the per-attempt timeout when one is configured.
func (e *Executor) invoke(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if e.config.BaseTimeout <= 0 {
		return op(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, e.config.BaseTimeout)
	defer cancel()

	return op(attemptCtx)
}

// backoffDelay computes the delay after a failed attempt (0-based).
func (e *Executor) backoffDelay(attempt int) time.Duration {
	return time.Duration(math.Pow(e.config.BackoffFactor, float64(attempt)) * float64(e.config.BaseDelay))
}
