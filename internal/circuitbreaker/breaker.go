// Package circuitbreaker guards outbound calls with Sony's gobreaker. The
// gateway runs one breaker around provider HTTP calls and one around OAuth
// token refreshes so a provider outage fails fast instead of tying up
// fetch workers.
package circuitbreaker

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
)

// Config holds the tunables for one breaker.
type Config struct {
	// MaxFailures is the count of consecutive failures that opens the circuit.
	MaxFailures int
	// Timeout is how long the circuit stays open before probing half-open.
	Timeout time.Duration
	// MaxConcurrentRequests is the number of probe requests allowed half-open.
	MaxConcurrentRequests int
}

// DefaultConfig returns a conservative general-purpose configuration.
func DefaultConfig() Config {
	return Config{
		MaxFailures:           5,
		Timeout:               60 * time.Second,
		MaxConcurrentRequests: 1,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxFailures <= 0 {
		return fmt.Errorf("MaxFailures must be positive, got %d", c.MaxFailures)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("Timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("MaxConcurrentRequests must be positive, got %d", c.MaxConcurrentRequests)
	}
	return nil
}

// Profiles for the two call paths the gateway guards.
var (
	// HTTPConfig is for provider API calls, which should fail fast.
	HTTPConfig = Config{
		MaxFailures:           3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 2,
	}

	// OAuthConfig is for token endpoint calls, which are critical and
	// tolerate a slower recovery probe.
	OAuthConfig = Config{
		MaxFailures:           5,
		Timeout:               60 * time.Second,
		MaxConcurrentRequests: 1,
	}
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed means requests flow through normally.
	StateClosed State = iota
	// StateOpen means requests are rejected without being attempted.
	StateOpen
	// StateHalfOpen means a limited number of probes test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of one breaker for health reporting.
type Stats struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Failures  int    `json:"failures"`
	Successes int    `json:"successes"`
}

// Adapter wraps a gobreaker instance behind the gateway's error taxonomy.
type Adapter struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	logger  logging.Logger
}

// New creates a named circuit breaker. An invalid config is replaced with
// DefaultConfig rather than failing construction.
func New(name string, config Config, logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if err := config.Validate(); err != nil {
		logger.Warn("Invalid circuit breaker config, using defaults",
			logging.Field{Key: "breaker", Value: name},
			logging.Field{Key: "error", Value: err.Error()},
		)
		config = DefaultConfig()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(config.MaxConcurrentRequests),
		Interval:    time.Minute,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.MaxFailures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				logging.Field{Key: "breaker", Value: name},
				logging.Field{Key: "from", Value: from.String()},
				logging.Field{Key: "to", Value: to.String()},
			)
		},
		IsSuccessful: isSuccessful,
	}

	return &Adapter{
		name:    name,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// isSuccessful decides which errors count against the breaker. Responses the
// provider produced deliberately (bad request, missing resource, rejected
// credentials, throttling) mean the provider is up; only infrastructure
// failures should open the circuit.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	switch errors.GetType(err) {
	case errors.ErrTypeValidation, errors.ErrTypeNotFound, errors.ErrTypeAuth,
		errors.ErrTypeRateLimit, errors.ErrTypeRevoked:
		return true
	}
	return false
}

// Execute runs fn inside the breaker. When the circuit is open or the
// half-open probe allowance is exhausted the call is rejected with an
// unavailable error and fn is never invoked.
func (a *Adapter) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	result, err := a.breaker.Execute(fn)

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, errors.UnavailableError(fmt.Sprintf("circuit breaker %s", a.name), err)
	}

	return result, err
}

// State returns the current state of the circuit breaker.
func (a *Adapter) State() State {
	switch a.breaker.State() {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// IsOpen returns true if the circuit breaker is rejecting requests.
func (a *Adapter) IsOpen() bool {
	return a.breaker.State() == gobreaker.StateOpen
}

// Stats returns a snapshot for health reporting.
func (a *Adapter) Stats() Stats {
	counts := a.breaker.Counts()
	return Stats{
		Name:      a.name,
		State:     a.State().String(),
		Failures:  int(counts.TotalFailures),
		Successes: int(counts.TotalSuccesses),
	}
}
