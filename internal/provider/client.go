package provider

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fantasy-gateway/internal/circuitbreaker"
	"fantasy-gateway/internal/common/errors"
	commonhttp "fantasy-gateway/internal/common/http"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/token"
)

// TokenSource supplies credentials that are safe to present to the
// provider. Implemented by the token lifecycle manager.
type TokenSource interface {
	ValidCredentials(ctx context.Context) (*token.Credentials, error)
}

// Config holds the provider endpoint settings.
type Config struct {
	// BaseURL is the provider API root, without a trailing slash.
	BaseURL string
	// Timeout bounds one provider request end to end.
	Timeout time.Duration
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.ConfigError("provider base url is required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// Client calls the provider API. It renders registry paths, injects the
// Authorization header from the token source and maps response statuses
// onto the error taxonomy. All calls run inside a circuit breaker so a
// provider outage fails fast instead of piling up timeouts.
type Client struct {
	config     Config
	tokens     TokenSource
	httpClient *http.Client
	breaker    *circuitbreaker.Adapter
	logger     logging.Logger
}

// NewClient creates a provider client.
func NewClient(config Config, tokens TokenSource, logger logging.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, errors.ConfigError("token source is required")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Client{
		config:     config,
		tokens:     tokens,
		httpClient: commonhttp.NewHTTPClientWithTimeout(config.Timeout),
		breaker:    circuitbreaker.New("provider-api", circuitbreaker.HTTPConfig, logger),
		logger:     logger,
	}, nil
}

// Call performs op with the given parameters and returns the raw response
// body. Parsing into typed entities happens in internal/models; this layer
// only moves bytes and classifies failures.
func (c *Client) Call(ctx context.Context, op Operation, params map[string]string) ([]byte, error) {
	spec, ok := Lookup(op)
	if !ok {
		return nil, errors.ValidationError(fmt.Sprintf("unknown operation: %s", op))
	}

	path, err := spec.renderPath(op, params)
	if err != nil {
		return nil, err
	}

	creds, err := c.tokens.ValidCredentials(ctx)
	if err != nil {
		return nil, err
	}

	requestURL := c.config.BaseURL + path + "?format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.InternalError("failed to create provider request", err)
	}
	req.Header.Set("Authorization", creds.AuthorizationValue())
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		resp, httpErr := c.httpClient.Do(req)
		if httpErr != nil {
			return nil, c.classifyTransport(op, httpErr)
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, errors.ConnectionError(fmt.Sprintf("failed to read provider response for %s", op), readErr)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, c.classifyStatus(op, resp.StatusCode)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Provider call completed",
		logging.Field{Key: "operation", Value: string(op)},
		logging.Field{Key: "duration_ms", Value: time.Since(started).Milliseconds()},
	)
	return result.([]byte), nil
}

// classifyTransport maps a failed round trip onto the taxonomy: exceeded
// deadlines are timeouts, everything else is a connection failure. Both are
// transient and retried by the executor.
func (c *Client) classifyTransport(op Operation, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.TimeoutError(string(op))
	}
	var urlErr interface{ Timeout() bool }
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.TimeoutError(string(op))
	}
	return errors.ConnectionError(fmt.Sprintf("provider request failed for %s", op), err)
}

// classifyStatus maps a non-2xx provider response onto the taxonomy. 401
// and 403 come back as authentication errors so the caller can force a
// token refresh and retry once; 429 and 4xx responses are deliberate
// provider answers and never retried; 408 and 5xx are transient.
func (c *Client) classifyStatus(op Operation, status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.AuthError(fmt.Sprintf("provider rejected credentials for %s", op)).
			WithCode(strconv.Itoa(status))
	case status == http.StatusNotFound:
		return errors.NotFoundError(string(op))
	case status == http.StatusTooManyRequests:
		return errors.RateLimitError(string(op))
	case status == http.StatusRequestTimeout:
		return errors.TimeoutError(string(op))
	case status >= 500:
		return errors.ConnectionError(fmt.Sprintf("provider returned status %d for %s", status, op), nil).
			WithCode(strconv.Itoa(status))
	default:
		return errors.ValidationError(fmt.Sprintf("provider rejected request for %s with status %d", op, status)).
			WithCode(strconv.Itoa(status))
	}
}

// BreakerStats exposes the provider circuit breaker for the health check.
func (c *Client) BreakerStats() circuitbreaker.Stats {
	return c.breaker.Stats()
}
