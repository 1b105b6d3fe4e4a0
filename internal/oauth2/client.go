// Package oauth2 exchanges refresh tokens for new access tokens at the
// provider's token endpoint. It implements the refresh_token grant from
// RFC 6749 and classifies failures so the token lifecycle manager can tell
// a permanently revoked grant from a transient outage.
package oauth2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fantasy-gateway/internal/circuitbreaker"
	"fantasy-gateway/internal/common/errors"
	commonhttp "fantasy-gateway/internal/common/http"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/token"
)

// tokenResponse maps the RFC 6749 token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// errorResponse maps the RFC 6749 error response body.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Config holds the client credentials and token endpoint.
type Config struct {
	// ClientID is the OAuth2 client identifier registered with the provider.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// TokenURL is the provider's token endpoint.
	TokenURL string
	// Timeout bounds each token request. Defaults to 30 seconds.
	Timeout time.Duration
}

// Validate checks that the required fields are present.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return errors.ConfigError("client_id is required")
	}
	if c.ClientSecret == "" {
		return errors.ConfigError("client_secret is required")
	}
	if c.TokenURL == "" {
		return errors.ConfigError("token_url is required")
	}
	return nil
}

// Client performs refresh_token grants against the provider.
type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *circuitbreaker.Adapter
	logger     logging.Logger
	now        func() time.Time
}

// NewClient creates a refresh client. Token endpoint calls run inside a
// circuit breaker with the OAuth profile.
func NewClient(config Config, logger logging.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Client{
		config:     config,
		httpClient: commonhttp.NewHTTPClientWithTimeout(config.Timeout),
		breaker:    circuitbreaker.New("oauth-token", circuitbreaker.OAuthConfig, logger),
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Refresh exchanges refreshToken for a new credential set. The provider may
// rotate the refresh token; when it does not, the old one is carried over so
// the returned Credentials are always complete.
//
// An invalid_grant response means the grant was revoked and no amount of
// retrying will help; it comes back as a grant_revoked error. Everything
// else (other 4xx/5xx, transport failures, breaker open) is a refresh error
// the caller may retry on the next cycle.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*token.Credentials, error) {
	if refreshToken == "" {
		return nil, errors.ValidationError("refresh token is required")
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", c.config.ClientID)
	data.Set("client_secret", c.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.InternalError("failed to create token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		resp, httpErr := c.httpClient.Do(req)
		if httpErr != nil {
			return nil, errors.RefreshError("token request failed", httpErr)
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, errors.RefreshError("failed to read token response", readErr)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, c.classifyFailure(resp.StatusCode, body)
		}

		return c.parseToken(refreshToken, body)
	})
	if err != nil {
		return nil, err
	}

	return result.(*token.Credentials), nil
}

// classifyFailure turns a non-200 token endpoint response into a typed error.
func (c *Client) classifyFailure(status int, body []byte) error {
	var errResp errorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error != "" {
		if errResp.Error == "invalid_grant" {
			return errors.RevokedError(fmt.Sprintf("refresh token rejected: %s", errResp.Description)).
				WithCode(errResp.Error)
		}
		return errors.RefreshError(fmt.Sprintf("token endpoint returned %s: %s", errResp.Error, errResp.Description), nil).
			WithCode(errResp.Error)
	}

	return errors.RefreshError(fmt.Sprintf("token request failed with status %d", status), nil)
}

// parseToken decodes a successful response into Credentials.
func (c *Client) parseToken(previousRefreshToken string, body []byte) (*token.Credentials, error) {
	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.RefreshError("failed to decode token response", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, errors.RefreshError("no access token in response", nil)
	}

	expiresAt := c.now()
	if tokenResp.ExpiresIn > 0 {
		expiresAt = expiresAt.Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}

	rotatedRefreshToken := tokenResp.RefreshToken
	if rotatedRefreshToken == "" {
		rotatedRefreshToken = previousRefreshToken
	}

	return &token.Credentials{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: rotatedRefreshToken,
		TokenType:    tokenResp.TokenType,
		ExpiresAt:    expiresAt,
		Scope:        tokenResp.Scope,
	}, nil
}

// BreakerStats exposes the OAuth breaker snapshot for health reporting.
func (c *Client) BreakerStats() circuitbreaker.Stats {
	return c.breaker.Stats()
}
