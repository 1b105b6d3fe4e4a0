// Package auth protects the HTTP API with short-lived bearer tokens.
//
// Clients exchange the configured API key for an HS256-signed session
// token and present it on subsequent requests. When no JWT secret is
// configured the layer switches off entirely and RequireAuth passes
// requests through untouched.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/models"
)

const issuer = "fantasy-gateway"

// Claims are the session token claims. ClientID is a fingerprint of
// the API key the token was issued for, safe to log and to rate-limit by.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// Config controls the API auth layer.
type Config struct {
	Enabled  bool
	APIKey   string
	Secret   string
	TokenTTL time.Duration
}

// Service issues and verifies session tokens.
type Service struct {
	config   Config
	clientID string
	logger   logging.Logger
}

// New builds the auth service. A disabled config is valid and yields a
// pass-through service; an enabled one must carry the API key and a
// secret long enough to sign with.
func New(config Config, logger logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if !config.Enabled {
		return &Service{config: config, logger: logger}, nil
	}

	if config.APIKey == "" {
		return nil, errors.ConfigError("API auth requires an API key")
	}
	if len(config.Secret) < 32 {
		return nil, errors.ConfigError("API auth requires a JWT secret of at least 32 characters")
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}

	// Fingerprint identifies the key in logs and claims without
	// exposing it.
	sum := sha256.Sum256([]byte(config.APIKey))
	return &Service{
		config:   config,
		clientID: "key-" + hex.EncodeToString(sum[:4]),
		logger:   logger,
	}, nil
}

// Enabled reports whether the API requires bearer tokens.
func (s *Service) Enabled() bool {
	return s.config.Enabled
}

// IssueToken exchanges the API key for a signed session token and its
// expiry time.
func (s *Service) IssueToken(apiKey string) (string, time.Time, error) {
	if !s.config.Enabled {
		return "", time.Time{}, errors.ConfigError("API authentication is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.config.APIKey)) != 1 {
		return "", time.Time{}, errors.AuthError("invalid API key")
	}

	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)
	claims := &Claims{
		ClientID: s.clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, errors.InternalError("failed to sign session token", err)
	}

	s.logger.Info("Issued API session token",
		logging.Field{Key: "client_id", Value: s.clientID},
		logging.Field{Key: "expires_at", Value: expiresAt},
	)
	return token, expiresAt, nil
}

// VerifyToken parses and validates a session token.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if !s.config.Enabled {
		return nil, errors.ConfigError("API authentication is disabled")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return []byte(s.config.Secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.AuthError("session token expired")
		}
		return nil, errors.AuthError("invalid session token")
	}
	if !parsed.Valid {
		return nil, errors.AuthError("invalid session token")
	}
	return claims, nil
}

// RequireAuth guards a handler behind bearer-token authentication and
// stamps the verified client identity onto the request for downstream
// logging and rate limiting.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			s.unauthorized(w, "missing Authorization header")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			s.unauthorized(w, "invalid Authorization header format")
			return
		}

		claims, err := s.VerifyToken(header[7:])
		if err != nil {
			message := "invalid session token"
			var appErr *errors.AppError
			if stderrors.As(err, &appErr) {
				message = appErr.Message
			}
			s.unauthorized(w, message)
			return
		}

		r.Header.Set("X-Client-ID", claims.ClientID)
		next.ServeHTTP(w, r)
	})
}

func (s *Service) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIError{
		Error: message,
		Type:  string(errors.ErrTypeAuth),
	})
}
