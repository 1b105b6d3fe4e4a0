// Package handlers implements the HTTP API: token lifecycle status and
// control, cached provider reads, lineup insights, cache administration and
// the league schedule export. Handlers translate AppError types into the
// APIError envelope; request logging and rate limiting live in middleware.
package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"fantasy-gateway/internal/auth"
	"fantasy-gateway/internal/circuitbreaker"
	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/config"
	"fantasy-gateway/internal/fetch"
	"fantasy-gateway/internal/models"
	"fantasy-gateway/internal/provider"
	"fantasy-gateway/internal/token"
)

// TokenService is the credential lifecycle surface the API exposes.
// *token.Manager implements it.
type TokenService interface {
	Status() token.Status
	ForceRefresh(ctx context.Context) bool
}

// Fetcher is the cached read surface handlers go through.
// *fetch.Orchestrator implements it.
type Fetcher interface {
	Fetch(ctx context.Context, op provider.Operation, params map[string]string, ttl time.Duration, tags []string) ([]byte, error)
	FetchBatch(ctx context.Context, items []fetch.BatchItem) ([]fetch.BatchResult, error)
	InvalidateTag(ctx context.Context, tag string) (int, error)
	Stats() fetch.Stats
}

// BreakerSource reports provider circuit state for the health check.
// *provider.Client implements it.
type BreakerSource interface {
	BreakerStats() circuitbreaker.Stats
}

type Handlers struct {
	config   *config.Config
	tokens   TokenService
	fetcher  Fetcher
	breakers BreakerSource
	auth     *auth.Service
	logger   logging.Logger
}

func New(cfg *config.Config, tokens TokenService, fetcher Fetcher, breakers BreakerSource, authService *auth.Service, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Handlers{
		config:   cfg,
		tokens:   tokens,
		fetcher:  fetcher,
		breakers: breakers,
		auth:     authService,
		logger:   logger,
	}
}

// Auth returns the API auth service for route wiring.
func (h *Handlers) Auth() *auth.Service {
	return h.auth
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.Error("Failed to encode response", err)
		}
	}
}

// respondError maps the gateway error taxonomy onto HTTP statuses and the
// APIError envelope. Provider-side credential failures surface as 502 so the
// API's own 401 stays unambiguous.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.InternalError("internal error", err)
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case errors.ErrTypeValidation:
		status = http.StatusBadRequest
	case errors.ErrTypeNotFound:
		status = http.StatusNotFound
	case errors.ErrTypeRateLimit:
		status = http.StatusTooManyRequests
	case errors.ErrTypeTimeout:
		status = http.StatusGatewayTimeout
	case errors.ErrTypeConnection, errors.ErrTypeAuth, errors.ErrTypeRefresh, errors.ErrTypeRevoked:
		status = http.StatusBadGateway
	case errors.ErrTypeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", err, logging.Field{Key: "error_type", Value: string(appErr.Type)})
	}
	h.respondJSON(w, status, models.APIError{Error: appErr.Message, Type: string(appErr.Type)})
}

// apiErrorFrom converts any error into the APIError envelope for batch
// entry slots.
func apiErrorFrom(err error) *models.APIError {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.InternalError("internal error", err)
	}
	return &models.APIError{Error: appErr.Message, Type: string(appErr.Type)}
}

func (h *Handlers) decodeJSON(r *http.Request, into interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return errors.ValidationError("invalid JSON request body")
	}
	return nil
}

// fetchWithReauth runs one cached fetch and, when the provider rejects the
// gateway's credentials, forces a single token refresh and retries once.
func (h *Handlers) fetchWithReauth(ctx context.Context, op provider.Operation, params map[string]string) ([]byte, error) {
	raw, err := h.fetcher.Fetch(ctx, op, params, 0, nil)
	if err == nil || !errors.IsType(err, errors.ErrTypeAuth) {
		return raw, err
	}

	h.logger.Warn("Provider rejected credentials, forcing refresh",
		logging.Field{Key: "op", Value: string(op)})
	if !h.tokens.ForceRefresh(ctx) {
		return nil, err
	}
	return h.fetcher.Fetch(ctx, op, params, 0, nil)
}

// weekParam reads an optional positive ?week= query parameter.
func weekParam(r *http.Request) (string, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return "", nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return "", errors.ValidationError("week must be a positive integer")
	}
	return strconv.Itoa(week), nil
}
