package handlers

import (
	"net/http"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/models"
)

// HandleAuthStatus reports the token manager snapshot
// @Summary Token lifecycle status
// @Description Returns the background manager's auth state, refresh counters and expiry outlook
// @Tags auth
// @Produce json
// @Success 200 {object} token.Status
// @Failure 401 {object} models.APIError "Missing or invalid session token"
// @Router /api/auth/status [get]
func (h *Handlers) HandleAuthStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.tokens.Status())
}

// HandleAuthRefresh forces a token refresh
// @Summary Force a provider token refresh
// @Description Runs one refresh cycle immediately regardless of expiry and reports whether it succeeded
// @Tags auth
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 401 {object} models.APIError "Missing or invalid session token"
// @Router /api/auth/refresh [post]
func (h *Handlers) HandleAuthRefresh(w http.ResponseWriter, r *http.Request) {
	success := h.tokens.ForceRefresh(r.Context())
	if !success {
		h.logger.Warn("Forced token refresh failed")
	}
	h.respondJSON(w, http.StatusOK, models.RefreshResponse{Success: success})
}

// HandleIssueToken exchanges the API key for a session token
// @Summary Issue an API session token
// @Description Exchanges the configured API key for a short-lived bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "API key"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.APIError "Malformed request body"
// @Failure 401 {object} models.APIError "Wrong API key"
// @Router /api/auth/token [post]
func (h *Handlers) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	signed, expiresAt, err := h.auth.IssueToken(req.APIKey)
	if err != nil {
		// The issue route is unauthenticated, so a wrong key answers 401
		// here rather than the 502 the taxonomy reserves for provider
		// credential failures.
		if errors.IsType(err, errors.ErrTypeAuth) {
			h.respondJSON(w, http.StatusUnauthorized, models.APIError{
				Error: "invalid API key",
				Type:  string(errors.ErrTypeAuth),
			})
			return
		}
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, models.TokenResponse{Token: signed, ExpiresAt: expiresAt})
}
