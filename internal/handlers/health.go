package handlers

import (
	"net/http"

	"fantasy-gateway/internal/models"
)

// HealthCheck reports gateway health
// @Summary Health check
// @Description Liveness plus auth state, provider breaker state and cache size; degraded states answer 503
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse "Degraded"
// @Router /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	tokenStatus := h.tokens.Status()
	breaker := h.breakers.BreakerStats()

	response := models.HealthResponse{
		Status:    "ok",
		AuthState: tokenStatus.AuthState,
		Breakers:  map[string]string{breaker.Name: breaker.State},
		Cache:     h.fetcher.Stats().CachedEntries,
	}

	code := http.StatusOK
	if tokenStatus.AuthState == "refresh_failed" || breaker.State == "open" {
		response.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	h.respondJSON(w, code, response)
}
