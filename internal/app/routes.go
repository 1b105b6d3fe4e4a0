package app

import (
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"fantasy-gateway/internal/handlers"
	"fantasy-gateway/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the gateway
func SetupRoutes(router *mux.Router, h *handlers.Handlers, rateLimit middleware.RateLimitConfig) {
	// Add logging middleware to all routes
	router.Use(middleware.LoggingMiddleware)

	// Health check and API docs (no auth required)
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Token issue route validates the API key itself, so it sits outside
	// the session-protected subrouter
	if h.Auth().Enabled() {
		router.HandleFunc("/api/auth/token", h.HandleIssueToken).Methods("POST")
	}

	// Protected routes - require a session token and rate limiting
	protected := router.NewRoute().Subrouter()
	protected.Use(h.Auth().RequireAuth)
	protected.Use(middleware.RateLimitMiddleware(rateLimit))

	api := protected.PathPrefix("/api").Subrouter()

	// Token lifecycle endpoints (protected)
	api.HandleFunc("/auth/status", h.HandleAuthStatus).Methods("GET")
	api.HandleFunc("/auth/refresh", h.HandleAuthRefresh).Methods("POST")

	// League endpoints (protected). Batch registers ahead of the {league}
	// routes so the literal path wins.
	api.HandleFunc("/leagues", h.HandleUserLeagues).Methods("GET")
	api.HandleFunc("/leagues/batch", h.HandleBatch).Methods("POST")
	api.HandleFunc("/leagues/{league}", h.HandleLeagueInfo).Methods("GET")
	api.HandleFunc("/leagues/{league}/teams", h.HandleLeagueTeams).Methods("GET")
	api.HandleFunc("/leagues/{league}/standings", h.HandleLeagueStandings).Methods("GET")
	api.HandleFunc("/leagues/{league}/players", h.HandleAvailablePlayers).Methods("GET")
	api.HandleFunc("/leagues/{league}/injuries", h.HandleInjuryReport).Methods("GET")
	api.HandleFunc("/leagues/{league}/transactions", h.HandleLeagueTransactions).Methods("GET")
	api.HandleFunc("/leagues/{league}/waivers", h.HandleWaivers).Methods("GET")
	api.HandleFunc("/leagues/{league}/schedule.ics", h.HandleLeagueSchedule).Methods("GET")

	// Team endpoints (protected)
	api.HandleFunc("/teams/{team}/roster", h.HandleTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{team}/matchup", h.HandleTeamMatchup).Methods("GET")
	api.HandleFunc("/teams/{team}/matchup/analysis", h.HandleMatchupAnalysis).Methods("GET")
	api.HandleFunc("/teams/{team}/lineup", h.HandleLineup).Methods("GET")

	// Trade analysis (protected)
	api.HandleFunc("/trades/analyze", h.HandleTradeAnalyze).Methods("POST")

	// Cache administration (protected)
	api.HandleFunc("/cache/status", h.HandleCacheStatus).Methods("GET")
	api.HandleFunc("/cache/invalidate", h.HandleCacheInvalidate).Methods("POST")
}
