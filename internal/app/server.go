package app

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/handlers"
	"fantasy-gateway/internal/middleware"
	"fantasy-gateway/internal/server"
)

// RunServer builds the HTTP stack and returns the server ready to start.
func (app *App) RunServer() (*server.Server, http.Handler) {
	h := handlers.New(
		app.Config,
		app.TokenManager,
		app.Fetcher,
		app.Provider,
		app.Auth,
		logging.GetGlobalLogger(),
	)

	router := mux.NewRouter()
	SetupRoutes(router, h, middleware.RateLimitConfig{
		RPS:   app.Config.APIRateLimitRPS,
		Burst: app.Config.APIRateLimitBurst,
	})

	srv := server.New(router, app.Config.Port, "", "")
	return srv, router
}

// Shutdown gracefully stops the background components. The HTTP server is
// shut down separately by the caller.
func (app *App) Shutdown(ctx context.Context) error {
	if app.Warmer != nil {
		app.Warmer.Stop()
	}
	if app.TokenManager != nil {
		app.TokenManager.Stop()
	}
	return nil
}
