package app

import (
	"fantasy-gateway/internal/auth"
	"fantasy-gateway/internal/common/logging"
)

func (app *App) initializeAuth() error {
	authService, err := auth.New(auth.Config{
		Enabled:  app.Config.APIAuthEnabled,
		APIKey:   app.Config.APIKey,
		Secret:   app.Config.JWTSecret,
		TokenTTL: app.Config.JWTTTL,
	}, logging.GetGlobalLogger())
	if err != nil {
		return err
	}
	app.Auth = authService

	if authService.Enabled() {
		app.Logger.Info("API authentication: Enabled")
	} else {
		app.Logger.Warn("API authentication: Disabled (API is open)")
	}
	return nil
}
