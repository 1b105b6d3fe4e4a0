package app

import (
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/warmer"
)

func (app *App) initializeWarmer() error {
	if !app.Config.WarmerEnabled {
		return nil
	}

	w, err := warmer.New(app.Fetcher, warmer.Config{
		Schedule:   app.Config.WarmerSchedule,
		GameKey:    app.Config.ProviderGameKey,
		LeagueKeys: app.Config.WarmerLeagueKeys,
	}, logging.GetGlobalLogger(), warmer.WithLockManager(app.LockManager))
	if err != nil {
		return err
	}

	app.Warmer = w
	app.Logger.Info("Cache warmer: Enabled",
		logging.Field{Key: "schedule", Value: app.Config.WarmerSchedule},
		logging.Field{Key: "leagues", Value: len(app.Config.WarmerLeagueKeys)},
	)
	return nil
}
