package app

import (
	"context"

	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/oauth2"
	"fantasy-gateway/internal/token"
)

// initializeTokenManager builds the OAuth2 client, the optional credential
// mirrors and the manager that keeps the provider token fresh.
func (app *App) initializeTokenManager() error {
	oauthClient, err := oauth2.NewClient(oauth2.Config{
		ClientID:     app.Config.OAuthClientID,
		ClientSecret: app.Config.OAuthClientSecret,
		TokenURL:     app.Config.OAuthTokenURL,
	}, logging.GetGlobalLogger())
	if err != nil {
		return err
	}
	app.OAuthClient = oauthClient

	var mirrors []token.Mirror
	if app.Config.LauncherConfigPath != "" {
		mirrors = append(mirrors, token.NewLauncherConfigMirror(
			app.Config.LauncherConfigPath,
			app.Config.LauncherConfigEntry,
			logging.GetGlobalLogger(),
		))
		app.Logger.Info("Launcher config mirror enabled",
			logging.Field{Key: "path", Value: app.Config.LauncherConfigPath})
	}
	if app.Config.PubSubProjectID != "" && app.Config.PubSubTopic != "" {
		announcer, err := token.NewRotationAnnouncer(context.Background(), token.AnnouncerConfig{
			ProjectID:       app.Config.PubSubProjectID,
			Topic:           app.Config.PubSubTopic,
			CredentialsJSON: app.Config.PubSubCredentialsJSON,
		}, logging.GetGlobalLogger())
		if err != nil {
			// Mirrors run best-effort; the gateway starts without one.
			app.Logger.Warn("Rotation announcer initialization failed",
				logging.Field{Key: "error", Value: err.Error()})
		} else {
			app.announcer = announcer
			mirrors = append(mirrors, announcer)
			app.Logger.Info("Rotation announcer enabled",
				logging.Field{Key: "topic", Value: app.Config.PubSubTopic})
		}
	}

	opts := []token.ManagerOption{token.WithLockManager(app.LockManager)}
	if len(mirrors) > 0 {
		opts = append(opts, token.WithMirrors(mirrors...))
	}

	manager, err := token.NewManager(app.Credentials, oauthClient, token.ManagerConfig{
		CheckInterval:  app.Config.TokenCheckInterval,
		RefreshBuffer:  app.Config.TokenRefreshBuffer,
		SleepIncrement: app.Config.TokenSleepIncrement,
	}, logging.GetGlobalLogger(), opts...)
	if err != nil {
		return err
	}

	app.TokenManager = manager
	return nil
}
