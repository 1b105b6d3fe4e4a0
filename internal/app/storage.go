package app

import (
	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/crypto"
	"fantasy-gateway/internal/database"
	"fantasy-gateway/internal/token"
)

// initializeStorage opens the settings database. Only the database credential
// store needs it; env deployments run without one.
func (app *App) initializeStorage() error {
	if app.Config.CredentialStore != "database" {
		return nil
	}

	var dsn string
	switch app.Config.DatabaseType {
	case "postgres":
		dsn = app.Config.PostgresDSN
		app.Logger.Info("Database: PostgreSQL")
	default:
		dsn = app.Config.DatabasePath
		app.Logger.Info("Database: SQLite",
			logging.Field{Key: "path", Value: dsn})
	}

	db, err := database.Init(app.Config.DatabaseType, dsn)
	if err != nil {
		return err
	}

	app.DB = db
	return nil
}

// initializeCredentials builds the credential store the token manager loads
// from and saves to, plus the encryptor guarding tokens at rest.
func (app *App) initializeCredentials() error {
	if app.Config.CredentialEncryptionKey != "" {
		encryptor, err := crypto.NewTokenEncryptor(app.Config.CredentialEncryptionKey)
		if err != nil {
			return err
		}
		app.Encryptor = encryptor
		app.Logger.Info("Credential encryption enabled")
	}

	switch app.Config.CredentialStore {
	case "database":
		if app.Encryptor == nil {
			app.Logger.Warn("Database credential store without encryption, tokens are stored in plaintext")
		}
		app.Credentials = token.NewSettingsStore(app.DB, app.Encryptor)
		app.Logger.Info("Credential store: database")
	case "env":
		app.Credentials = token.NewEnvFileStore(app.Config.CredentialsFile)
		app.Logger.Info("Credential store: env file",
			logging.Field{Key: "path", Value: app.Config.CredentialsFile})
	default:
		return errors.ConfigError("unknown credential store: " + app.Config.CredentialStore)
	}

	return nil
}
