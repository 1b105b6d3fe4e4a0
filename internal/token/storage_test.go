package token

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/crypto"
	"fantasy-gateway/internal/database"
)

func TestEnvFileStore_MissingFile(t *testing.T) {
	store := NewEnvFileStore(filepath.Join(t.TempDir(), "missing.env"))

	creds, err := store.Load(context.Background())
	require.NoError(t, err, "first run has nothing stored yet")
	assert.Nil(t, creds)
}

func TestEnvFileStore_RoundTrip(t *testing.T) {
	store := NewEnvFileStore(filepath.Join(t.TempDir(), "tokens.env"))

	expiry := time.Date(2026, 8, 21, 13, 0, 0, 0, time.UTC)
	saved := &Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresAt:    expiry,
	}
	require.NoError(t, store.Save(context.Background(), saved))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access-token", loaded.AccessToken)
	assert.Equal(t, "refresh-token", loaded.RefreshToken)
	assert.Equal(t, "Bearer", loaded.TokenType)
	assert.True(t, expiry.Equal(loaded.ExpiresAt))
}

func TestEnvFileStore_PreservesUnrelatedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.env")
	require.NoError(t, godotenv.Write(map[string]string{
		"PROVIDER_CLIENT_ID": "client-123",
		"LOG_LEVEL":          "debug",
	}, path))

	store := NewEnvFileStore(path)
	require.NoError(t, store.Save(context.Background(), &Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}))

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "client-123", values["PROVIDER_CLIENT_ID"])
	assert.Equal(t, "debug", values["LOG_LEVEL"])
	assert.Equal(t, "access-token", values["ACCESS_TOKEN"])
}

func TestEnvFileStore_SaveNilCredentials(t *testing.T) {
	store := NewEnvFileStore(filepath.Join(t.TempDir(), "tokens.env"))

	err := store.Save(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestEnvFileStore_DefaultsTokenType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.env")
	content := "ACCESS_TOKEN=access\nREFRESH_TOKEN=refresh\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	loaded, err := NewEnvFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Bearer", loaded.TokenType)
}

func TestEnvFileStore_UnparsableTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.env")
	content := "ACCESS_TOKEN=access\nREFRESH_TOKEN=refresh\nTOKEN_TIMESTAMP=not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	loaded, err := NewEnvFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.ExpiresAt.IsZero(), "bad timestamp reads as already expired")
	assert.True(t, loaded.Expired(time.Now()))
}

func TestEnvFileStore_ReloadsExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.env")
	store := NewEnvFileStore(path)

	require.NoError(t, store.Save(context.Background(), &Credentials{
		AccessToken:  "original",
		RefreshToken: "refresh",
	}))

	// A manual re-authorization rewrites the file behind the store's back.
	require.NoError(t, godotenv.Write(map[string]string{
		"ACCESS_TOKEN":  "replaced",
		"REFRESH_TOKEN": "replaced-refresh",
	}, path))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "replaced", loaded.AccessToken)
	assert.Equal(t, "replaced-refresh", loaded.RefreshToken)
}

func setupSettingsDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Init("sqlite", filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettingsStore_EmptyDatabase(t *testing.T) {
	store := NewSettingsStore(setupSettingsDB(t), nil)

	creds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	store := NewSettingsStore(setupSettingsDB(t), nil)

	expiry := time.Date(2026, 8, 21, 13, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), &Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresAt:    expiry,
	}))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access-token", loaded.AccessToken)
	assert.Equal(t, "refresh-token", loaded.RefreshToken)
	assert.True(t, expiry.Equal(loaded.ExpiresAt))
}

func TestSettingsStore_EncryptsTokensAtRest(t *testing.T) {
	db := setupSettingsDB(t)
	encryptor, err := crypto.NewTokenEncryptor("unit-test-passphrase")
	require.NoError(t, err)

	store := NewSettingsStore(db, encryptor)
	require.NoError(t, store.Save(context.Background(), &Credentials{
		AccessToken:  "plaintext-access",
		RefreshToken: "plaintext-refresh",
	}))

	// The raw rows must not contain token material.
	rawAccess, err := db.GetSetting(context.Background(), "ACCESS_TOKEN")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-access", rawAccess)
	assert.NotContains(t, rawAccess, "plaintext")

	// The token type is not sensitive and stays readable.
	rawType, err := db.GetSetting(context.Background(), "TOKEN_TYPE")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", rawType)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "plaintext-access", loaded.AccessToken)
	assert.Equal(t, "plaintext-refresh", loaded.RefreshToken)
}

func TestSettingsStore_SaveNilCredentials(t *testing.T) {
	store := NewSettingsStore(setupSettingsDB(t), nil)

	err := store.Save(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestSettingsStore_WrongKeyFailsClosed(t *testing.T) {
	db := setupSettingsDB(t)

	writer, err := crypto.NewTokenEncryptor("first-passphrase")
	require.NoError(t, err)
	require.NoError(t, NewSettingsStore(db, writer).Save(context.Background(), &Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}))

	reader, err := crypto.NewTokenEncryptor("second-passphrase")
	require.NoError(t, err)

	_, err = NewSettingsStore(db, reader).Load(context.Background())
	require.Error(t, err, "undecryptable credentials must not be served")
}
