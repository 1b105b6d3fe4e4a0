package token

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/crypto"
	"fantasy-gateway/internal/database"
)

// Durable storage keys. TOKEN_TIMESTAMP holds the absolute Unix second the
// access token expires, so the stored value stays meaningful if the provider
// changes its token lifetime.
const (
	keyAccessToken    = "ACCESS_TOKEN"
	keyRefreshToken   = "REFRESH_TOKEN"
	keyTokenType      = "TOKEN_TYPE"
	keyTokenTimestamp = "TOKEN_TIMESTAMP"
)

// CredentialStore persists the credential set across restarts. Load reads
// the backing medium on every call so externally written credentials, such
// as a manual re-authorization, are picked up without a restart. An absent
// credential set is (nil, nil), not an error; the first run has nothing
// stored yet.
type CredentialStore interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds *Credentials) error
}

// credentialsFromKeys assembles Credentials from the four storage keys.
// Returns nil when no tokens are present. A missing or unparsable timestamp
// leaves ExpiresAt zero, which reads as already expired and forces a refresh
// on the next cycle.
func credentialsFromKeys(values map[string]string) *Credentials {
	access := values[keyAccessToken]
	refresh := values[keyRefreshToken]
	if access == "" && refresh == "" {
		return nil
	}

	creds := &Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    values[keyTokenType],
	}
	if creds.TokenType == "" {
		creds.TokenType = "Bearer"
	}
	if raw := values[keyTokenTimestamp]; raw != "" {
		if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil && seconds > 0 {
			creds.ExpiresAt = time.Unix(seconds, 0)
		}
	}
	return creds
}

// credentialKeys flattens Credentials into the four storage keys.
func credentialKeys(creds *Credentials) map[string]string {
	timestamp := "0"
	if !creds.ExpiresAt.IsZero() {
		timestamp = strconv.FormatInt(creds.ExpiresAt.Unix(), 10)
	}
	return map[string]string{
		keyAccessToken:    creds.AccessToken,
		keyRefreshToken:   creds.RefreshToken,
		keyTokenType:      creds.TokenType,
		keyTokenTimestamp: timestamp,
	}
}

// EnvFileStore keeps credentials in a .env-format file. Unrelated keys in
// the file, such as the OAuth client configuration, are preserved on Save.
type EnvFileStore struct {
	path string
	mu   sync.Mutex
}

// NewEnvFileStore creates a store backed by the .env file at path.
func NewEnvFileStore(path string) *EnvFileStore {
	return &EnvFileStore{path: path}
}

func (s *EnvFileStore) Load(ctx context.Context) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := godotenv.Read(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.InternalError("failed to read credentials file", err)
	}

	return credentialsFromKeys(values), nil
}

func (s *EnvFileStore) Save(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return errors.ValidationError("credentials are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := godotenv.Read(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.InternalError("failed to read credentials file", err)
		}
		values = make(map[string]string)
	}

	for key, value := range credentialKeys(creds) {
		values[key] = value
	}

	if err := godotenv.Write(values, s.path); err != nil {
		return errors.InternalError("failed to write credentials file", err)
	}
	return nil
}

// SettingsStore keeps credentials in the settings table, optionally
// encrypting token values at rest. Multi-replica deployments point every
// instance at the same database so a refresh by one is visible to all.
type SettingsStore struct {
	db        *database.DB
	encryptor *crypto.TokenEncryptor
}

// NewSettingsStore creates a store over the settings database. The encryptor
// is optional; when present, ACCESS_TOKEN and REFRESH_TOKEN values are
// encrypted before they reach the table.
func NewSettingsStore(db *database.DB, encryptor *crypto.TokenEncryptor) *SettingsStore {
	return &SettingsStore{db: db, encryptor: encryptor}
}

func (s *SettingsStore) Load(ctx context.Context) (*Credentials, error) {
	values := make(map[string]string, 4)
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyTokenType, keyTokenTimestamp} {
		value, err := s.db.GetSetting(ctx, key)
		if err != nil {
			if errors.IsType(err, errors.ErrTypeNotFound) {
				continue
			}
			return nil, err
		}
		values[key] = value
	}

	if s.encryptor != nil {
		for _, key := range []string{keyAccessToken, keyRefreshToken} {
			plain, err := s.encryptor.Decrypt(values[key])
			if err != nil {
				return nil, errors.InternalError("failed to decrypt stored credential", err)
			}
			values[key] = plain
		}
	}

	return credentialsFromKeys(values), nil
}

func (s *SettingsStore) Save(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return errors.ValidationError("credentials are required")
	}

	values := credentialKeys(creds)

	if s.encryptor != nil {
		for _, key := range []string{keyAccessToken, keyRefreshToken} {
			sealed, err := s.encryptor.Encrypt(values[key])
			if err != nil {
				return errors.InternalError("failed to encrypt credential", err)
			}
			values[key] = sealed
		}
	}

	for key, value := range values {
		if err := s.db.SetSetting(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

var _ CredentialStore = (*EnvFileStore)(nil)
var _ CredentialStore = (*SettingsStore)(nil)
