// Package crypto provides AES-256-GCM encryption and decryption for
// sensitive credential material such as OAuth access and refresh tokens
// before they are written to the settings store.
//
// AES-256-GCM provides both confidentiality and authenticity. Each
// encryption operation uses a unique random nonce, so encrypting the same
// token twice produces different ciphertexts.
//
// Example usage:
//
//	encryptor, err := crypto.NewTokenEncryptor(os.Getenv("CREDENTIAL_ENCRYPTION_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sealed, err := encryptor.Encrypt(refreshToken)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	plain, err := encryptor.Decrypt(sealed)
//	if err != nil {
//		log.Fatal(err)
//	}
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"fantasy-gateway/internal/common/errors"
)

// TokenEncryptor handles encryption and decryption of stored credentials
// using AES-256-GCM. It is safe for concurrent use by multiple goroutines.
type TokenEncryptor struct {
	key []byte // 32-byte AES-256 encryption key
}

// NewTokenEncryptor creates a new TokenEncryptor from the provided passphrase.
//
// The passphrase is run through PBKDF2 key derivation so the resulting key is
// exactly 32 bytes for AES-256 regardless of input length. Store the
// passphrase in the environment, never in source.
func NewTokenEncryptor(key string) (*TokenEncryptor, error) {
	if key == "" {
		return nil, errors.ValidationError("encryption key cannot be empty")
	}

	// Static salt keeps derivation deterministic across restarts
	salt := []byte("fantasy-gateway-token-salt")
	derivedKey := pbkdf2.Key([]byte(key), salt, 10000, 32, sha256.New)

	return &TokenEncryptor{key: derivedKey}, nil
}

// Encrypt encrypts a plaintext string using AES-256-GCM and returns the
// result as a base64-encoded string suitable for storage. A random nonce is
// generated per call and prepended to the ciphertext before encoding, so the
// same plaintext never encrypts to the same value twice.
//
// Empty strings are returned as empty strings without encryption.
func (e *TokenEncryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", errors.InternalError("failed to create cipher", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.InternalError("failed to create GCM", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.InternalError("failed to create nonce", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a base64-encoded ciphertext produced by Encrypt and
// returns the original plaintext. GCM verifies integrity during decryption,
// so tampered or corrupted ciphertexts produce an error rather than garbage.
//
// Empty strings are returned as empty strings without decryption.
func (e *TokenEncryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.InternalError("failed to decode ciphertext", err)
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", errors.InternalError("failed to create cipher", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.InternalError("failed to create GCM", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.ValidationError("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", errors.InternalError("failed to decrypt", err)
	}

	return string(plaintext), nil
}
