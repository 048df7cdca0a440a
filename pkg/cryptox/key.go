package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for passphrase key files.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads

	// passphraseSalt is fixed so the same passphrase always yields the same
	// key. Changing it orphans every payload sealed under a passphrase key.
	passphraseSalt = "handoff data encryption key v1"
)

var ErrNoKey = errors.New("cryptox: no data key configured")

// KeySource describes where the data key comes from. Base64 wins over File.
type KeySource struct {
	// Base64 is a standard-base64 encoding of exactly 32 bytes.
	Base64 string

	// File holds either 32 raw bytes, a base64 encoded key, or a passphrase
	// which is stretched with Argon2id.
	File string

	// AllowEphemeral generates a random key when nothing is configured.
	// Sealed payloads will not survive a restart; dev only.
	AllowEphemeral bool
}

// LoadKey resolves the data key. The returned bool reports whether the key
// is ephemeral.
func LoadKey(src KeySource) ([]byte, bool, error) {
	if src.Base64 != "" {
		key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(src.Base64))
		if err != nil {
			return nil, false, fmt.Errorf("cryptox: decode data key: %w", err)
		}
		if len(key) != KeySize {
			return nil, false, ErrInvalidKey
		}
		return key, false, nil
	}

	if src.File != "" {
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, false, fmt.Errorf("cryptox: read data key file: %w", err)
		}
		key, err := keyFromMaterial(data)
		if err != nil {
			return nil, false, err
		}
		return key, false, nil
	}

	if !src.AllowEphemeral {
		return nil, false, ErrNoKey
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("cryptox: generate ephemeral key: %w", err)
	}
	return key, true, nil
}

func keyFromMaterial(data []byte) ([]byte, error) {
	if len(data) == KeySize {
		return data, nil
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, ErrNoKey
	}
	if key, err := base64.StdEncoding.DecodeString(trimmed); err == nil && len(key) == KeySize {
		return key, nil
	}

	return DeriveKey(trimmed), nil
}

// DeriveKey stretches a passphrase into a data key with Argon2id.
func DeriveKey(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), []byte(passphraseSalt), iterations, memory, parallelism, KeySize)
}

// GenerateKey returns a fresh base64 encoded 32-byte key.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("cryptox: generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
