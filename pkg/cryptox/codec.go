package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// Sealed payload layout (before base64):
//
//	[1-byte version][12-byte nonce][16-byte GCM tag][ciphertext]
const (
	KeySize        = 32
	PayloadVersion = 0x01

	nonceSize  = 12
	tagSize    = 16
	headerSize = 1 + nonceSize + tagSize
)

var (
	ErrInvalidKey       = errors.New("cryptox: data key must be 32 bytes")
	ErrDecryptionFailed = errors.New("cryptox: decryption failed")
)

// Codec seals secrets with AES-256-GCM under a single process-wide key.
// The key is held unexported and never formatted or logged.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create gcm: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// String keeps the key material out of any accidental %v formatting.
func (c *Codec) String() string { return "cryptox.Codec{aes-256-gcm}" }

// Encrypt seals plaintext with a fresh random nonce and returns the payload
// as standard base64.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	// Seal returns ciphertext||tag; reorder into the payload layout.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	out := make([]byte, 0, headerSize+len(ct))
	out = append(out, PayloadVersion)
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, ct...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens a payload produced by Encrypt. Any malformation, tampering or
// key mismatch yields ErrDecryptionFailed and no plaintext.
func (c *Codec) Decrypt(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(raw) < headerSize || raw[0] != PayloadVersion {
		return "", ErrDecryptionFailed
	}

	nonce := raw[1 : 1+nonceSize]
	tag := raw[1+nonceSize : headerSize]
	ct := raw[headerSize:]

	sealed := make([]byte, 0, len(ct)+tagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// Hash is the verification digest of a secret. It is for equality checks only.
func (c *Codec) Hash(plaintext string) string { return Digest(plaintext) }

// HashToken is the lookup digest of a raw handoff token.
func (c *Codec) HashToken(raw string) string { return Digest(raw) }

// Digest returns the lowercase hex SHA-256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
