package cryptox

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// Local signing keys only back handoffctl's development identity provider.
// The service itself never signs; it verifies tokens from an external IdP.

// DefaultRSABits is the RSA modulus size used for RS256 keys.
const DefaultRSABits = 3072

var ErrUnsupportedKey = errors.New("cryptox: unsupported signing key")

// GenerateSigningKey returns a new private key for the JWS algorithm alg
// (EdDSA, ES256 or RS256) as a PKCS8 PEM block.
func GenerateSigningKey(alg string) ([]byte, error) {
	var (
		key any
		err error
	)

	switch alg {
	case "EdDSA":
		_, key, err = ed25519.GenerateKey(rand.Reader)
	case "ES256":
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case "RS256":
		key, err = rsa.GenerateKey(rand.Reader, DefaultRSABits)
	default:
		return nil, fmt.Errorf("%w: algorithm %q", ErrUnsupportedKey, alg)
	}
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate %s key: %w", alg, err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// ParseSigningKey decodes a PEM private key. PKCS8 is accepted for all key
// types, PKCS1 for RSA.
func ParseSigningKey(data []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block", ErrUnsupportedKey)
	}

	var (
		key any
		err error
	)
	switch block.Type {
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("%w: PEM type %q", ErrUnsupportedKey, block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse private key: %w", err)
	}

	switch k := key.(type) {
	case ed25519.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		if k.Curve != elliptic.P256() {
			return nil, fmt.Errorf("%w: ECDSA curve %s", ErrUnsupportedKey, k.Curve.Params().Name)
		}
		return k, nil
	case *rsa.PrivateKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
}

// SigningAlgorithm names the JWS algorithm matching key.
func SigningAlgorithm(key crypto.Signer) (string, error) {
	switch key.(type) {
	case ed25519.PrivateKey:
		return "EdDSA", nil
	case *ecdsa.PrivateKey:
		return "ES256", nil
	case *rsa.PrivateKey:
		return "RS256", nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
}
