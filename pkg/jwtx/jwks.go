package jwtx

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidJWK = errors.New("jwtx: invalid jwk")

// JWK is one JSON Web Key (RFC 7517) as published by the identity provider.
// Only the public members of the three supported key types are modelled.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`

	// RSA
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`

	// OKP (Ed25519) and EC (P-256)
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

// JWKS is a JSON Web Key Set.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

var b64 = base64.RawURLEncoding

// NewJWK describes pub as a signing key for alg. The key type must suit alg.
func NewJWK(kid, alg string, pub crypto.PublicKey) (JWK, error) {
	j := JWK{Use: "sig", Alg: alg, Kid: kid}

	switch k := pub.(type) {
	case ed25519.PublicKey:
		if alg != AlgEdDSA {
			return JWK{}, fmt.Errorf("%w: Ed25519 key with %s", ErrKeyTypeMismatch, alg)
		}
		j.Kty, j.Crv, j.X = "OKP", "Ed25519", b64.EncodeToString(k)

	case *ecdsa.PublicKey:
		if alg != AlgES256 {
			return JWK{}, fmt.Errorf("%w: ECDSA key with %s", ErrKeyTypeMismatch, alg)
		}
		ek, err := k.ECDH()
		if err != nil || ek.Curve() != ecdh.P256() {
			return JWK{}, fmt.Errorf("%w: ES256 needs a P-256 key", ErrKeyTypeMismatch)
		}
		// Uncompressed point: 0x04 || X(32) || Y(32)
		point := ek.Bytes()
		j.Kty, j.Crv = "EC", "P-256"
		j.X, j.Y = b64.EncodeToString(point[1:33]), b64.EncodeToString(point[33:])

	case *rsa.PublicKey:
		if alg != AlgRS256 {
			return JWK{}, fmt.Errorf("%w: RSA key with %s", ErrKeyTypeMismatch, alg)
		}
		j.Kty = "RSA"
		j.N = b64.EncodeToString(k.N.Bytes())
		j.E = b64.EncodeToString(big.NewInt(int64(k.E)).Bytes())

	default:
		return JWK{}, fmt.Errorf("%w: %T", ErrUnsupportedAlg, pub)
	}
	return j, nil
}

// PublicKey decodes j into an ed25519.PublicKey, *ecdsa.PublicKey or
// *rsa.PublicKey. EC points are checked to lie on the curve.
func (j JWK) PublicKey() (crypto.PublicKey, error) {
	switch j.Kty {
	case "OKP":
		if j.Crv != "Ed25519" {
			return nil, fmt.Errorf("%w: OKP curve %q", ErrInvalidJWK, j.Crv)
		}
		x, err := b64.DecodeString(j.X)
		if err != nil || len(x) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: Ed25519 x", ErrInvalidJWK)
		}
		return ed25519.PublicKey(x), nil

	case "EC":
		if j.Crv != "P-256" {
			return nil, fmt.Errorf("%w: EC curve %q", ErrInvalidJWK, j.Crv)
		}
		x, errX := b64.DecodeString(j.X)
		y, errY := b64.DecodeString(j.Y)
		if errX != nil || errY != nil || len(x) != 32 || len(y) != 32 {
			return nil, fmt.Errorf("%w: P-256 coordinates", ErrInvalidJWK)
		}
		point := append(append([]byte{0x04}, x...), y...)
		if _, err := ecdh.P256().NewPublicKey(point); err != nil {
			return nil, fmt.Errorf("%w: point not on P-256", ErrInvalidJWK)
		}
		return &ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(x),
			Y:     new(big.Int).SetBytes(y),
		}, nil

	case "RSA":
		n, errN := b64.DecodeString(j.N)
		e, errE := b64.DecodeString(j.E)
		if errN != nil || errE != nil || len(n) == 0 || len(e) == 0 || len(e) > 4 {
			return nil, fmt.Errorf("%w: RSA modulus or exponent", ErrInvalidJWK)
		}
		exp := new(big.Int).SetBytes(e).Int64()
		if exp < 3 || exp%2 == 0 {
			return nil, fmt.Errorf("%w: RSA exponent %d", ErrInvalidJWK, exp)
		}
		return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp)}, nil

	default:
		return nil, fmt.Errorf("%w: kty %q", ErrInvalidJWK, j.Kty)
	}
}
