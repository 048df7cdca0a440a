package jwtx

import (
	"crypto"
	"errors"
	"fmt"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the identity provider's verification keys by kid. Requests
// read it while the Refresher replaces it.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]crypto.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]crypto.PublicKey)}
}

// AddJWK decodes j and adds it, replacing any key with the same kid.
func (k *KeySet) AddJWK(j JWK) error {
	kid, pub, err := decodeSigningKey(j)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[kid] = pub
	return nil
}

func (k *KeySet) Get(kid string) (crypto.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pub, ok := k.keys[kid]
	if !ok {
		return nil, ErrNoKey
	}
	return pub, nil
}

func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

// IsReady reports whether any token could currently be verified.
func (k *KeySet) IsReady() bool { return k.Len() > 0 }

// ResetFromJWKS replaces the whole set. Encryption keys are skipped. If any
// signing key fails to decode the current set is kept.
func (k *KeySet) ResetFromJWKS(jwks JWKS) error {
	next := make(map[string]crypto.PublicKey, len(jwks.Keys))
	for _, j := range jwks.Keys {
		if j.Use == "enc" {
			continue
		}
		kid, pub, err := decodeSigningKey(j)
		if err != nil {
			return err
		}
		next[kid] = pub
	}

	k.mu.Lock()
	k.keys = next
	k.mu.Unlock()
	return nil
}

func decodeSigningKey(j JWK) (string, crypto.PublicKey, error) {
	if j.Kid == "" {
		return "", nil, fmt.Errorf("%w: key without kid", ErrInvalidJWK)
	}
	pub, err := j.PublicKey()
	if err != nil {
		return "", nil, fmt.Errorf("kid %q: %w", j.Kid, err)
	}
	return j.Kid, pub, nil
}
