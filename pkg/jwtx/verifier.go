package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

var (
	ErrMalformed       = errors.New("jwtx: malformed token")
	ErrUnsupportedAlg  = errors.New("jwtx: unsupported algorithm")
	ErrMissingKID      = errors.New("jwtx: missing kid")
	ErrKeyTypeMismatch = errors.New("jwtx: key type does not match algorithm")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Supported signing algorithms.
const (
	AlgEdDSA = "EdDSA"
	AlgES256 = "ES256"
	AlgRS256 = "RS256"
)

type verifier struct {
	alg  string
	keys *KeySet
	opts VerifyOptions
}

// NewVerifier returns a verifier pinned to one algorithm. Tokens signed with
// any other algorithm are rejected before key lookup.
func NewVerifier(alg string, keys *KeySet, opts VerifyOptions) (Verifier, error) {
	switch alg {
	case AlgEdDSA, AlgES256, AlgRS256:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &verifier{alg: alg, keys: keys, opts: opts}, nil
}

func (v *verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.alg}),
		jwt.WithoutClaimsValidation(), // exp/nbf checked below with our clock
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMissingKID
		}

		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, err)
		}

		if !keyMatchesAlg(v.alg, pub) {
			return nil, ErrKeyTypeMismatch
		}
		return pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.check(v.opts, v.opts.Now().UTC()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func keyMatchesAlg(alg string, pub any) bool {
	switch alg {
	case AlgEdDSA:
		_, ok := pub.(ed25519.PublicKey)
		return ok
	case AlgES256:
		_, ok := pub.(*ecdsa.PublicKey)
		return ok
	case AlgRS256:
		_, ok := pub.(*rsa.PublicKey)
		return ok
	default:
		return false
	}
}
