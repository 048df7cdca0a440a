package jwtx_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://idp.example"

func sign(t *testing.T, method jwt.SigningMethod, kid string, key any, claims jwtx.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifierAlgorithms(t *testing.T) {
	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ecPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaPriv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		alg    string
		kid    string
		method jwt.SigningMethod
		pub    any
		priv   any
	}{
		{jwtx.AlgEdDSA, "ed", jwt.SigningMethodEdDSA, edPub, edPriv},
		{jwtx.AlgES256, "ec", jwt.SigningMethodES256, &ecPriv.PublicKey, ecPriv},
		{jwtx.AlgRS256, "rsa", jwt.SigningMethodRS256, &rsaPriv.PublicKey, rsaPriv},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			jwk, err := jwtx.NewJWK(tt.kid, tt.alg, tt.pub)
			require.NoError(t, err)
			keys := jwtx.NewKeySet()
			require.NoError(t, keys.AddJWK(jwk))

			v, err := jwtx.NewVerifier(tt.alg, keys, jwtx.VerifyOptions{Issuer: exampleIssuer, Audience: []string{"handoff"}})
			require.NoError(t, err)

			claims := jwtx.NewClaims("user-1", jwtx.RoleAdmin, "example.com", exampleIssuer, []string{"handoff"}, 5*time.Minute, time.Now())
			got, err := v.Verify(sign(t, tt.method, tt.kid, tt.priv, claims))
			require.NoError(t, err)
			require.Equal(t, "user-1", got.Subject)
			require.True(t, got.IsAdmin())
			require.Equal(t, "example.com", got.EmailDomain)
		})
	}
}

func TestVerifierRejections(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	jwk, err := jwtx.NewJWK("k1", jwtx.AlgEdDSA, pub)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddJWK(jwk))

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, jwtx.VerifyOptions{
		Issuer:   exampleIssuer,
		Audience: []string{"handoff"},
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)

	good := jwtx.NewClaims("u", jwtx.RoleUser, "", exampleIssuer, []string{"handoff"}, time.Minute, now)

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewClaims("u", jwtx.RoleUser, "", exampleIssuer, []string{"handoff"}, time.Minute, now.Add(-time.Hour))
		_, err := v.Verify(sign(t, jwt.SigningMethodEdDSA, "k1", priv, c))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := jwtx.NewClaims("u", jwtx.RoleUser, "", "someone-else", []string{"handoff"}, time.Minute, now)
		_, err := v.Verify(sign(t, jwt.SigningMethodEdDSA, "k1", priv, c))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := jwtx.NewClaims("u", jwtx.RoleUser, "", exampleIssuer, []string{"chat"}, time.Minute, now)
		_, err := v.Verify(sign(t, jwt.SigningMethodEdDSA, "k1", priv, c))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("unknown kid", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodEdDSA, "k2", priv, good))
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := jwtx.NewClaims("", jwtx.RoleUser, "", exampleIssuer, []string{"handoff"}, time.Minute, now)
		_, err := v.Verify(sign(t, jwt.SigningMethodEdDSA, "k1", priv, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("other algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, good)
		tok.Header["kid"] = "k1"
		s, err := tok.SignedString([]byte("shared"))
		require.NoError(t, err)
		_, err = v.Verify(s)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestNewVerifierUnsupported(t *testing.T) {
	_, err := jwtx.NewVerifier("HS256", jwtx.NewKeySet(), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrUnsupportedAlg)
}
