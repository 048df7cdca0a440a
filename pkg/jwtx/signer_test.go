package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSignRoundTrip(t *testing.T) {
	for _, alg := range []string{jwtx.AlgEdDSA, jwtx.AlgES256, jwtx.AlgRS256} {
		t.Run(alg, func(t *testing.T) {
			pemBytes, err := cryptox.GenerateSigningKey(alg)
			require.NoError(t, err)
			key, err := cryptox.ParseSigningKey(pemBytes)
			require.NoError(t, err)

			jwk, err := jwtx.NewJWK("dev-1", alg, key.Public())
			require.NoError(t, err)
			keys := jwtx.NewKeySet()
			require.NoError(t, keys.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{jwk}}))

			v, err := jwtx.NewVerifier(alg, keys, jwtx.VerifyOptions{Issuer: exampleIssuer})
			require.NoError(t, err)

			claims := jwtx.NewClaims("alice", jwtx.RoleUser, "example.com", exampleIssuer, nil, time.Minute, time.Now())
			signed, err := jwtx.Sign(alg, "dev-1", key, claims)
			require.NoError(t, err)

			got, err := v.Verify(signed)
			require.NoError(t, err)
			require.Equal(t, "alice", got.Subject)
			require.False(t, got.IsAdmin())
		})
	}
}

func TestNewJWKRejectsMismatchedAlgorithm(t *testing.T) {
	pemBytes, err := cryptox.GenerateSigningKey(jwtx.AlgEdDSA)
	require.NoError(t, err)
	key, err := cryptox.ParseSigningKey(pemBytes)
	require.NoError(t, err)

	_, err = jwtx.NewJWK("k", jwtx.AlgRS256, key.Public())
	require.ErrorIs(t, err, jwtx.ErrKeyTypeMismatch)

	_, err = jwtx.Sign("HS256", "k", key, jwtx.Claims{})
	require.ErrorIs(t, err, jwtx.ErrUnsupportedAlg)
}
