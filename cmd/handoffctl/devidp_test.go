package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestDevKeyAndToken(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.pem")
	jwksPath := filepath.Join(dir, "jwks.json")

	var out bytes.Buffer
	require.NoError(t, run([]string{"devkey", "--alg", "ES256", "--kid", "k1", "--key-out", keyPath, "--jwks-out", jwksPath}, &out))
	require.Contains(t, out.String(), "HANDOFF_JWT_ALGORITHM=ES256")

	out.Reset()
	require.NoError(t, run([]string{
		"devtoken", "--key", keyPath, "--kid", "k1",
		"--sub", "alice", "--role", "ADMIN", "--issuer", "https://dev.local",
	}, &out))
	token := strings.TrimSpace(out.String())

	jwks, err := jwtx.LoadJWKSFile(jwksPath)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.ResetFromJWKS(jwks))

	v, err := jwtx.NewVerifier(jwtx.AlgES256, keys, jwtx.VerifyOptions{Issuer: "https://dev.local"})
	require.NoError(t, err)
	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.True(t, claims.IsAdmin())
}

func TestDevTokenValidation(t *testing.T) {
	var out bytes.Buffer

	require.ErrorContains(t, run([]string{"devtoken", "--key", "missing.pem"}, &out), "--sub is required")
	require.ErrorContains(t, run([]string{"devtoken", "--sub", "a", "--role", "OWNER"}, &out), "--role")
	require.Error(t, run([]string{"devtoken", "--sub", "a", "--key", filepath.Join(t.TempDir(), "nope.pem")}, &out))
	require.Error(t, run([]string{"devkey", "--alg", "HS256", "--key-out", filepath.Join(t.TempDir(), "k")}, &out))
}
