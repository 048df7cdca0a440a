package cryptox_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateSigningKey(t *testing.T) {
	for _, alg := range []string{"EdDSA", "ES256", "RS256"} {
		t.Run(alg, func(t *testing.T) {
			pemBytes, err := cryptox.GenerateSigningKey(alg)
			require.NoError(t, err)

			block, _ := pem.Decode(pemBytes)
			require.NotNil(t, block)
			require.Equal(t, "PRIVATE KEY", block.Type)

			key, err := cryptox.ParseSigningKey(pemBytes)
			require.NoError(t, err)

			got, err := cryptox.SigningAlgorithm(key)
			require.NoError(t, err)
			require.Equal(t, alg, got)
		})
	}

	_, err := cryptox.GenerateSigningKey("HS256")
	require.ErrorIs(t, err, cryptox.ErrUnsupportedKey)
}

func TestParseSigningKeyPKCS1(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	signer, err := cryptox.ParseSigningKey(pemBytes)
	require.NoError(t, err)
	require.True(t, key.Equal(signer))
}

func TestParseSigningKeyRejects(t *testing.T) {
	t.Run("not PEM", func(t *testing.T) {
		_, err := cryptox.ParseSigningKey([]byte("hello"))
		require.ErrorIs(t, err, cryptox.ErrUnsupportedKey)
	})

	t.Run("public key block", func(t *testing.T) {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKIXPublicKey(pub)
		require.NoError(t, err)

		_, err = cryptox.ParseSigningKey(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
		require.ErrorIs(t, err, cryptox.ErrUnsupportedKey)
	})

	t.Run("wrong curve", func(t *testing.T) {
		key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)

		_, err = cryptox.ParseSigningKey(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
		require.ErrorIs(t, err, cryptox.ErrUnsupportedKey)
	})
}
