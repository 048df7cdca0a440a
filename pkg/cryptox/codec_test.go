package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *cryptox.Codec {
	t.Helper()
	key, _, err := cryptox.LoadKey(cryptox.KeySource{AllowEphemeral: true})
	require.NoError(t, err)
	c, err := cryptox.NewCodec(key)
	require.NoError(t, err)
	return c
}

func TestCodecRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	for _, p := range []string{"", "a", "Tr0ub4dor&3", "ünïcødé secret ✓", string(make([]byte, 4096))} {
		sealed, err := c.Encrypt(p)
		require.NoError(t, err)

		got, err := c.Decrypt(sealed)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestCodecFreshNoncePerCall(t *testing.T) {
	c := newTestCodec(t)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCodecPayloadLayout(t *testing.T) {
	c := newTestCodec(t)

	sealed, err := c.Encrypt("hunter22")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	require.Equal(t, byte(cryptox.PayloadVersion), raw[0])
	require.Len(t, raw, 1+12+16+len("hunter22"))
}

func TestCodecFailsClosed(t *testing.T) {
	c := newTestCodec(t)

	sealed, err := c.Encrypt("correct horse battery staple")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	t.Run("any flipped bit", func(t *testing.T) {
		for i := range raw {
			for bit := range 8 {
				tampered := append([]byte(nil), raw...)
				tampered[i] ^= 1 << bit

				got, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
				require.ErrorIs(t, err, cryptox.ErrDecryptionFailed, "byte %d bit %d", i, bit)
				require.Empty(t, got)
			}
		}
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 1, 13, 28, len(raw) - 1} {
			_, err := c.Decrypt(base64.StdEncoding.EncodeToString(raw[:n]))
			require.ErrorIs(t, err, cryptox.ErrDecryptionFailed, "length %d", n)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestCodec(t)
		_, err := other.Decrypt(sealed)
		require.ErrorIs(t, err, cryptox.ErrDecryptionFailed)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := c.Decrypt("iv:tag:data")
		require.ErrorIs(t, err, cryptox.ErrDecryptionFailed)
	})
}

func TestNewCodecRejectsShortKey(t *testing.T) {
	_, err := cryptox.NewCodec(make([]byte, 16))
	require.ErrorIs(t, err, cryptox.ErrInvalidKey)
}

func TestHash(t *testing.T) {
	c := newTestCodec(t)

	h1 := c.Hash("p1")
	require.Len(t, h1, 64)
	require.Equal(t, h1, c.Hash("p1"))
	require.NotEqual(t, h1, c.Hash("p2"))

	// Digests don't depend on the key.
	require.Equal(t, h1, newTestCodec(t).Hash("p1"))
	require.Equal(t, cryptox.Digest("tok"), c.HashToken("tok"))

	// Known vector.
	require.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		cryptox.Digest("abc"),
	)
}

func TestCodecStringHidesKey(t *testing.T) {
	c := newTestCodec(t)
	require.Equal(t, "cryptox.Codec{aes-256-gcm}", c.String())
}
