package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHandoffToken(t *testing.T) {
	seen := make(map[string]struct{})
	for range 64 {
		tok, err := NewHandoffToken()
		require.NoError(t, err)
		require.Len(t, tok, 43)

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		require.Len(t, raw, HandoffTokenBytes)

		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestRandomTokenRejectsSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		tok, err := randomToken(n)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}
