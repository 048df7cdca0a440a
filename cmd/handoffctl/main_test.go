package main

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/passgen"
	"github.com/stretchr/testify/require"
)

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"keygen"}, &out))

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Len(t, key, 32)
}

func TestPassgen(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"passgen"}, &out))

		lines := strings.Fields(out.String())
		require.Len(t, lines, 1)
		require.Len(t, lines[0], passgen.DefaultLength)
	})

	t.Run("preset length and count", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"passgen", "--preset", "alnum", "-l", "8", "-n", "5"}, &out))

		policy, err := passgen.PresetAlnum.Policy(8)
		require.NoError(t, err)

		lines := strings.Fields(out.String())
		require.Len(t, lines, 5)
		for _, l := range lines {
			require.Len(t, l, 8)
			require.True(t, policy.Satisfied(l), l)
		}
	})

	t.Run("rejects out of range length", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, run([]string{"passgen", "--length", "3"}, &out))
	})

	t.Run("rejects unknown preset", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, run([]string{"passgen", "--preset", "emoji"}, &out))
	})
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run([]string{"frobnicate"}, &out))
	require.Contains(t, out.String(), "Usage: handoffctl")

	require.Error(t, run(nil, &out))
}
