package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	sys, err := env.systems.Create(ctx, alice, SystemInput{Name: "  Payroll  ", Description: "hr", Tags: []string{"finance"}})
	require.NoError(t, err)
	require.Equal(t, "Payroll", sys.Name)
	require.Equal(t, alice.ID, sys.OwnerID)

	t.Run("validation", func(t *testing.T) {
		_, err := env.systems.Create(ctx, alice, SystemInput{Name: ""})
		require.ErrorIs(t, err, ErrValidation)
		_, err = env.systems.Create(ctx, alice, SystemInput{Name: strings.Repeat("x", maxNameLen+1)})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("search", func(t *testing.T) {
		found, err := env.systems.List(ctx, alice, "pay")
		require.NoError(t, err)
		require.Len(t, found, 1)

		found, err = env.systems.List(ctx, alice, "finance")
		require.NoError(t, err)
		require.Len(t, found, 1)

		found, err = env.systems.List(ctx, bob, "")
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("update", func(t *testing.T) {
		name := "Payroll v2"
		updated, err := env.systems.Update(ctx, alice, sys.ID, SystemUpdate{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Payroll v2", updated.Name)
		require.Equal(t, "hr", updated.Description)

		_, err = env.systems.Update(ctx, bob, sys.ID, SystemUpdate{Name: &name})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete cascades to credentials", func(t *testing.T) {
		cred := env.credential(t, alice, sys.ID, "payroll-secret")

		require.ErrorIs(t, env.systems.Delete(ctx, bob, sys.ID), ErrNotFound)
		require.NoError(t, env.systems.Delete(ctx, alice, sys.ID))

		_, err := env.credentials.Get(ctx, alice, cred.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}
