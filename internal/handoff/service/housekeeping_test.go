package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenSweeper(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	cred := env.credential(t, alice, env.system(t, alice, "ci").ID, "ci-secret-1")

	stale, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)
	used, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)
	_, err = env.handoffs.Redeem(ctx, used.RawToken)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	fresh, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)

	sweeper := &TokenSweeper{Store: env.store, Interval: time.Hour, Now: env.clock.Now}

	t.Run("sweep removes only expired unredeemed tokens", func(t *testing.T) {
		require.Equal(t, int64(1), sweeper.Sweep(ctx))

		views, err := env.handoffs.ListForCredential(ctx, alice, cred.ID)
		require.NoError(t, err)
		ids := []string{views[0].Token.ID, views[1].Token.ID}
		require.ElementsMatch(t, []string{fresh.Token.ID, used.Token.ID}, ids)
		require.NotContains(t, ids, stale.Token.ID)

		require.Zero(t, sweeper.Sweep(ctx))
	})

	t.Run("run stops with its context", func(t *testing.T) {
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			sweeper.Run(runCtx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("sweeper did not stop")
		}
	})
}
