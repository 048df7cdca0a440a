package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/stretchr/testify/require"
)

func TestHandoffIssueAndRedeem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	sys := env.system(t, alice, "billing-db")
	cred := env.credential(t, alice, sys.ID, "s3cret-Pass")

	issued, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(issued.RawToken), 43)
	require.Equal(t, env.clock.Now().Add(5*time.Minute), issued.Token.ExpiresAt)
	require.True(t, strings.HasPrefix(issued.QRDataURL, "data:image/png;base64,"))

	// Only the digest is stored.
	stored, err := env.store.HandoffTokens().GetHandoffTokenByID(ctx, issued.Token.ID)
	require.NoError(t, err)
	require.Equal(t, env.codec.HashToken(issued.RawToken), stored.TokenHash)
	require.NotContains(t, stored.TokenHash, issued.RawToken)

	u, err := url.Parse(issued.URL)
	require.NoError(t, err)
	require.Equal(t, "/qr", u.Path)
	require.Equal(t, issued.RawToken, u.Query().Get("token"))

	// Redemption needs no actor at all.
	got, err := env.handoffs.Redeem(ctx, u.Query().Get("token"))
	require.NoError(t, err)
	require.Equal(t, "s3cret-Pass", got.Secret)
	require.Equal(t, cred.ID, got.CredentialID)

	t.Run("second redemption", func(t *testing.T) {
		_, err := env.handoffs.Redeem(ctx, issued.RawToken)
		require.ErrorIs(t, err, ErrAlreadyRedeemed)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.handoffs.Redeem(ctx, "definitely-not-a-real-token")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := env.handoffs.Redeem(ctx, "short")
		require.ErrorIs(t, err, ErrValidation)
	})

	require.Equal(t, []domain.AuditAction{
		domain.AuditCreate, // system
		domain.AuditCreate, // credential
		domain.AuditCreateQR,
		domain.AuditResolveQR,
		domain.AuditResolveQRRejected,
	}, env.audit.Actions())

	events := env.audit.Events()
	require.Equal(t, alice.ID, events[3].ActorID)
	require.Equal(t, issued.Token.ID, events[3].EntityID)
	require.Equal(t, "already_redeemed", events[4].Detail)
}

func TestHandoffExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("redeem within ttl", func(t *testing.T) {
		env := newTestEnv(t)
		cred := env.credential(t, alice, env.system(t, alice, "vpn").ID, "vpn-pass-1")

		issued, err := env.handoffs.Issue(ctx, alice, cred.ID)
		require.NoError(t, err)

		env.clock.Advance(4 * time.Minute)
		got, err := env.handoffs.Redeem(ctx, issued.RawToken)
		require.NoError(t, err)
		require.Equal(t, "vpn-pass-1", got.Secret)
	})

	t.Run("redeem after ttl", func(t *testing.T) {
		env := newTestEnv(t)
		cred := env.credential(t, alice, env.system(t, alice, "vpn").ID, "vpn-pass-1")

		issued, err := env.handoffs.Issue(ctx, alice, cred.ID)
		require.NoError(t, err)

		env.clock.Advance(6 * time.Minute)
		_, err = env.handoffs.Redeem(ctx, issued.RawToken)
		require.ErrorIs(t, err, ErrExpired)

		// Expiry never writes the token.
		tok, err := env.store.HandoffTokens().GetHandoffTokenByID(ctx, issued.Token.ID)
		require.NoError(t, err)
		require.Nil(t, tok.RedeemedAt)
		require.Equal(t, domain.HandoffExpired, tok.Status(env.clock.Now()))
	})

	t.Run("expired credential gets no token", func(t *testing.T) {
		env := newTestEnv(t)
		cred := env.credential(t, alice, env.system(t, alice, "vpn").ID, "vpn-pass-1")

		env.clock.Advance(31 * 24 * time.Hour)
		_, err := env.handoffs.Issue(ctx, alice, cred.ID)
		require.ErrorIs(t, err, ErrCredentialExpired)

		toks, err := env.store.HandoffTokens().ListHandoffTokensByCredential(ctx, cred.ID)
		require.NoError(t, err)
		require.Empty(t, toks)
	})
}

func TestHandoffConcurrentRedeem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cred := env.credential(t, alice, env.system(t, alice, "payroll").ID, "only-once-1")
	issued, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		redeemed  int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.handoffs.Redeem(ctx, issued.RawToken)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyRedeemed):
				redeemed++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, n-1, redeemed)
}

func TestHandoffVisibility(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cred := env.credential(t, alice, env.system(t, alice, "mail").ID, "mail-pass-1")

	t.Run("other user cannot issue", func(t *testing.T) {
		_, err := env.handoffs.Issue(ctx, bob, cred.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("admin can issue", func(t *testing.T) {
		_, err := env.handoffs.Issue(ctx, admin, cred.ID)
		require.NoError(t, err)
	})

	t.Run("anyone holding the token can redeem", func(t *testing.T) {
		issued, err := env.handoffs.Issue(ctx, alice, cred.ID)
		require.NoError(t, err)

		got, err := env.handoffs.Redeem(ctx, issued.RawToken)
		require.NoError(t, err)
		require.Equal(t, "mail-pass-1", got.Secret)
	})
}

func TestHandoffRevokeAndList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cred := env.credential(t, alice, env.system(t, alice, "wifi").ID, "wifi-pass-1")

	first, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	second, err := env.handoffs.Issue(ctx, alice, cred.ID)
	require.NoError(t, err)

	_, err = env.handoffs.Redeem(ctx, first.RawToken)
	require.NoError(t, err)

	views, err := env.handoffs.ListForCredential(ctx, alice, cred.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, second.Token.ID, views[0].Token.ID)
	require.Equal(t, domain.HandoffIssued, views[0].Status)
	require.Equal(t, domain.HandoffRedeemed, views[1].Status)

	_, err = env.handoffs.ListForCredential(ctx, bob, cred.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, env.handoffs.Revoke(ctx, bob, second.Token.ID), ErrNotFound)
	require.NoError(t, env.handoffs.Revoke(ctx, alice, second.Token.ID))
	// A redeemed token can still be cleaned up.
	require.NoError(t, env.handoffs.Revoke(ctx, alice, first.Token.ID))

	_, err = env.handoffs.Redeem(ctx, second.RawToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedemptionURL(t *testing.T) {
	require.Equal(t, "https://h.example/qr?token=a%2Bb", RedemptionURL("https://h.example/", "a+b"))
	require.Equal(t, "https://h.example/qr?token=abc", RedemptionURL("https://h.example", "abc"))
}
