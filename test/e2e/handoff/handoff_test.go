package handoff_test

import (
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestHandoffLifecycle issues a token, redeems it anonymously and checks it
// cannot be used again.
func TestHandoffLifecycle(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)

	created := createCredential(t, alice, "payroll-db")

	issued, err := alice.IssueHandoff(ctx, created.Credential.ID)
	require.NoError(t, err)
	require.Equal(t, created.Credential.ID, issued.CredentialID)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), issued.ExpiresAt, time.Minute)

	u, err := url.Parse(issued.URL)
	require.NoError(t, err)
	require.Equal(t, "handoff.e2e.test", u.Host)
	require.Equal(t, "/qr", u.Path)
	require.Equal(t, issued.Token, u.Query().Get("token"))
	require.Contains(t, issued.QRCode, "data:image/png;base64,")

	out, err := client.Redeem(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, created.Secret, out.Secret)

	_, err = client.Redeem(ctx, issued.Token)
	assertAPIError(t, err, http.StatusConflict, handoffsdk.ErrorCodeAlreadyRedeemed)

	list, err := alice.ListHandoffs(ctx, created.Credential.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "redeemed", list[0].Status)
}

// TestHandoffConcurrentRedeem fires parallel redemptions at one token; exactly
// one may receive the secret.
func TestHandoffConcurrentRedeem(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)

	created := createCredential(t, alice, "vpn")
	issued, err := alice.IssueHandoff(ctx, created.Credential.ID)
	require.NoError(t, err)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Redeem(ctx, issued.Token)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			var apiErr *handoffsdk.APIError
			if errorsAs(err, &apiErr) && apiErr.Code == handoffsdk.ErrorCodeAlreadyRedeemed {
				conflicts++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, conflicts)
}

// TestHandoffExpiry uses a short token lifetime to observe expiry.
func TestHandoffExpiry(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{tokenTTL: "2s"})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)

	created := createCredential(t, alice, "wifi")
	issued, err := alice.IssueHandoff(ctx, created.Credential.ID)
	require.NoError(t, err)

	time.Sleep(3 * time.Second)

	_, err = client.Redeem(ctx, issued.Token)
	expired := assertAPIError(t, err, http.StatusGone, handoffsdk.ErrorCodeInvalidHandoffToken)

	// Unknown tokens read the same; only the status differs
	_, err = client.Redeem(ctx, "never-issued-token-value")
	unknown := assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeInvalidHandoffToken)
	require.Equal(t, expired.Description, unknown.Description)

	list, err := alice.ListHandoffs(ctx, created.Credential.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "expired", list[0].Status)
	require.Nil(t, list[0].RedeemedAt)
}

// TestHandoffRevoke checks a revoked token is gone.
func TestHandoffRevoke(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)
	bob := login(t, client, idp, "bob", jwtx.RoleUser)

	created := createCredential(t, alice, "crm")
	issued, err := alice.IssueHandoff(ctx, created.Credential.ID)
	require.NoError(t, err)

	err = bob.RevokeHandoff(ctx, issued.ID)
	assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeNotFound)

	require.NoError(t, alice.RevokeHandoff(ctx, issued.ID))

	_, err = client.Redeem(ctx, issued.Token)
	assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeInvalidHandoffToken)
}

// TestRedeemRateLimit runs with production limits: the anonymous endpoint
// refuses a burst of guesses from one address.
func TestRedeemRateLimit(t *testing.T) {
	baseURL, _, cleanup := setupHandoffContainer(t, containerOptions{defaultRateLimits: true})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)

	var limited bool
	for range 10 {
		_, err := client.Redeem(ctx, "guessing-a-token-value")
		var apiErr *handoffsdk.APIError
		require.True(t, errorsAs(err, &apiErr))
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	}
	require.True(t, limited, "redeem endpoint should be rate limited")
}
