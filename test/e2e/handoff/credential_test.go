package handoff_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func errorsAs(err error, target any) bool { return errors.As(err, target) }

// TestCredentialLifecycle walks create, reveal, regenerate, update and delete.
func TestCredentialLifecycle(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)

	created := createCredential(t, alice, "billing")
	id := created.Credential.ID

	revealed, err := alice.RevealSecret(ctx, id)
	require.NoError(t, err)
	require.Equal(t, created.Secret, revealed.Secret)

	regen, err := alice.RegenerateSecret(ctx, id, handoffsdk.SecretOptions{Preset: "alpha", Length: 10})
	require.NoError(t, err)
	require.Len(t, regen.Secret, 10)
	require.NotEqual(t, created.Secret, regen.Secret)

	revealed, err = alice.RevealSecret(ctx, id)
	require.NoError(t, err)
	require.Equal(t, regen.Secret, revealed.Secret)

	label := "billing api"
	tags := []string{"e2e", "api"}
	updated, err := alice.UpdateCredential(ctx, id, handoffsdk.UpdateCredentialRequest{Label: &label, Tags: &tags})
	require.NoError(t, err)
	require.Equal(t, label, updated.Label)
	require.ElementsMatch(t, tags, updated.Tags)

	found, err := alice.ListCredentials(ctx, handoffsdk.ListCredentialsOptions{Tag: "api"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, alice.DeleteCredential(ctx, id))
	_, err = alice.GetCredential(ctx, id)
	assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeNotFound)
}

// TestCredentialPolicy checks secret options are validated by the service.
func TestCredentialPolicy(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)

	sys, err := alice.CreateSystem(ctx, handoffsdk.SystemRequest{Name: "legacy"})
	require.NoError(t, err)

	base := handoffsdk.CreateCredentialRequest{SystemID: sys.ID, Label: "x", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("length above maximum", func(t *testing.T) {
		req := base
		req.Length = 16
		_, err := alice.CreateCredential(ctx, req)
		assertAPIError(t, err, http.StatusBadRequest, handoffsdk.ErrorCodeInvalidRequest)
	})

	t.Run("unknown preset", func(t *testing.T) {
		req := base
		req.Preset = "emoji"
		_, err := alice.CreateCredential(ctx, req)
		assertAPIError(t, err, http.StatusBadRequest, handoffsdk.ErrorCodeInvalidRequest)
	})

	t.Run("manual secrets disabled by default", func(t *testing.T) {
		req := base
		req.Mode = "manual"
		req.Secret = "Hunter22!x"
		_, err := alice.CreateCredential(ctx, req)
		assertAPIError(t, err, http.StatusForbidden, handoffsdk.ErrorCodeForbidden)
	})

	t.Run("batch", func(t *testing.T) {
		start := time.Now().UTC().AddDate(0, 0, 1)
		creds, err := alice.BatchCreateCredentials(ctx, handoffsdk.BatchRequest{
			SystemID:    sys.ID,
			LabelPrefix: "guest",
			StartDate:   start.Format(time.DateOnly),
			EndDate:     start.AddDate(0, 0, 6).Format(time.DateOnly),
		})
		require.NoError(t, err)
		require.Len(t, creds, 7)
		require.Equal(t, "guest-"+start.Format(time.DateOnly), creds[0].Label)
	})
}
