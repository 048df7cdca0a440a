package handoff_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestOrganizationSharing shares a system through an organization and checks
// visibility follows membership.
func TestOrganizationSharing(t *testing.T) {
	baseURL, idp, cleanup := setupHandoffContainer(t, containerOptions{})
	defer cleanup()

	ctx := t.Context()
	client := handoffsdk.NewSDKClient(baseURL)
	alice := login(t, client, idp, "alice", jwtx.RoleUser)
	bob := login(t, client, idp, "bob", jwtx.RoleUser)
	carol := login(t, client, idp, "carol", jwtx.RoleUser)

	private := createCredential(t, alice, "alice-private")

	org, err := alice.CreateOrganization(ctx, "Platform")
	require.NoError(t, err)
	shared := createCredential(t, alice, "platform-db")

	_, err = alice.AddMember(ctx, org.ID, handoffsdk.AddMemberRequest{UserID: "bob"})
	require.NoError(t, err)

	scope, err := bob.SetScope(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, "ORGANIZATION", scope.Type)
	require.Len(t, scope.Memberships, 1)

	t.Run("members see organization credentials only", func(t *testing.T) {
		got, err := bob.GetCredential(ctx, shared.Credential.ID)
		require.NoError(t, err)
		require.Equal(t, shared.Credential.ID, got.ID)

		_, err = bob.GetCredential(ctx, private.Credential.ID)
		assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeNotFound)

		issued, err := bob.IssueHandoff(ctx, shared.Credential.ID)
		require.NoError(t, err)
		out, err := client.Redeem(ctx, issued.Token)
		require.NoError(t, err)
		require.Equal(t, shared.Secret, out.Secret)
	})

	t.Run("non members cannot switch in", func(t *testing.T) {
		_, err := carol.SetScope(ctx, org.ID)
		assertAPIError(t, err, http.StatusForbidden, handoffsdk.ErrorCodeForbidden)
	})

	t.Run("admins see everything", func(t *testing.T) {
		root := login(t, client, idp, "root", jwtx.RoleAdmin)
		creds, err := root.ListCredentials(ctx, handoffsdk.ListCredentialsOptions{})
		require.NoError(t, err)
		require.Len(t, creds, 2)
	})

	t.Run("removed members fall back to personal", func(t *testing.T) {
		require.NoError(t, alice.RemoveMember(ctx, org.ID, "bob"))

		scope, err := bob.GetScope(ctx)
		require.NoError(t, err)
		require.Equal(t, "PERSONAL", scope.Type)

		_, err = bob.GetCredential(ctx, shared.Credential.ID)
		assertAPIError(t, err, http.StatusNotFound, handoffsdk.ErrorCodeNotFound)
	})
}
