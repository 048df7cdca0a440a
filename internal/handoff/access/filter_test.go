package access_test

import (
	"testing"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Actor{ID: "alice", Role: domain.RoleUser}
	admin = domain.Actor{ID: "root", Role: domain.RoleAdmin}

	alicePersonal = domain.System{ID: "s1", ScopeType: domain.ScopePersonal, OwnerID: "alice"}
	bobPersonal   = domain.System{ID: "s2", ScopeType: domain.ScopePersonal, OwnerID: "bob"}
	acmeSystem    = domain.System{ID: "s3", ScopeType: domain.ScopeOrganization, OwnerID: "bob", OrganizationID: "acme"}
	otherSystem   = domain.System{ID: "s4", ScopeType: domain.ScopeOrganization, OwnerID: "alice", OrganizationID: "globex"}
)

func TestSystemsFilter(t *testing.T) {
	t.Parallel()

	t.Run("admin is unrestricted in any scope", func(t *testing.T) {
		for _, scope := range []domain.Scope{domain.PersonalScope(), domain.OrganizationScope("acme")} {
			f := access.Systems(admin, scope)
			require.True(t, f.Unrestricted)
			for _, s := range []domain.System{alicePersonal, bobPersonal, acmeSystem, otherSystem} {
				require.True(t, f.Allows(s))
			}
		}
	})

	t.Run("personal scope sees only own personal systems", func(t *testing.T) {
		f := access.Systems(alice, domain.PersonalScope())
		require.Equal(t, access.SystemFilter{ScopeType: domain.ScopePersonal, OwnerID: "alice"}, f)

		require.True(t, f.Allows(alicePersonal))
		require.False(t, f.Allows(bobPersonal))
		require.False(t, f.Allows(acmeSystem))
		// Owning an organization system does not make it personal.
		require.False(t, f.Allows(otherSystem))
	})

	t.Run("organization scope sees that organization only", func(t *testing.T) {
		f := access.Systems(alice, domain.OrganizationScope("acme"))
		require.Equal(t, access.SystemFilter{ScopeType: domain.ScopeOrganization, OrganizationID: "acme"}, f)

		require.True(t, f.Allows(acmeSystem))
		require.False(t, f.Allows(otherSystem))
		require.False(t, f.Allows(alicePersonal))
	})

	t.Run("organization scope without id degrades to personal", func(t *testing.T) {
		f := access.Systems(alice, domain.Scope{Type: domain.ScopeOrganization})
		require.Equal(t, domain.ScopePersonal, f.ScopeType)
	})

	t.Run("zero filter allows nothing", func(t *testing.T) {
		require.False(t, access.SystemFilter{}.Allows(alicePersonal))
	})
}

func TestCredentialsFilterFollowsSystem(t *testing.T) {
	t.Parallel()

	for _, actor := range []domain.Actor{alice, admin} {
		for _, scope := range []domain.Scope{domain.PersonalScope(), domain.OrganizationScope("acme")} {
			cf := access.Credentials(actor, scope)
			sf := access.Systems(actor, scope)
			require.Equal(t, sf, cf.System)

			for _, s := range []domain.System{alicePersonal, bobPersonal, acmeSystem, otherSystem} {
				require.Equal(t, sf.Allows(s), cf.Allows(s))
			}
		}
	}
}
