package sqlite

import (
	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

// systemPredicate renders f as a WHERE fragment over the systems table
// aliased as alias. Credential queries join systems and reuse it.
func systemPredicate(f access.SystemFilter, alias string) (string, []any) {
	if f.Unrestricted {
		return "1 = 1", nil
	}

	switch f.ScopeType {
	case domain.ScopeOrganization:
		if f.OrganizationID == "" {
			break
		}
		return alias + ".scope_type = 'ORGANIZATION' AND " + alias + ".organization_id = ?",
			[]any{f.OrganizationID}
	case domain.ScopePersonal:
		if f.OwnerID == "" {
			break
		}
		return alias + ".scope_type = 'PERSONAL' AND " + alias + ".owner_id = ?",
			[]any{f.OwnerID}
	}
	return "1 = 0", nil
}
