package domain

// ScopeType classifies both the active scope of a request and the
// visibility boundary of a System.
type ScopeType string

const (
	ScopePersonal     ScopeType = "PERSONAL"
	ScopeOrganization ScopeType = "ORGANIZATION"
)

func (t ScopeType) Valid() bool {
	return t == ScopePersonal || t == ScopeOrganization
}

// Scope is the derived view an actor currently operates under. It is never
// persisted; see service.ScopeResolver.
//
// The zero value is the personal scope.
type Scope struct {
	Type           ScopeType
	OrganizationID string // set only for ScopeOrganization
}

// PersonalScope returns the least-privileged scope.
func PersonalScope() Scope { return Scope{Type: ScopePersonal} }

// OrganizationScope returns the scope of a single organization.
func OrganizationScope(orgID string) Scope {
	return Scope{Type: ScopeOrganization, OrganizationID: orgID}
}

// IsOrganization reports whether s is bound to an organization.
func (s Scope) IsOrganization() bool {
	return s.Type == ScopeOrganization && s.OrganizationID != ""
}
