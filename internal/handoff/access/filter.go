// Package access builds the storage-agnostic visibility predicates that decide
// which systems and credentials an actor may see or mutate.
//
// Admins get the unrestricted predicate. That is a global trust boundary:
// anyone holding the ADMIN role sees every tenant's systems. Redemption of a
// handoff token does not consult these filters at all.
package access

import "github.com/aussiebroadwan/handoff/internal/handoff/domain"

// SystemFilter is a structured predicate over systems. The storage layer
// translates it; Allows evaluates it in memory.
type SystemFilter struct {
	Unrestricted bool

	ScopeType      domain.ScopeType
	OwnerID        string // personal scope only
	OrganizationID string // organization scope only
}

// CredentialFilter restricts credentials through their owning system.
// Credentials carry no scope of their own.
type CredentialFilter struct {
	System SystemFilter
}

// Systems returns the system predicate for actor under scope. Rules, first
// match wins: admin sees everything; organization scope sees that
// organization's systems; otherwise only the actor's personal systems.
func Systems(actor domain.Actor, scope domain.Scope) SystemFilter {
	if actor.IsAdmin() {
		return SystemFilter{Unrestricted: true}
	}
	if scope.IsOrganization() {
		return SystemFilter{
			ScopeType:      domain.ScopeOrganization,
			OrganizationID: scope.OrganizationID,
		}
	}
	return SystemFilter{
		ScopeType: domain.ScopePersonal,
		OwnerID:   actor.ID,
	}
}

// Credentials returns the credential predicate for actor under scope.
func Credentials(actor domain.Actor, scope domain.Scope) CredentialFilter {
	return CredentialFilter{System: Systems(actor, scope)}
}

// Allows reports whether s satisfies the filter.
func (f SystemFilter) Allows(s domain.System) bool {
	if f.Unrestricted {
		return true
	}
	switch f.ScopeType {
	case domain.ScopeOrganization:
		return s.ScopeType == domain.ScopeOrganization &&
			f.OrganizationID != "" &&
			s.OrganizationID == f.OrganizationID
	case domain.ScopePersonal:
		return s.ScopeType == domain.ScopePersonal &&
			f.OwnerID != "" &&
			s.OwnerID == f.OwnerID
	default:
		return false
	}
}

// Allows reports whether a credential owned by system is visible.
func (f CredentialFilter) Allows(system domain.System) bool {
	return f.System.Allows(system)
}
