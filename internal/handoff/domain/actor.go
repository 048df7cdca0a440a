package domain

// Role is the global role asserted by the identity provider.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Actor is the authenticated caller. It is built from verified token claims
// and trusted as given.
type Actor struct {
	ID          string
	Role        Role
	EmailDomain string
}

// IsAdmin reports whether the actor holds the global administrative role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
