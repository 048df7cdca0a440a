package domain

import "time"

// System is an external target that credentials belong to. ScopeType,
// OwnerID and OrganizationID are fixed at creation.
type System struct {
	ID             string
	Name           string
	Description    string
	Tags           []string
	ScopeType      ScopeType
	OwnerID        string
	OrganizationID string // empty for personal systems
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
