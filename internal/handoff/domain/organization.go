package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type MembershipRole string

const (
	MembershipOwner  MembershipRole = "OWNER"
	MembershipMember MembershipRole = "MEMBER"
)

func (r MembershipRole) Valid() bool {
	return r == MembershipOwner || r == MembershipMember
}

type Membership struct {
	OrganizationID string
	UserID         string
	Role           MembershipRole
	CreatedAt      time.Time
}
