package domain

import "time"

type AuditAction string

const (
	AuditCreate            AuditAction = "CREATE"
	AuditUpdate            AuditAction = "UPDATE"
	AuditDelete            AuditAction = "DELETE"
	AuditRegenerate        AuditAction = "REGENERATE"
	AuditReveal            AuditAction = "REVEAL"
	AuditBatchCreate       AuditAction = "BATCH_CREATE"
	AuditCreateQR          AuditAction = "CREATE_QR"
	AuditRevokeQR          AuditAction = "REVOKE_QR"
	AuditResolveQR         AuditAction = "RESOLVE_QR"
	AuditResolveQRRejected AuditAction = "RESOLVE_QR_REJECTED"
	AuditSetScope          AuditAction = "SET_SCOPE"
	AuditAddMember         AuditAction = "ADD_MEMBER"
	AuditRemoveMember      AuditAction = "REMOVE_MEMBER"
)

const (
	EntityCredential   = "Credential"
	EntitySystem       = "System"
	EntityHandoffToken = "QRToken"
	EntityOrganization = "Organization"
	EntityUser         = "User"
)

// AuditEntry records who did what to which entity. Detail carries an
// optional machine-readable reason, never secret material.
type AuditEntry struct {
	ID         string
	ActorID    string
	Action     AuditAction
	EntityType string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}
