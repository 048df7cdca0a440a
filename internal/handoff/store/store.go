package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict means a conditional update matched no row because the
	// guarded column had already changed.
	ErrConflict = errors.New("store: conditional update lost")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories so a transaction-scoped Store looks exactly like
// the root one, and nested transactions are impossible to start by accident.
type Store interface {
	Users() Users
	Organizations() Organizations
	Memberships() Memberships
	Systems() Systems
	Credentials() Credentials
	HandoffTokens() HandoffTokens
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, an
	// error rolls back. Inside fn use the tx repositories only.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users holds the only per-user state kept locally: the active organization
// preference. Identity itself lives with the external provider.
type Users interface {
	// GetActiveOrganization returns the stored preference, or "" when the
	// user has none or has never been seen.
	GetActiveOrganization(ctx context.Context, userID string) (string, error)

	// SetActiveOrganization upserts the preference. An empty orgID clears it.
	SetActiveOrganization(ctx context.Context, userID, orgID string, now time.Time) error

	// ClearActiveOrganization resets the preference of every user pointing at orgID.
	ClearActiveOrganization(ctx context.Context, orgID string, now time.Time) error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, org domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// DeleteOrganization cascades to memberships and organization systems.
	DeleteOrganization(ctx context.Context, id string) error
}

type Memberships interface {
	// CreateMembership fails with ErrAlreadyExists for a duplicate pair.
	CreateMembership(ctx context.Context, m domain.Membership) error
	GetMembership(ctx context.Context, orgID, userID string) (domain.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error)
	DeleteMembership(ctx context.Context, orgID, userID string) error
}

type Systems interface {
	CreateSystem(ctx context.Context, s domain.System) error

	// GetSystem returns the system only when filter allows it, ErrNotFound otherwise.
	GetSystem(ctx context.Context, id string, filter access.SystemFilter) (domain.System, error)

	// ListSystems orders by updated_at desc. query matches name (case
	// insensitive) or an exact tag.
	ListSystems(ctx context.Context, filter access.SystemFilter, query string) ([]domain.System, error)

	// UpdateSystem writes name, description, tags and updated_at. Scope
	// columns are never touched.
	UpdateSystem(ctx context.Context, s domain.System) error

	// DeleteSystem cascades to credentials and their handoff tokens.
	DeleteSystem(ctx context.Context, id string) error
}

// CredentialSort selects the list ordering.
type CredentialSort string

const (
	SortExpiresAtAsc  CredentialSort = "expiresAt-asc"
	SortCreatedAtDesc CredentialSort = "createdAt-desc"
)

// CredentialStatus filters on the expiry clock.
type CredentialStatus string

const (
	StatusAny     CredentialStatus = ""
	StatusActive  CredentialStatus = "active"
	StatusExpired CredentialStatus = "expired"
)

// CredentialQuery narrows ListCredentials beyond the permission filter.
type CredentialQuery struct {
	Text          string // label or notes, case insensitive
	SystemID      string
	Tag           string
	Status        CredentialStatus
	ExpiresWithin time.Duration // > 0 keeps credentials expiring in [now, now+d]
	Sort          CredentialSort
	Now           time.Time
}

type Credentials interface {
	CreateCredential(ctx context.Context, c domain.Credential) error

	// GetCredential joins through the owning system; invisible rows are ErrNotFound.
	GetCredential(ctx context.Context, id string, filter access.CredentialFilter) (domain.Credential, error)

	ListCredentials(ctx context.Context, filter access.CredentialFilter, q CredentialQuery) ([]domain.Credential, error)

	// UpdateCredential writes metadata only: system, label, notes, tags, expiry.
	UpdateCredential(ctx context.Context, c domain.Credential) error

	// UpdateCredentialSecret replaces the sealed payload and hash together.
	UpdateCredentialSecret(ctx context.Context, id, encryptedSecret, secretHash string, now time.Time) error

	DeleteCredential(ctx context.Context, id string) error
}

type HandoffTokens interface {
	CreateHandoffToken(ctx context.Context, t domain.HandoffToken) error
	GetHandoffTokenByID(ctx context.Context, id string) (domain.HandoffToken, error)

	// GetHandoffTokenByHash is an indexed equality lookup on the unique digest.
	GetHandoffTokenByHash(ctx context.Context, hash string) (domain.HandoffToken, error)

	// MarkHandoffTokenRedeemed sets redeemed_at only if it is still NULL.
	// It returns ErrConflict when another redemption got there first.
	MarkHandoffTokenRedeemed(ctx context.Context, id string, at time.Time) error

	ListHandoffTokensByCredential(ctx context.Context, credentialID string) ([]domain.HandoffToken, error)

	// DeleteHandoffToken is idempotent.
	DeleteHandoffToken(ctx context.Context, id string) error
	DeleteHandoffTokensByCredential(ctx context.Context, credentialID string) error

	// DeleteExpiredHandoffTokens removes unredeemed tokens past expiry and
	// reports how many were removed. Housekeeping only.
	DeleteExpiredHandoffTokens(ctx context.Context, now time.Time) (int64, error)
}

type AuditLog interface {
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditEntriesByEntity returns entries oldest first.
	ListAuditEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditEntry, error)
}
