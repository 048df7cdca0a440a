package handoffsdk

import "time"

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "not_found")
	Error string `json:"error" example:"invalid_request"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty" example:"label is required"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of each dependency.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Keys     string `json:"keys" example:"ok"`
}

// ============================================================================
// Scope & Organization Types
// ============================================================================

// ScopeResponse is the caller's effective scope and their memberships.
type ScopeResponse struct {
	// Type is PERSONAL or ORGANIZATION
	Type           string           `json:"type" example:"ORGANIZATION"`
	OrganizationID string           `json:"organizationId,omitempty"`
	Memberships    []MembershipInfo `json:"memberships"`
}

// SetScopeRequest switches the active organization. An empty id returns to
// the personal scope.
type SetScopeRequest struct {
	OrganizationID string `json:"organizationId"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" example:"Platform Team"`
}

type OrganizationInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddMemberRequest struct {
	UserID string `json:"userId"`

	// Role is OWNER or MEMBER; MEMBER when omitted
	Role string `json:"role,omitempty" example:"MEMBER"`
}

type MembershipInfo struct {
	OrganizationID string    `json:"organizationId"`
	UserID         string    `json:"userId"`
	Role           string    `json:"role" example:"OWNER"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ============================================================================
// System Types
// ============================================================================

type SystemRequest struct {
	Name        string   `json:"name" example:"payroll-db"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateSystemRequest changes only the fields that are present.
type UpdateSystemRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type SystemInfo struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	ScopeType      string    `json:"scopeType" example:"PERSONAL"`
	OwnerID        string    `json:"ownerId"`
	OrganizationID string    `json:"organizationId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ListSystemsResponse struct {
	Systems []SystemInfo `json:"systems"`
}

// ============================================================================
// Credential Types
// ============================================================================

// SecretOptions selects how a secret is obtained.
type SecretOptions struct {
	// Mode is "generate" (default) or "manual"
	Mode string `json:"mode,omitempty" example:"generate"`

	// Preset is alpha, alnum or full; generate mode only
	Preset string `json:"preset,omitempty" example:"full"`

	// Length is 6-15; generate mode only
	Length int `json:"length,omitempty" example:"12"`

	// Secret is the caller-supplied value; manual mode only
	Secret string `json:"secret,omitempty"`
}

type CreateCredentialRequest struct {
	SystemID  string    `json:"systemId"`
	Label     string    `json:"label" example:"db admin"`
	Notes     string    `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	SecretOptions
}

// UpdateCredentialRequest changes only the fields that are present.
type UpdateCredentialRequest struct {
	SystemID  *string    `json:"systemId,omitempty"`
	Label     *string    `json:"label,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CredentialInfo never carries secret material.
type CredentialInfo struct {
	ID        string    `json:"id"`
	SystemID  string    `json:"systemId"`
	Label     string    `json:"label"`
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CredentialSecretResponse is returned by create and regenerate. The secret
// is shown exactly once.
type CredentialSecretResponse struct {
	Credential CredentialInfo `json:"credential"`
	Secret     string         `json:"secret"`
}

type ListCredentialsResponse struct {
	Credentials []CredentialInfo `json:"credentials"`
}

// ListCredentialsOptions maps onto the list query string.
type ListCredentialsOptions struct {
	Query         string
	SystemID      string
	Tag           string
	Status        string // active or expired
	ExpiresInDays int
	Sort          string // expiresAt-asc or createdAt-desc
}

type RevealResponse struct {
	CredentialID string `json:"credentialId"`
	Secret       string `json:"secret"`
}

// BatchRequest creates one credential per day from StartDate to EndDate
// inclusive. Dates are YYYY-MM-DD.
type BatchRequest struct {
	SystemID      string `json:"systemId"`
	LabelPrefix   string `json:"labelPrefix" example:"wifi"`
	StartDate     string `json:"startDate" example:"2025-03-10"`
	EndDate       string `json:"endDate" example:"2025-03-16"`
	ExpiresInDays int    `json:"expiresInDays,omitempty" example:"7"`
	Preset        string `json:"preset,omitempty"`
	Length        int    `json:"length,omitempty"`
}

type BatchResponse struct {
	Credentials []CredentialInfo `json:"credentials"`
}

// ============================================================================
// Handoff Types
// ============================================================================

// HandoffResponse is returned once at issuance. Token and URL are the only
// copies of the raw token.
type HandoffResponse struct {
	ID           string    `json:"id"`
	CredentialID string    `json:"credentialId"`
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	QRCode       string    `json:"qrCode" example:"data:image/png;base64,..."`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type HandoffInfo struct {
	ID           string     `json:"id"`
	CredentialID string     `json:"credentialId"`
	Status       string     `json:"status" example:"issued"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedBy    string     `json:"createdBy"`
	RedeemedAt   *time.Time `json:"redeemedAt,omitempty"`
}

type ListHandoffsResponse struct {
	Handoffs []HandoffInfo `json:"handoffs"`
}

type RedeemRequest struct {
	Token string `json:"token"`
}

type RedeemResponse struct {
	CredentialID string `json:"credentialId"`
	Secret       string `json:"secret"`
}
