package domain

import "time"

// HandoffStatus is derived from RedeemedAt and the clock; only the
// redemption is stored.
type HandoffStatus string

const (
	HandoffIssued   HandoffStatus = "issued"
	HandoffRedeemed HandoffStatus = "redeemed"
	HandoffExpired  HandoffStatus = "expired"
)

// HandoffToken is a single-use capability to reveal one credential's secret.
// Only the digest of the raw token is ever stored.
type HandoffToken struct {
	ID           string
	CredentialID string
	TokenHash    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	CreatedBy    string
	RedeemedAt   *time.Time
}

// Status derives the token state at now. Redeemed wins over expired.
func (t HandoffToken) Status(now time.Time) HandoffStatus {
	switch {
	case t.RedeemedAt != nil:
		return HandoffRedeemed
	case now.After(t.ExpiresAt):
		return HandoffExpired
	default:
		return HandoffIssued
	}
}
