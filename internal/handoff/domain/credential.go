package domain

import "time"

// Credential is a generated secret for one System. EncryptedSecret and
// SecretHash are always written together from the same plaintext.
type Credential struct {
	ID              string
	SystemID        string
	Label           string
	Notes           string
	Tags            []string
	ExpiresAt       time.Time
	EncryptedSecret string // sealed payload, never plaintext
	SecretHash      string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired reports whether the credential is stale at now.
func (c Credential) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
