package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// HandoffTokenBytes is the entropy of a raw handoff token. It encodes to 43
// base64url characters, short enough for a QR code.
const HandoffTokenBytes = 32

// NewHandoffToken returns a fresh raw handoff token. Only its digest is ever
// persisted.
func NewHandoffToken() (string, error) {
	return randomToken(HandoffTokenBytes)
}

func randomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: token size %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
