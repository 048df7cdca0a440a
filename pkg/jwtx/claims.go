package jwtx

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Values of the "role" claim.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims is the access token body minted by the identity provider.
type Claims struct {
	jwt.RegisteredClaims

	Role        string `json:"role,omitempty"`
	EmailDomain string `json:"email_domain,omitempty"`
	Name        string `json:"name,omitempty"`
}

// NewClaims fills in a token body valid from now for ttl. Only dev tooling
// and tests mint tokens.
func NewClaims(subject, role, emailDomain, issuer string, audience []string, ttl time.Duration, now time.Time) Claims {
	var c Claims
	c.Issuer, c.Subject = issuer, subject
	if len(audience) > 0 {
		c.Audience = jwt.ClaimStrings(audience)
	}
	c.IssuedAt = jwt.NewNumericDate(now)
	c.NotBefore = c.IssuedAt
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	c.Role, c.EmailDomain = role, emailDomain
	return c
}

// IsAdmin reports an ADMIN role claim. Unknown roles are plain users.
func (c *Claims) IsAdmin() bool { return strings.EqualFold(c.Role, RoleAdmin) }

// check applies the registered-claim rules the parser was told to skip.
func (c *Claims) check(opts VerifyOptions, now time.Time) error {
	if c.Subject == "" {
		return ErrInvalidClaim
	}
	if opts.Issuer != "" && c.Issuer != opts.Issuer {
		return ErrIssuer
	}
	if len(opts.Audience) > 0 && !slices.ContainsFunc(opts.Audience, func(aud string) bool {
		return slices.Contains(c.Audience, aud)
	}) {
		return ErrAudience
	}

	switch {
	case c.ExpiresAt == nil:
		return ErrInvalidClaim
	case now.After(c.ExpiresAt.Add(opts.Leeway)):
		return ErrExpired
	case c.NotBefore != nil && now.Add(opts.Leeway).Before(c.NotBefore.Time):
		return ErrNotYetValid
	}
	return nil
}
