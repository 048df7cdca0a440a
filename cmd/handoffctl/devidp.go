package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
)

// runDevKey writes a private signing key and the JWKS the service should
// trust, standing in for an identity provider during local development.
func runDevKey(args []string, stdout io.Writer) error {
	var alg, kid, keyOut, jwksOut string

	flagSet := pflag.NewFlagSet("devkey", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&alg, "alg", jwtx.AlgEdDSA, "signing algorithm: EdDSA, ES256 or RS256")
	flagSet.StringVar(&kid, "kid", "dev-key", "key id placed in the JWKS and token headers")
	flagSet.StringVar(&keyOut, "key-out", "dev-signing-key.pem", "path for the PEM private key")
	flagSet.StringVar(&jwksOut, "jwks-out", "dev-jwks.json", "path for the public JWKS")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	pemBytes, err := cryptox.GenerateSigningKey(alg)
	if err != nil {
		return err
	}
	key, err := cryptox.ParseSigningKey(pemBytes)
	if err != nil {
		return err
	}
	jwk, err := jwtx.NewJWK(kid, alg, key.Public())
	if err != nil {
		return err
	}
	jwks, err := json.MarshalIndent(jwtx.JWKS{Keys: []jwtx.JWK{jwk}}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(keyOut, pemBytes, 0o600); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	if err := os.WriteFile(jwksOut, append(jwks, '\n'), 0o644); err != nil {
		return fmt.Errorf("write jwks: %w", err)
	}

	_, err = fmt.Fprintf(stdout, "wrote %s (private) and %s\nstart the service with HANDOFF_JWKS_FILE=%s HANDOFF_JWT_ALGORITHM=%s\n",
		keyOut, jwksOut, jwksOut, alg)
	return err
}

// runDevToken mints an access token with a key written by devkey.
func runDevToken(args []string, stdout io.Writer) error {
	var keyPath, kid, subject, role, issuer, emailDomain string
	var audience []string
	var ttl time.Duration

	flagSet := pflag.NewFlagSet("devtoken", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&keyPath, "key", "dev-signing-key.pem", "PEM private key from devkey")
	flagSet.StringVar(&kid, "kid", "dev-key", "key id; must match the JWKS")
	flagSet.StringVar(&subject, "sub", "", "subject (actor id)")
	flagSet.StringVar(&role, "role", jwtx.RoleUser, "USER or ADMIN")
	flagSet.StringVar(&issuer, "issuer", "", "iss claim; must match HANDOFF_JWT_ISSUER when that is set")
	flagSet.StringSliceVar(&audience, "audience", nil, "aud claim values")
	flagSet.StringVar(&emailDomain, "email-domain", "", "email_domain claim")
	flagSet.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if subject == "" {
		return errors.New("--sub is required")
	}
	if role != jwtx.RoleUser && role != jwtx.RoleAdmin {
		return fmt.Errorf("--role must be %s or %s", jwtx.RoleUser, jwtx.RoleAdmin)
	}

	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	key, err := cryptox.ParseSigningKey(pemBytes)
	if err != nil {
		return err
	}
	alg, err := cryptox.SigningAlgorithm(key)
	if err != nil {
		return err
	}

	claims := jwtx.NewClaims(subject, role, emailDomain, issuer, audience, ttl, time.Now())
	token, err := jwtx.Sign(alg, kid, key, claims)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}
