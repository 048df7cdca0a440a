package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
)

var errNoJWKS = errors.New("no identity provider keys configured: set HANDOFF_JWKS_URL or HANDOFF_JWKS_FILE")

// InitDataKey builds the secret codec from the configured key material.
//
// Outside ENV=dev a missing key is fatal. In dev a random key is generated
// and every sealed secret becomes unreadable on restart.
func InitDataKey(cfg Config, logger *slog.Logger) (*cryptox.Codec, error) {
	key, ephemeral, err := cryptox.LoadKey(cryptox.KeySource{
		Base64:         cfg.DataKey,
		File:           cfg.DataKeyFile,
		AllowEphemeral: cfg.IsDev(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load data key: %w", err)
	}

	if ephemeral {
		logger.Warn("no data key configured, generated an ephemeral key; stored secrets will not survive a restart")
	} else {
		logger.Info("data key loaded", "from_file", cfg.DataKey == "" && cfg.DataKeyFile != "")
	}

	return cryptox.NewCodec(key)
}

// InitVerifier loads the identity provider's signing keys and returns a
// verifier for its access tokens.
//
// Key sources:
//   - HANDOFF_JWKS_URL: fetched once at startup, then refreshed by the
//     returned Refresher so the provider can rotate keys.
//   - HANDOFF_JWKS_FILE: read once. Useful for tests and air-gapped installs.
//
// The Refresher is nil when keys come from a file.
func InitVerifier(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, *jwtx.Refresher, error) {
	keys := jwtx.NewKeySet()
	var refresher *jwtx.Refresher

	switch {
	case cfg.JWKSURL != "":
		refresher = &jwtx.Refresher{
			Keys:     keys,
			URL:      cfg.JWKSURL,
			Interval: cfg.JWKSRefresh,
			Logger:   logger,
		}

		fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		// Readiness reports the missing keys until a later refresh succeeds
		if err := refresher.Refresh(fetchCtx); err != nil {
			logger.Warn("initial jwks fetch failed, will retry", "url", cfg.JWKSURL, "error", err)
		} else {
			logger.Info("jwks loaded", "url", cfg.JWKSURL, "keys", keys.Len())
		}

	case cfg.JWKSFile != "":
		jwks, err := jwtx.LoadJWKSFile(cfg.JWKSFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load jwks file: %w", err)
		}
		if err := keys.ResetFromJWKS(jwks); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to parse jwks file: %w", err)
		}
		logger.Info("jwks loaded", "file", cfg.JWKSFile, "keys", keys.Len())

	default:
		return nil, nil, nil, errNoJWKS
	}

	verifier, err := jwtx.NewVerifier(cfg.JWTAlgorithm, keys, jwtx.VerifyOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   30 * time.Second,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	logger.Info("access token verification configured",
		"algorithm", cfg.JWTAlgorithm,
		"issuer", cfg.JWTIssuer,
		"audience", cfg.JWTAudience,
	)
	return keys, verifier, refresher, nil
}
