package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/telemetry"
	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/qrx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

const (
	DefaultHandoffTTL = 5 * time.Minute

	// Shortest raw token accepted for redemption; anything shorter cannot
	// have been minted here.
	minRawTokenLen = 10
)

// HandoffService issues and redeems single-use handoff tokens.
//
// Token states are Issued, Redeemed (terminal) and Expired (terminal, derived
// from the clock). Only the Issued -> Redeemed transition is written, with a
// conditional update so concurrent redemptions of one token yield exactly one
// success.
type HandoffService struct {
	Store   store.Store
	Codec   *cryptox.Codec
	Audit   audit.Sink
	TTL     time.Duration
	BaseURL string
	QRSize  int
	Now     func() time.Time
}

// IssuedHandoff is returned once. RawToken is never stored or logged.
type IssuedHandoff struct {
	Token     domain.HandoffToken
	RawToken  string
	URL       string
	QRDataURL string
}

// Redemption is the result of a successful redeem.
type Redemption struct {
	CredentialID string
	Secret       string
}

// HandoffView pairs a stored token with its derived status.
type HandoffView struct {
	Token  domain.HandoffToken
	Status domain.HandoffStatus
}

// Issue mints a token for a credential the actor can see. Stale credentials
// get ErrCredentialExpired and no token row is written.
func (s *HandoffService) Issue(ctx context.Context, actor domain.Actor, credentialID string) (IssuedHandoff, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Authorize against the credential
	filter, err := s.filter(ctx, actor)
	if err != nil {
		return IssuedHandoff{}, err
	}

	// 2. Generate the raw token; only its digest is stored
	raw, err := cryptox.NewHandoffToken()
	if err != nil {
		log.Error("failed to generate handoff token", slog.Any("error", err))
		return IssuedHandoff{}, err
	}

	tok := domain.HandoffToken{
		ID:           idx.NewAt(now).String(),
		CredentialID: credentialID,
		TokenHash:    s.Codec.HashToken(raw),
		ExpiresAt:    now.Add(s.ttl()),
		CreatedAt:    now,
		CreatedBy:    actor.ID,
	}

	// 3. Check the credential and insert in one transaction
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		cred, err := tx.Credentials().GetCredential(ctx, credentialID, filter)
		if err != nil {
			return err
		}
		if cred.IsExpired(now) {
			return ErrCredentialExpired
		}
		return tx.HandoffTokens().CreateHandoffToken(ctx, tok)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialExpired):
			log.Warn("handoff refused for expired credential", slog.String("credential_id", credentialID))
		case !errors.Is(err, store.ErrNotFound):
			log.Error("failed to issue handoff token", slog.Any("error", err))
		}
		return IssuedHandoff{}, mapStoreErr(err)
	}

	// 4. Build the out-of-band payload
	link := RedemptionURL(s.BaseURL, raw)
	dataURL, err := qrx.DataURL(link, s.QRSize)
	if err != nil {
		log.Error("failed to render handoff QR", slog.Any("error", err))
		return IssuedHandoff{}, err
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditCreateQR,
		EntityType: domain.EntityHandoffToken, EntityID: tok.ID,
	})
	telemetry.HandoffTokensIssuedTotal.Inc()

	log.Info("handoff token issued",
		slog.String("token_id", tok.ID),
		slog.String("credential_id", credentialID),
		slog.Time("expires_at", tok.ExpiresAt),
	)

	return IssuedHandoff{Token: tok, RawToken: raw, URL: link, QRDataURL: dataURL}, nil
}

// Redeem consumes a raw token and returns the secret once. It needs no actor:
// possession of the raw token is the only credential, whatever the role of
// whoever presents it.
func (s *HandoffService) Redeem(ctx context.Context, rawToken string) (Redemption, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	rawToken = strings.TrimSpace(rawToken)
	if len(rawToken) < minRawTokenLen {
		return Redemption{}, validationErr("token is malformed")
	}

	var (
		tok    domain.HandoffToken
		result Redemption
	)

	// 1. Look up, check, mark and decrypt atomically
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		tok, err = tx.HandoffTokens().GetHandoffTokenByHash(ctx, s.Codec.HashToken(rawToken))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if tok.RedeemedAt != nil {
			return ErrAlreadyRedeemed
		}
		if now.After(tok.ExpiresAt) {
			return ErrExpired
		}

		// 2. Compare-and-set redeemed_at; a lost race is a double redemption
		if err := tx.HandoffTokens().MarkHandoffTokenRedeemed(ctx, tok.ID, now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrAlreadyRedeemed
			}
			return err
		}

		// 3. Only now open the secret. Failure rolls the redemption back.
		cred, err := tx.Credentials().GetCredential(ctx, tok.CredentialID, access.CredentialFilter{
			System: access.SystemFilter{Unrestricted: true},
		})
		if err != nil {
			return err
		}
		secret, err := s.Codec.Decrypt(cred.EncryptedSecret)
		if err != nil {
			return ErrDecryptionFailed
		}

		result = Redemption{CredentialID: cred.ID, Secret: secret}
		return nil
	})
	if err != nil {
		s.rejected(ctx, tok, err)
		return Redemption{}, mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: tok.CreatedBy, Action: domain.AuditResolveQR,
		EntityType: domain.EntityHandoffToken, EntityID: tok.ID,
	})
	telemetry.HandoffRedemptionsTotal.WithLabelValues(telemetry.OutcomeSuccess).Inc()

	log.Info("handoff token redeemed",
		slog.String("token_id", tok.ID),
		slog.String("credential_id", result.CredentialID),
	)
	return result, nil
}

// rejected logs, counts and, when the token is known, audits a failed
// redemption. The distinction stays internal.
func (s *HandoffService) rejected(ctx context.Context, tok domain.HandoffToken, err error) {
	log := slogx.FromContext(ctx)

	var outcome string
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = telemetry.OutcomeNotFound
	case errors.Is(err, ErrAlreadyRedeemed):
		outcome = telemetry.OutcomeAlreadyRedeemed
	case errors.Is(err, ErrExpired):
		outcome = telemetry.OutcomeExpired
	default:
		outcome = telemetry.OutcomeError
	}
	telemetry.HandoffRedemptionsTotal.WithLabelValues(outcome).Inc()

	if tok.ID == "" {
		log.Warn("handoff redemption with unknown token")
		return
	}

	if outcome == telemetry.OutcomeError {
		log.Error("handoff redemption failed", slog.String("token_id", tok.ID), slog.Any("error", err))
	} else {
		log.Warn("handoff redemption rejected",
			slog.String("token_id", tok.ID),
			slog.String("reason", outcome),
		)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: tok.CreatedBy, Action: domain.AuditResolveQRRejected,
		EntityType: domain.EntityHandoffToken, EntityID: tok.ID, Detail: outcome,
	})
}

// Revoke deletes a token of a credential the actor can see. Revoking a
// redeemed or expired token is a harmless cleanup.
func (s *HandoffService) Revoke(ctx context.Context, actor domain.Actor, tokenID string) error {
	log := slogx.FromContext(ctx)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		tok, err := tx.HandoffTokens().GetHandoffTokenByID(ctx, tokenID)
		if err != nil {
			return err
		}
		if _, err := tx.Credentials().GetCredential(ctx, tok.CredentialID, filter); err != nil {
			return err
		}
		return tx.HandoffTokens().DeleteHandoffToken(ctx, tokenID)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditRevokeQR,
		EntityType: domain.EntityHandoffToken, EntityID: tokenID,
	})

	log.Info("handoff token revoked", slog.String("token_id", tokenID))
	return nil
}

// ListForCredential returns the credential's tokens, newest first, with their
// derived status.
func (s *HandoffService) ListForCredential(ctx context.Context, actor domain.Actor, credentialID string) ([]HandoffView, error) {
	now := clock(s.Now)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return nil, err
	}
	if _, err := s.Store.Credentials().GetCredential(ctx, credentialID, filter); err != nil {
		return nil, mapStoreErr(err)
	}

	toks, err := s.Store.HandoffTokens().ListHandoffTokensByCredential(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	out := make([]HandoffView, 0, len(toks))
	for _, t := range toks {
		out = append(out, HandoffView{Token: t, Status: t.Status(now)})
	}
	return out, nil
}

func (s *HandoffService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultHandoffTTL
	}
	return s.TTL
}

func (s *HandoffService) filter(ctx context.Context, actor domain.Actor) (access.CredentialFilter, error) {
	scope, err := resolveScope(ctx, s.Store, actor)
	if err != nil {
		return access.CredentialFilter{}, err
	}
	return access.Credentials(actor, scope), nil
}

// RedemptionURL is {base}/qr?token={raw}, with the token query-escaped.
func RedemptionURL(base, raw string) string {
	return strings.TrimRight(base, "/") + "/qr?token=" + url.QueryEscape(raw)
}
