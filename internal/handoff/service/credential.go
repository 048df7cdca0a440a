package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/telemetry"
	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/passgen"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// Batch limits.
const (
	MaxBatchDays         = 62
	DefaultBatchExpiry   = 7
	MaxBatchExpiryInDays = 30
)

// SecretMode selects where a credential's secret comes from.
type SecretMode string

const (
	ModeGenerate SecretMode = "generate"
	ModeManual   SecretMode = "manual"
)

// CredentialService owns the secret lifecycle of credentials. Plaintext
// leaves it only as the return value of Create, Regenerate and Reveal.
type CredentialService struct {
	Store     store.Store
	Codec     *cryptox.Codec
	Generator *passgen.Generator
	Audit     audit.Sink
	Now       func() time.Time

	// AllowManualSecret permits caller-supplied secrets.
	AllowManualSecret bool
}

// SecretInput describes how to obtain a secret.
type SecretInput struct {
	Mode   SecretMode
	Preset string // generate only; empty uses the configured default
	Length int    // generate only; 0 uses the configured default
	Secret string // manual only
}

type CredentialInput struct {
	SystemID  string
	Label     string
	Notes     string
	Tags      []string
	ExpiresAt time.Time
	Secret    SecretInput
}

// CredentialUpdate carries optional metadata changes; nil fields are left
// alone.
type CredentialUpdate struct {
	SystemID  *string
	Label     *string
	Notes     *string
	Tags      *[]string
	ExpiresAt *time.Time
}

// CredentialListQuery is the caller-facing list filter.
type CredentialListQuery struct {
	Text          string
	SystemID      string
	Tag           string
	Status        string // "", "active" or "expired"
	ExpiresInDays int
	Sort          string // "", "expiresAt-asc" or "createdAt-desc"
}

type BatchInput struct {
	SystemID      string
	LabelPrefix   string
	StartDate     time.Time
	EndDate       time.Time
	ExpiresInDays int // 0 means DefaultBatchExpiry
	Preset        string
	Length        int
}

// Create stores a credential with its initial secret and returns the
// plaintext exactly once.
func (s *CredentialService) Create(ctx context.Context, actor domain.Actor, in CredentialInput) (domain.Credential, string, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Validate metadata
	label, err := requireText("label", in.Label, maxNameLen)
	if err != nil {
		return domain.Credential{}, "", err
	}
	notes, err := optionalText("notes", in.Notes, maxNotesLen)
	if err != nil {
		return domain.Credential{}, "", err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return domain.Credential{}, "", err
	}
	if in.SystemID == "" {
		return domain.Credential{}, "", validationErr("systemId is required")
	}
	if in.ExpiresAt.IsZero() {
		return domain.Credential{}, "", validationErr("expiresAt is required")
	}

	// 2. Obtain and seal the secret
	secret, err := s.secret(ctx, in.Secret)
	if err != nil {
		return domain.Credential{}, "", err
	}
	sealed, err := s.Codec.Encrypt(secret)
	if err != nil {
		log.Error("failed to seal secret", slog.Any("error", err))
		return domain.Credential{}, "", err
	}

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.Credential{}, "", err
	}

	cred := domain.Credential{
		ID:              idx.NewAt(now).String(),
		SystemID:        in.SystemID,
		Label:           label,
		Notes:           notes,
		Tags:            tags,
		ExpiresAt:       in.ExpiresAt.UTC(),
		EncryptedSecret: sealed,
		SecretHash:      s.Codec.Hash(secret),
		CreatedBy:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 3. The target system must be visible to the actor
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Systems().GetSystem(ctx, in.SystemID, filter.System); err != nil {
			return err
		}
		return tx.Credentials().CreateCredential(ctx, cred)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to create credential", slog.Any("error", err))
		}
		return domain.Credential{}, "", mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditCreate,
		EntityType: domain.EntityCredential, EntityID: cred.ID,
	})
	telemetry.CredentialsCreatedTotal.WithLabelValues(string(modeOf(in.Secret))).Inc()

	log.Info("credential created",
		slog.String("credential_id", cred.ID),
		slog.String("system_id", cred.SystemID),
	)
	return cred, secret, nil
}

func (s *CredentialService) Get(ctx context.Context, actor domain.Actor, id string) (domain.Credential, error) {
	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.Credential{}, err
	}
	c, err := s.Store.Credentials().GetCredential(ctx, id, filter)
	if err != nil {
		return domain.Credential{}, mapStoreErr(err)
	}
	return c, nil
}

func (s *CredentialService) List(ctx context.Context, actor domain.Actor, q CredentialListQuery) ([]domain.Credential, error) {
	sq := store.CredentialQuery{
		Text:     q.Text,
		SystemID: q.SystemID,
		Tag:      q.Tag,
		Now:      clock(s.Now),
	}

	switch store.CredentialStatus(q.Status) {
	case store.StatusAny, store.StatusActive, store.StatusExpired:
		sq.Status = store.CredentialStatus(q.Status)
	default:
		return nil, validationErr("status must be active or expired")
	}

	switch store.CredentialSort(q.Sort) {
	case "", store.SortExpiresAtAsc:
		sq.Sort = store.SortExpiresAtAsc
	case store.SortCreatedAtDesc:
		sq.Sort = store.SortCreatedAtDesc
	default:
		return nil, validationErr("sort must be expiresAt-asc or createdAt-desc")
	}

	if q.ExpiresInDays < 0 {
		return nil, validationErr("expiresInDays must not be negative")
	}
	sq.ExpiresWithin = time.Duration(q.ExpiresInDays) * 24 * time.Hour

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.Store.Credentials().ListCredentials(ctx, filter, sq)
}

// Update edits metadata. Moving to another system requires that system to be
// visible too.
func (s *CredentialService) Update(ctx context.Context, actor domain.Actor, id string, in CredentialUpdate) (domain.Credential, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.Credential{}, err
	}

	var cred domain.Credential
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Credentials().GetCredential(ctx, id, filter)
		if err != nil {
			return err
		}

		if in.SystemID != nil && *in.SystemID != c.SystemID {
			if _, err := tx.Systems().GetSystem(ctx, *in.SystemID, filter.System); err != nil {
				return err
			}
			c.SystemID = *in.SystemID
		}
		if in.Label != nil {
			if c.Label, err = requireText("label", *in.Label, maxNameLen); err != nil {
				return err
			}
		}
		if in.Notes != nil {
			if c.Notes, err = optionalText("notes", *in.Notes, maxNotesLen); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if c.Tags, err = normalizeTags(*in.Tags); err != nil {
				return err
			}
		}
		if in.ExpiresAt != nil {
			if in.ExpiresAt.IsZero() {
				return validationErr("expiresAt must be a valid time")
			}
			c.ExpiresAt = in.ExpiresAt.UTC()
		}
		c.UpdatedAt = now

		cred = c
		return tx.Credentials().UpdateCredential(ctx, c)
	})
	if err != nil {
		return domain.Credential{}, mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditUpdate,
		EntityType: domain.EntityCredential, EntityID: cred.ID,
	})

	log.Info("credential updated", slog.String("credential_id", cred.ID))
	return cred, nil
}

// Regenerate replaces the secret. The sealed payload and hash are derived
// from the same plaintext and written in one statement.
func (s *CredentialService) Regenerate(ctx context.Context, actor domain.Actor, id string, in SecretInput) (domain.Credential, string, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	secret, err := s.secret(ctx, in)
	if err != nil {
		return domain.Credential{}, "", err
	}
	sealed, err := s.Codec.Encrypt(secret)
	if err != nil {
		log.Error("failed to seal secret", slog.Any("error", err))
		return domain.Credential{}, "", err
	}
	hash := s.Codec.Hash(secret)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.Credential{}, "", err
	}

	var cred domain.Credential
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Credentials().GetCredential(ctx, id, filter)
		if err != nil {
			return err
		}
		if err := tx.Credentials().UpdateCredentialSecret(ctx, c.ID, sealed, hash, now); err != nil {
			return err
		}
		c.EncryptedSecret, c.SecretHash, c.UpdatedAt = sealed, hash, now
		cred = c
		return nil
	})
	if err != nil {
		return domain.Credential{}, "", mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditRegenerate,
		EntityType: domain.EntityCredential, EntityID: cred.ID,
	})

	log.Info("credential secret regenerated", slog.String("credential_id", cred.ID))
	return cred, secret, nil
}

// Delete removes a credential and every handoff token issued for it.
func (s *CredentialService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	log := slogx.FromContext(ctx)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Credentials().GetCredential(ctx, id, filter); err != nil {
			return err
		}
		if err := tx.HandoffTokens().DeleteHandoffTokensByCredential(ctx, id); err != nil {
			return err
		}
		return tx.Credentials().DeleteCredential(ctx, id)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditDelete,
		EntityType: domain.EntityCredential, EntityID: id,
	})

	log.Info("credential deleted", slog.String("credential_id", id))
	return nil
}

// Reveal decrypts the secret for an authorized actor. Stale credentials are
// refused.
func (s *CredentialService) Reveal(ctx context.Context, actor domain.Actor, id string) (string, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	c, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if c.IsExpired(now) {
		log.Warn("reveal refused for expired credential", slog.String("credential_id", id))
		return "", ErrCredentialExpired
	}

	secret, err := s.Codec.Decrypt(c.EncryptedSecret)
	if err != nil {
		log.Error("failed to open sealed secret", slog.String("credential_id", id))
		return "", ErrDecryptionFailed
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditReveal,
		EntityType: domain.EntityCredential, EntityID: id,
	})
	telemetry.SecretRevealsTotal.Inc()

	return secret, nil
}

// BatchCreate makes one generated credential per day in [StartDate, EndDate],
// labelled prefix-YYYY-MM-DD, all in one transaction. Secrets are not
// returned; use Reveal or a handoff.
func (s *CredentialService) BatchCreate(ctx context.Context, actor domain.Actor, in BatchInput) ([]domain.Credential, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Validate
	prefix, err := requireText("labelPrefix", in.LabelPrefix, maxLabelPrefixLen)
	if err != nil {
		return nil, err
	}
	if in.SystemID == "" {
		return nil, validationErr("systemId is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, validationErr("startDate and endDate are required")
	}
	if in.StartDate.After(in.EndDate) {
		return nil, validationErr("startDate must be before endDate")
	}
	expiresIn := in.ExpiresInDays
	if expiresIn == 0 {
		expiresIn = DefaultBatchExpiry
	}
	if expiresIn < 1 || expiresIn > MaxBatchExpiryInDays {
		return nil, validationErr("expiresInDays must be between 1 and %d", MaxBatchExpiryInDays)
	}

	var days []time.Time
	for d := in.StartDate.UTC(); !d.After(in.EndDate.UTC()); d = d.AddDate(0, 0, 1) {
		if len(days) == MaxBatchDays {
			return nil, validationErr("a batch covers at most %d days", MaxBatchDays)
		}
		days = append(days, d)
	}

	// 2. Generate and seal every secret before touching the store
	creds := make([]domain.Credential, 0, len(days))
	for _, day := range days {
		secret, err := s.secret(ctx, SecretInput{Mode: ModeGenerate, Preset: in.Preset, Length: in.Length})
		if err != nil {
			return nil, err
		}
		sealed, err := s.Codec.Encrypt(secret)
		if err != nil {
			return nil, err
		}
		creds = append(creds, domain.Credential{
			ID:              idx.NewAt(now).String(),
			SystemID:        in.SystemID,
			Label:           fmt.Sprintf("%s-%s", prefix, day.Format(time.DateOnly)),
			Tags:            []string{},
			ExpiresAt:       day.AddDate(0, 0, expiresIn),
			EncryptedSecret: sealed,
			SecretHash:      s.Codec.Hash(secret),
			CreatedBy:       actor.ID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return nil, err
	}

	// 3. Store atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Systems().GetSystem(ctx, in.SystemID, filter.System); err != nil {
			return err
		}
		for _, c := range creds {
			if err := tx.Credentials().CreateCredential(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to store credential batch", slog.Any("error", err))
		}
		return nil, mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditBatchCreate,
		EntityType: domain.EntitySystem, EntityID: in.SystemID,
		Detail: fmt.Sprintf("count=%d", len(creds)),
	})
	telemetry.CredentialsCreatedTotal.WithLabelValues(string(ModeGenerate)).Add(float64(len(creds)))

	log.Info("credential batch created",
		slog.String("system_id", in.SystemID),
		slog.Int("count", len(creds)),
	)
	return creds, nil
}

// secret produces the plaintext for in, generating one by default.
func (s *CredentialService) secret(ctx context.Context, in SecretInput) (string, error) {
	switch modeOf(in) {
	case ModeManual:
		if !s.AllowManualSecret {
			slogx.FromContext(ctx).Warn("manual secret rejected: disabled by configuration")
			return "", fmt.Errorf("%w: manual secrets are disabled", ErrForbidden)
		}
		n := len([]rune(in.Secret))
		if n < minManualSecret || n > maxManualSecret {
			return "", validationErr("secret must be between %d and %d characters", minManualSecret, maxManualSecret)
		}
		return in.Secret, nil

	case ModeGenerate:
		if in.Length != 0 && (in.Length < passgen.MinLength || in.Length > passgen.MaxLength) {
			return "", validationErr("length must be between %d and %d", passgen.MinLength, passgen.MaxLength)
		}
		policy, err := s.Generator.Resolve(in.Preset, in.Length)
		if err != nil {
			return "", validationErr("%v", err)
		}
		secret, err := s.Generator.Generate(policy)
		if err != nil {
			if errors.Is(err, passgen.ErrGenerationExhausted) {
				telemetry.GenerationExhaustedTotal.Inc()
				slogx.FromContext(ctx).Error("password generation exhausted", slog.Int("length", policy.Length))
				return "", err
			}
			return "", validationErr("%v", err)
		}
		return secret, nil

	default:
		return "", validationErr("mode must be generate or manual")
	}
}

func modeOf(in SecretInput) SecretMode {
	if in.Mode == "" {
		return ModeGenerate
	}
	return in.Mode
}

func (s *CredentialService) filter(ctx context.Context, actor domain.Actor) (access.CredentialFilter, error) {
	scope, err := resolveScope(ctx, s.Store, actor)
	if err != nil {
		return access.CredentialFilter{}, err
	}
	return access.Credentials(actor, scope), nil
}
