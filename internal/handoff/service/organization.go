package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// OrganizationService manages organizations, memberships and the active
// scope preference.
type OrganizationService struct {
	Store store.Store
	Audit audit.Sink
	Now   func() time.Time
}

// ScopeView is an actor's effective scope plus every organization they may
// switch to.
type ScopeView struct {
	Scope       domain.Scope
	Memberships []domain.Membership
}

// Current returns the resolved scope and the actor's memberships.
func (s *OrganizationService) Current(ctx context.Context, actor domain.Actor) (ScopeView, error) {
	scope, err := resolveScope(ctx, s.Store, actor)
	if err != nil {
		return ScopeView{}, err
	}
	ms, err := s.Store.Memberships().ListMembershipsByUser(ctx, actor.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list memberships", slog.Any("error", err))
		return ScopeView{}, err
	}
	return ScopeView{Scope: scope, Memberships: ms}, nil
}

// SetActiveOrganization switches the actor's scope. An empty orgID returns to
// the personal scope; a non-member gets ErrForbidden.
func (s *OrganizationService) SetActiveOrganization(ctx context.Context, actor domain.Actor, orgID string) (domain.Scope, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Check membership unless clearing
	if orgID != "" {
		if _, err := s.Store.Memberships().GetMembership(ctx, orgID, actor.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("scope switch to organization without membership",
					slog.String("organization_id", orgID),
				)
				return domain.Scope{}, ErrForbidden
			}
			log.Error("failed to check membership", slog.Any("error", err))
			return domain.Scope{}, err
		}
	}

	// 2. Persist the preference
	if err := s.Store.Users().SetActiveOrganization(ctx, actor.ID, orgID, now); err != nil {
		log.Error("failed to store active organization", slog.Any("error", err))
		return domain.Scope{}, err
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditSetScope,
		EntityType: domain.EntityUser, EntityID: actor.ID, Detail: orgID,
	})

	if orgID == "" {
		return domain.PersonalScope(), nil
	}
	return domain.OrganizationScope(orgID), nil
}

// CreateOrganization creates an organization owned by actor and makes it
// their active scope.
func (s *OrganizationService) CreateOrganization(ctx context.Context, actor domain.Actor, name string) (domain.Organization, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	name, err := requireText("name", name, maxNameLen)
	if err != nil {
		return domain.Organization{}, err
	}

	org := domain.Organization{ID: idx.NewAt(now).String(), Name: name, CreatedAt: now}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		if err := tx.Memberships().CreateMembership(ctx, domain.Membership{
			OrganizationID: org.ID,
			UserID:         actor.ID,
			Role:           domain.MembershipOwner,
			CreatedAt:      now,
		}); err != nil {
			return err
		}
		return tx.Users().SetActiveOrganization(ctx, actor.ID, org.ID, now)
	})
	if err != nil {
		log.Error("failed to create organization", slog.Any("error", err))
		return domain.Organization{}, err
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditCreate,
		EntityType: domain.EntityOrganization, EntityID: org.ID,
	})

	log.Info("organization created", slog.String("organization_id", org.ID))
	return org, nil
}

// DeleteOrganization removes an organization, its memberships and its
// systems. Only an OWNER may do this. Every user whose preference pointed at
// it falls back to the personal scope.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, actor domain.Actor, orgID string) error {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireOwner(ctx, tx, orgID, actor.ID); err != nil {
			return err
		}
		if err := tx.Users().ClearActiveOrganization(ctx, orgID, now); err != nil {
			return err
		}
		return tx.Organizations().DeleteOrganization(ctx, orgID)
	})
	if err != nil {
		if !errors.Is(err, ErrForbidden) {
			log.Error("failed to delete organization", slog.String("organization_id", orgID), slog.Any("error", err))
		}
		return mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditDelete,
		EntityType: domain.EntityOrganization, EntityID: orgID,
	})

	log.Info("organization deleted", slog.String("organization_id", orgID))
	return nil
}

// AddMember grants userID a membership. Only an OWNER may add members.
func (s *OrganizationService) AddMember(
	ctx context.Context,
	actor domain.Actor,
	orgID string,
	userID string,
	role domain.MembershipRole,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	if userID == "" {
		return domain.Membership{}, validationErr("userId is required")
	}
	if role == "" {
		role = domain.MembershipMember
	}
	if !role.Valid() {
		return domain.Membership{}, validationErr("role must be OWNER or MEMBER")
	}

	m := domain.Membership{OrganizationID: orgID, UserID: userID, Role: role, CreatedAt: now}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireOwner(ctx, tx, orgID, actor.ID); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, m)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Membership{}, ErrConflict
		}
		return domain.Membership{}, mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditAddMember,
		EntityType: domain.EntityOrganization, EntityID: orgID, Detail: userID,
	})

	log.Info("member added",
		slog.String("organization_id", orgID),
		slog.String("user_id", userID),
		slog.String("role", string(role)),
	)
	return m, nil
}

// RemoveMember revokes a membership. Owners may remove anyone but
// themselves; any member may remove themselves unless they are the owner.
// Affected users keep their stored preference, which the resolver then
// treats as stale.
func (s *OrganizationService) RemoveMember(ctx context.Context, actor domain.Actor, orgID, userID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if userID == actor.ID {
			m, err := tx.Memberships().GetMembership(ctx, orgID, actor.ID)
			if err != nil {
				return err
			}
			if m.Role == domain.MembershipOwner {
				return validationErr("owners cannot leave their own organization")
			}
		} else if err := requireOwner(ctx, tx, orgID, actor.ID); err != nil {
			return err
		}
		return tx.Memberships().DeleteMembership(ctx, orgID, userID)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditRemoveMember,
		EntityType: domain.EntityOrganization, EntityID: orgID, Detail: userID,
	})

	log.Info("member removed",
		slog.String("organization_id", orgID),
		slog.String("user_id", userID),
	)
	return nil
}

func requireOwner(ctx context.Context, st store.Store, orgID, userID string) error {
	m, err := st.Memberships().GetMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if m.Role != domain.MembershipOwner {
		return ErrForbidden
	}
	return nil
}

// mapStoreErr folds store.ErrNotFound into the service taxonomy.
func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
