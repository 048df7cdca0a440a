package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

type SystemService struct {
	Store store.Store
	Audit audit.Sink
	Now   func() time.Time
}

type SystemInput struct {
	Name        string
	Description string
	Tags        []string
}

// SystemUpdate carries optional changes; nil fields are left alone. Scope
// and ownership cannot be changed.
type SystemUpdate struct {
	Name        *string
	Description *string
	Tags        *[]string
}

// Create registers a system under the actor's current scope. The scope
// classification and organization are fixed from here on.
func (s *SystemService) Create(ctx context.Context, actor domain.Actor, in SystemInput) (domain.System, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	// 1. Validate
	name, err := requireText("name", in.Name, maxNameLen)
	if err != nil {
		return domain.System{}, err
	}
	desc, err := optionalText("description", in.Description, maxDescriptionLen)
	if err != nil {
		return domain.System{}, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return domain.System{}, err
	}

	// 2. Classify by the resolved scope
	scope, err := resolveScope(ctx, s.Store, actor)
	if err != nil {
		return domain.System{}, err
	}

	sys := domain.System{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Description: desc,
		Tags:        tags,
		ScopeType:   domain.ScopePersonal,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if scope.IsOrganization() {
		sys.ScopeType = domain.ScopeOrganization
		sys.OrganizationID = scope.OrganizationID
	}

	// 3. Store
	if err := s.Store.Systems().CreateSystem(ctx, sys); err != nil {
		log.Error("failed to create system", slog.Any("error", err))
		return domain.System{}, err
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditCreate,
		EntityType: domain.EntitySystem, EntityID: sys.ID,
	})

	log.Info("system created",
		slog.String("system_id", sys.ID),
		slog.String("scope_type", string(sys.ScopeType)),
	)
	return sys, nil
}

func (s *SystemService) Get(ctx context.Context, actor domain.Actor, id string) (domain.System, error) {
	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.System{}, err
	}
	sys, err := s.Store.Systems().GetSystem(ctx, id, filter)
	if err != nil {
		return domain.System{}, mapStoreErr(err)
	}
	return sys, nil
}

// List returns visible systems, most recently updated first. query matches
// the name or an exact tag.
func (s *SystemService) List(ctx context.Context, actor domain.Actor, query string) ([]domain.System, error) {
	filter, err := s.filter(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.Store.Systems().ListSystems(ctx, filter, query)
}

func (s *SystemService) Update(ctx context.Context, actor domain.Actor, id string, in SystemUpdate) (domain.System, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return domain.System{}, err
	}

	var sys domain.System
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		sys, err = tx.Systems().GetSystem(ctx, id, filter)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if sys.Name, err = requireText("name", *in.Name, maxNameLen); err != nil {
				return err
			}
		}
		if in.Description != nil {
			if sys.Description, err = optionalText("description", *in.Description, maxDescriptionLen); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if sys.Tags, err = normalizeTags(*in.Tags); err != nil {
				return err
			}
		}
		sys.UpdatedAt = now

		return tx.Systems().UpdateSystem(ctx, sys)
	})
	if err != nil {
		return domain.System{}, mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditUpdate,
		EntityType: domain.EntitySystem, EntityID: sys.ID,
	})

	log.Info("system updated", slog.String("system_id", sys.ID))
	return sys, nil
}

// Delete removes a system with all its credentials and their handoff tokens.
func (s *SystemService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	log := slogx.FromContext(ctx)

	filter, err := s.filter(ctx, actor)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Systems().GetSystem(ctx, id, filter); err != nil {
			return err
		}
		return tx.Systems().DeleteSystem(ctx, id)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	audit.Record(ctx, s.Audit, audit.Event{
		ActorID: actor.ID, Action: domain.AuditDelete,
		EntityType: domain.EntitySystem, EntityID: id,
	})

	log.Info("system deleted", slog.String("system_id", id))
	return nil
}

func (s *SystemService) filter(ctx context.Context, actor domain.Actor) (access.SystemFilter, error) {
	scope, err := resolveScope(ctx, s.Store, actor)
	if err != nil {
		return access.SystemFilter{}, err
	}
	return access.Systems(actor, scope), nil
}
