package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// ScopeResolver derives the scope an actor currently operates under from
// their stored active-organization preference.
type ScopeResolver struct {
	Store store.Store
}

// Resolve returns the organization scope only while the actor still holds a
// membership in their preferred organization. A stale preference degrades to
// the personal scope and is never an error.
func (r *ScopeResolver) Resolve(ctx context.Context, actor domain.Actor) (domain.Scope, error) {
	return resolveScope(ctx, r.Store, actor)
}

func resolveScope(ctx context.Context, st store.Store, actor domain.Actor) (domain.Scope, error) {
	log := slogx.FromContext(ctx)

	orgID, err := st.Users().GetActiveOrganization(ctx, actor.ID)
	if err != nil {
		log.Error("failed to read active organization", slog.Any("error", err))
		return domain.Scope{}, err
	}
	if orgID == "" {
		return domain.PersonalScope(), nil
	}

	if _, err := st.Memberships().GetMembership(ctx, orgID, actor.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("active organization no longer valid, using personal scope",
				slog.String("organization_id", orgID),
			)
			return domain.PersonalScope(), nil
		}
		log.Error("failed to check membership", slog.Any("error", err))
		return domain.Scope{}, err
	}

	return domain.OrganizationScope(orgID), nil
}
