package sqlite

import (
	"context"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

type organizationsRepo struct {
	db dbtx
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, org domain.Organization) error {
	const query = `INSERT INTO organizations (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, org.ID, org.Name, toMillis(org.CreatedAt))
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	const query = `SELECT id, name, created_at FROM organizations WHERE id = ?`

	var (
		org       domain.Organization
		createdAt int64
	)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &createdAt); err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	org.CreatedAt = fromMillis(createdAt)
	return org, nil
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireOneRow(r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id))
}
