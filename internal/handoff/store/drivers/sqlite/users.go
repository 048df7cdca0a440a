package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetActiveOrganization(ctx context.Context, userID string) (string, error) {
	const query = `SELECT active_organization_id FROM users WHERE id = ?`

	var orgID sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return mapNullString(orgID), nil
}

func (r *usersRepo) SetActiveOrganization(ctx context.Context, userID, orgID string, now time.Time) error {
	const query = `
		INSERT INTO users (id, active_organization_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			active_organization_id = excluded.active_organization_id,
			updated_at = excluded.updated_at`

	ms := toMillis(now)
	_, err := r.db.ExecContext(ctx, query, userID, mapStringNull(orgID), ms, ms)
	return err
}

func (r *usersRepo) ClearActiveOrganization(ctx context.Context, orgID string, now time.Time) error {
	const query = `
		UPDATE users SET active_organization_id = NULL, updated_at = ?
		WHERE active_organization_id = ?`

	_, err := r.db.ExecContext(ctx, query, toMillis(now), orgID)
	return err
}
