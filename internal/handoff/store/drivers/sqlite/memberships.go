package sqlite

import (
	"context"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

type membershipsRepo struct {
	db dbtx
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	const query = `
		INSERT INTO memberships (organization_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, m.OrganizationID, m.UserID, string(m.Role), toMillis(m.CreatedAt))
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, orgID, userID string) (domain.Membership, error) {
	const query = `
		SELECT organization_id, user_id, role, created_at
		FROM memberships
		WHERE organization_id = ? AND user_id = ?`

	var (
		m         domain.Membership
		role      string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(&m.OrganizationID, &m.UserID, &role, &createdAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	m.Role = domain.MembershipRole(role)
	m.CreatedAt = fromMillis(createdAt)
	return m, nil
}

func (r *membershipsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	const query = `
		SELECT organization_id, user_id, role, created_at
		FROM memberships
		WHERE user_id = ?
		ORDER BY created_at, organization_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Membership{}
	for rows.Next() {
		var (
			m         domain.Membership
			role      string
			createdAt int64
		)
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &role, &createdAt); err != nil {
			return nil, err
		}
		m.Role = domain.MembershipRole(role)
		m.CreatedAt = fromMillis(createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, orgID, userID string) error {
	const query = `DELETE FROM memberships WHERE organization_id = ? AND user_id = ?`
	return requireOneRow(r.db.ExecContext(ctx, query, orgID, userID))
}
