package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

const systemColumns = `s.id, s.name, s.description, s.tags, s.scope_type, s.owner_id, s.organization_id, s.created_at, s.updated_at`

type systemsRepo struct {
	db dbtx
}

func (r *systemsRepo) CreateSystem(ctx context.Context, s domain.System) error {
	const query = `
		INSERT INTO systems (id, name, description, tags, scope_type, owner_id, organization_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, encodeTags(s.Tags),
		string(s.ScopeType), s.OwnerID, mapStringNull(s.OrganizationID),
		toMillis(s.CreatedAt), toMillis(s.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *systemsRepo) GetSystem(ctx context.Context, id string, filter access.SystemFilter) (domain.System, error) {
	pred, args := systemPredicate(filter, "s")
	query := `SELECT ` + systemColumns + ` FROM systems s WHERE s.id = ? AND ` + pred

	s, err := scanSystem(r.db.QueryRowContext(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return domain.System{}, mapNotFound(err)
	}
	return s, nil
}

func (r *systemsRepo) ListSystems(ctx context.Context, filter access.SystemFilter, text string) ([]domain.System, error) {
	pred, args := systemPredicate(filter, "s")
	var b strings.Builder
	b.WriteString(`SELECT ` + systemColumns + ` FROM systems s WHERE ` + pred)

	if text = strings.TrimSpace(text); text != "" {
		b.WriteString(` AND (s.name LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM json_each(s.tags) WHERE json_each.value = ?))`)
		args = append(args, escapeLike(text), text)
	}
	b.WriteString(` ORDER BY s.updated_at DESC, s.id DESC`)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.System{}
	for rows.Next() {
		s, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *systemsRepo) UpdateSystem(ctx context.Context, s domain.System) error {
	const query = `
		UPDATE systems SET name = ?, description = ?, tags = ?, updated_at = ?
		WHERE id = ?`

	return requireOneRow(r.db.ExecContext(ctx, query,
		s.Name, s.Description, encodeTags(s.Tags), toMillis(s.UpdatedAt), s.ID,
	))
}

func (r *systemsRepo) DeleteSystem(ctx context.Context, id string) error {
	return requireOneRow(r.db.ExecContext(ctx, `DELETE FROM systems WHERE id = ?`, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSystem(row rowScanner) (domain.System, error) {
	var (
		s                    domain.System
		tags, scopeType      string
		orgID                sql.NullString
		createdAt, updatedAt int64
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &tags, &scopeType, &s.OwnerID, &orgID, &createdAt, &updatedAt)
	if err != nil {
		return domain.System{}, err
	}
	s.Tags = decodeTags(tags)
	s.ScopeType = domain.ScopeType(scopeType)
	s.OrganizationID = mapNullString(orgID)
	s.CreatedAt = fromMillis(createdAt)
	s.UpdatedAt = fromMillis(updatedAt)
	return s, nil
}
