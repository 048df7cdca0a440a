package sqlite

import (
	"context"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	const query = `
		INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ActorID, string(e.Action), e.EntityType, e.EntityID, e.Detail, toMillis(e.CreatedAt),
	)
	return err
}

func (r *auditLogRepo) ListAuditEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditEntry, error) {
	const query = `
		SELECT id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM audit_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e         domain.AuditEntry
			action    string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &action, &e.EntityType, &e.EntityID, &e.Detail, &createdAt); err != nil {
			return nil, err
		}
		e.Action = domain.AuditAction(action)
		e.CreatedAt = fromMillis(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
