package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
)

const handoffTokenColumns = `id, credential_id, token_hash, expires_at, created_at, created_by, redeemed_at`

type handoffTokensRepo struct {
	db dbtx
}

func (r *handoffTokensRepo) CreateHandoffToken(ctx context.Context, t domain.HandoffToken) error {
	const query = `
		INSERT INTO handoff_tokens (id, credential_id, token_hash, expires_at, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.CredentialID, t.TokenHash, toMillis(t.ExpiresAt), toMillis(t.CreatedAt), t.CreatedBy,
	)
	return mapConstraint(err)
}

func (r *handoffTokensRepo) GetHandoffTokenByID(ctx context.Context, id string) (domain.HandoffToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+handoffTokenColumns+` FROM handoff_tokens WHERE id = ?`, id)
	t, err := scanHandoffToken(row)
	if err != nil {
		return domain.HandoffToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *handoffTokensRepo) GetHandoffTokenByHash(ctx context.Context, hash string) (domain.HandoffToken, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+handoffTokenColumns+` FROM handoff_tokens WHERE token_hash = ?`, hash)
	t, err := scanHandoffToken(row)
	if err != nil {
		return domain.HandoffToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *handoffTokensRepo) MarkHandoffTokenRedeemed(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE handoff_tokens SET redeemed_at = ?
		WHERE id = ? AND redeemed_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, toMillis(at), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *handoffTokensRepo) ListHandoffTokensByCredential(ctx context.Context, credentialID string) ([]domain.HandoffToken, error) {
	const query = `SELECT ` + handoffTokenColumns + `
		FROM handoff_tokens
		WHERE credential_id = ?
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, credentialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.HandoffToken{}
	for rows.Next() {
		t, err := scanHandoffToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *handoffTokensRepo) DeleteHandoffToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM handoff_tokens WHERE id = ?`, id)
	return err
}

func (r *handoffTokensRepo) DeleteHandoffTokensByCredential(ctx context.Context, credentialID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM handoff_tokens WHERE credential_id = ?`, credentialID)
	return err
}

func (r *handoffTokensRepo) DeleteExpiredHandoffTokens(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM handoff_tokens WHERE redeemed_at IS NULL AND expires_at < ?`

	res, err := r.db.ExecContext(ctx, query, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanHandoffToken(row rowScanner) (domain.HandoffToken, error) {
	var (
		t                    domain.HandoffToken
		expiresAt, createdAt int64
		redeemedAt           sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.CredentialID, &t.TokenHash, &expiresAt, &createdAt, &t.CreatedBy, &redeemedAt)
	if err != nil {
		return domain.HandoffToken{}, err
	}
	t.ExpiresAt = fromMillis(expiresAt)
	t.CreatedAt = fromMillis(createdAt)
	t.RedeemedAt = mapNullMillisPtr(redeemedAt)
	return t, nil
}
