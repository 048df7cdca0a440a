package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/access"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
)

const credentialColumns = `c.id, c.system_id, c.label, c.notes, c.tags, c.expires_at, c.encrypted_secret, c.secret_hash, c.created_by, c.created_at, c.updated_at`

type credentialsRepo struct {
	db dbtx
}

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	const query = `
		INSERT INTO credentials (id, system_id, label, notes, tags, expires_at, encrypted_secret, secret_hash, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.SystemID, c.Label, c.Notes, encodeTags(c.Tags), toMillis(c.ExpiresAt),
		c.EncryptedSecret, c.SecretHash, c.CreatedBy,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *credentialsRepo) GetCredential(ctx context.Context, id string, filter access.CredentialFilter) (domain.Credential, error) {
	pred, args := systemPredicate(filter.System, "s")
	query := `SELECT ` + credentialColumns + `
		FROM credentials c
		JOIN systems s ON s.id = c.system_id
		WHERE c.id = ? AND ` + pred

	c, err := scanCredential(r.db.QueryRowContext(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return c, nil
}

func (r *credentialsRepo) ListCredentials(ctx context.Context, filter access.CredentialFilter, q store.CredentialQuery) ([]domain.Credential, error) {
	pred, args := systemPredicate(filter.System, "s")

	var b strings.Builder
	b.WriteString(`SELECT ` + credentialColumns + `
		FROM credentials c
		JOIN systems s ON s.id = c.system_id
		WHERE ` + pred)

	if q.SystemID != "" {
		b.WriteString(` AND c.system_id = ?`)
		args = append(args, q.SystemID)
	}
	if q.Tag != "" {
		b.WriteString(` AND EXISTS (SELECT 1 FROM json_each(c.tags) WHERE json_each.value = ?)`)
		args = append(args, q.Tag)
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		b.WriteString(` AND (c.label LIKE ? ESCAPE '\' OR c.notes LIKE ? ESCAPE '\')`)
		pattern := escapeLike(text)
		args = append(args, pattern, pattern)
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch q.Status {
	case store.StatusActive:
		b.WriteString(` AND c.expires_at >= ?`)
		args = append(args, toMillis(now))
	case store.StatusExpired:
		b.WriteString(` AND c.expires_at < ?`)
		args = append(args, toMillis(now))
	}
	if q.ExpiresWithin > 0 {
		b.WriteString(` AND c.expires_at >= ? AND c.expires_at <= ?`)
		args = append(args, toMillis(now), toMillis(now.Add(q.ExpiresWithin)))
	}

	if q.Sort == store.SortCreatedAtDesc {
		b.WriteString(` ORDER BY c.created_at DESC, c.id DESC`)
	} else {
		b.WriteString(` ORDER BY c.expires_at ASC, c.id ASC`)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Credential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *credentialsRepo) UpdateCredential(ctx context.Context, c domain.Credential) error {
	const query = `
		UPDATE credentials
		SET system_id = ?, label = ?, notes = ?, tags = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`

	return requireOneRow(r.db.ExecContext(ctx, query,
		c.SystemID, c.Label, c.Notes, encodeTags(c.Tags),
		toMillis(c.ExpiresAt), toMillis(c.UpdatedAt), c.ID,
	))
}

func (r *credentialsRepo) UpdateCredentialSecret(ctx context.Context, id, encryptedSecret, secretHash string, now time.Time) error {
	const query = `
		UPDATE credentials SET encrypted_secret = ?, secret_hash = ?, updated_at = ?
		WHERE id = ?`

	return requireOneRow(r.db.ExecContext(ctx, query, encryptedSecret, secretHash, toMillis(now), id))
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, id string) error {
	return requireOneRow(r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id))
}

func scanCredential(row rowScanner) (domain.Credential, error) {
	var (
		c                               domain.Credential
		tags                            string
		expiresAt, createdAt, updatedAt int64
	)
	err := row.Scan(
		&c.ID, &c.SystemID, &c.Label, &c.Notes, &tags, &expiresAt,
		&c.EncryptedSecret, &c.SecretHash, &c.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Credential{}, err
	}
	c.Tags = decodeTags(tags)
	c.ExpiresAt = fromMillis(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}
