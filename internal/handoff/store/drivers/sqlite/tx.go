package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/handoff/internal/handoff/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{db: t.tx} }
func (t *txStore) Memberships() store.Memberships     { return &membershipsRepo{db: t.tx} }
func (t *txStore) Systems() store.Systems             { return &systemsRepo{db: t.tx} }
func (t *txStore) Credentials() store.Credentials     { return &credentialsRepo{db: t.tx} }
func (t *txStore) HandoffTokens() store.HandoffTokens { return &handoffTokensRepo{db: t.tx} }
func (t *txStore) AuditLog() store.AuditLog           { return &auditLogRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
