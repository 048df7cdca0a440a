package audit_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls int }

func (f *failingSink) Record(context.Context, audit.Event) error {
	f.calls++
	return errors.New("disk full")
}

func TestStoreSink(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	sink := &audit.StoreSink{Store: s, Now: func() time.Time { return at }}

	audit.Record(ctx, sink, audit.Event{
		ActorID: "alice", Action: domain.AuditReveal,
		EntityType: domain.EntityCredential, EntityID: "c1",
	})

	entries, err := s.AuditLog().ListAuditEntriesByEntity(ctx, domain.EntityCredential, "c1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "alice", entries[0].ActorID)
	require.Equal(t, domain.AuditReveal, entries[0].Action)
	require.True(t, at.Equal(entries[0].CreatedAt))
}

func TestRecordSwallowsFailures(t *testing.T) {
	f := &failingSink{}
	require.NotPanics(t, func() {
		audit.Record(context.Background(), f, audit.Event{Action: domain.AuditCreate})
		audit.Record(context.Background(), nil, audit.Event{Action: domain.AuditCreate})
	})
	require.Equal(t, 1, f.calls)
}

func TestMemoryKeepsOrder(t *testing.T) {
	m := &audit.Memory{}
	audit.Record(context.Background(), m, audit.Event{Action: domain.AuditCreateQR})
	audit.Record(context.Background(), m, audit.Event{Action: domain.AuditResolveQR})
	require.Equal(t, []domain.AuditAction{domain.AuditCreateQR, domain.AuditResolveQR}, m.Actions())
	require.Len(t, m.Events(), 2)
}
