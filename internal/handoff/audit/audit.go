// Package audit is the write-only sink for provenance records. Callers record
// an event after the state change it describes has committed.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/telemetry"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// Event is what a caller records: record(actorId, action, entityType, entityId).
type Event struct {
	ActorID    string
	Action     domain.AuditAction
	EntityType string
	EntityID   string
	Detail     string
}

// Sink receives audit events.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// StoreSink writes events into the audit_log table.
type StoreSink struct {
	Store store.Store
	Now   func() time.Time
}

func (s *StoreSink) Record(ctx context.Context, e Event) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	at := now().UTC()

	return s.Store.AuditLog().CreateAuditEntry(ctx, domain.AuditEntry{
		ID:         idx.NewAt(at).String(),
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Detail:     e.Detail,
		CreatedAt:  at,
	})
}

// Record writes e to sink and only logs a failure. The state change it
// describes has already happened and must not be reported as failed.
func Record(ctx context.Context, sink Sink, e Event) {
	if sink == nil {
		return
	}
	if err := sink.Record(ctx, e); err != nil {
		telemetry.AuditFailuresTotal.Inc()
		slogx.FromContext(ctx).Error("failed to write audit entry",
			slog.String("action", string(e.Action)),
			slog.String("entity_type", e.EntityType),
			slog.String("entity_id", e.EntityID),
			slog.Any("error", err),
		)
	}
}

// Memory keeps events in memory. Tests use it to assert ordering.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) Record(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of everything recorded so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Actions returns the recorded actions in order.
func (m *Memory) Actions() []domain.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Action)
	}
	return out
}
