package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/telemetry"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

const defaultSweepInterval = time.Hour

// TokenSweeper deletes expired, unredeemed handoff tokens. Redemption checks
// expiry itself; sweeping only bounds table growth.
type TokenSweeper struct {
	Store    store.Store
	Interval time.Duration
	Now      func() time.Time
}

// Run sweeps once straight away, then every Interval until ctx is done.
func (s *TokenSweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	log := slogx.FromContext(ctx)
	log.Info("token sweeper started", slog.Duration("interval", interval))
	defer log.Info("token sweeper stopped")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		s.Sweep(ctx)

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

// Sweep runs a single pass and returns the number of tokens removed.
func (s *TokenSweeper) Sweep(ctx context.Context) int64 {
	log := slogx.FromContext(ctx)

	n, err := s.Store.HandoffTokens().DeleteExpiredHandoffTokens(ctx, clock(s.Now))
	if err != nil {
		if ctx.Err() == nil {
			log.Error("failed to sweep expired handoff tokens", slog.Any("error", err))
		}
		return 0
	}

	telemetry.HousekeepingDeletedTotal.Add(float64(n))
	if n > 0 {
		log.Info("expired handoff tokens swept", slog.Int64("deleted", n))
	}
	return n
}
