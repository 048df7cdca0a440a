package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/audit"
	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/store/drivers/sqlite"
	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/passgen"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Actor{ID: "alice", Role: domain.RoleUser}
	bob   = domain.Actor{ID: "bob", Role: domain.RoleUser}
	admin = domain.Actor{ID: "root", Role: domain.RoleAdmin}
)

// testClock is a settable time source shared by every service in an env.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store *sqlite.Store
	codec *cryptox.Codec
	audit *audit.Memory
	clock *testClock

	orgs        *OrganizationService
	systems     *SystemService
	credentials *CredentialService
	handoffs    *HandoffService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "handoff.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, _, err := cryptox.LoadKey(cryptox.KeySource{AllowEphemeral: true})
	require.NoError(t, err)
	codec, err := cryptox.NewCodec(key)
	require.NoError(t, err)

	gen, err := passgen.NewGenerator(passgen.Config{})
	require.NoError(t, err)

	clk := &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	mem := &audit.Memory{}

	return &testEnv{
		store: st,
		codec: codec,
		audit: mem,
		clock: clk,

		orgs:    &OrganizationService{Store: st, Audit: mem, Now: clk.Now},
		systems: &SystemService{Store: st, Audit: mem, Now: clk.Now},
		credentials: &CredentialService{
			Store: st, Codec: codec, Generator: gen, Audit: mem, Now: clk.Now,
			AllowManualSecret: true,
		},
		handoffs: &HandoffService{
			Store: st, Codec: codec, Audit: mem, Now: clk.Now,
			TTL: 5 * time.Minute, BaseURL: "https://handoff.example.com", QRSize: 128,
		},
	}
}

func (e *testEnv) system(t *testing.T, actor domain.Actor, name string) domain.System {
	t.Helper()
	sys, err := e.systems.Create(context.Background(), actor, SystemInput{Name: name, Tags: []string{"prod"}})
	require.NoError(t, err)
	return sys
}

func (e *testEnv) credential(t *testing.T, actor domain.Actor, systemID, secret string) domain.Credential {
	t.Helper()
	c, _, err := e.credentials.Create(context.Background(), actor, CredentialInput{
		SystemID:  systemID,
		Label:     "db admin",
		ExpiresAt: e.clock.Now().Add(30 * 24 * time.Hour),
		Secret:    SecretInput{Mode: ModeManual, Secret: secret},
	})
	require.NoError(t, err)
	return c
}
