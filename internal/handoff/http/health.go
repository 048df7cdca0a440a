package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	Started time.Time
	Version string
	Store   store.Store
	Keys    *jwtx.KeySet
}

func (h *HealthHandler) report(status string, checks *handoffsdk.HealthChecks) handoffsdk.HealthResponse {
	return handoffsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Truncate(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	handoffsdk.HealthResponse
//	@Router			/livez [get].
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.report("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Reports database reachability and whether identity provider keys are loaded
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	handoffsdk.HealthResponse
//	@Failure		503	{object}	handoffsdk.HealthResponse
//	@Router			/readyz [get].
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := &handoffsdk.HealthChecks{Database: "ok", Keys: "ok"}
	ready := true

	if err := h.Store.Ping(ctx); err != nil {
		checks.Database = "error: database unreachable"
		ready = false
	}
	// No keys means no bearer token can be accepted.
	if !h.Keys.IsReady() {
		checks.Keys = "error: no keys loaded"
		ready = false
	}

	if !ready {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, h.report("degraded", checks))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.report("ok", checks))
}
