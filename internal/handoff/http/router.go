package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/internal/handoff/store"
	"github.com/aussiebroadwan/handoff/internal/handoff/telemetry"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/handoff/api/handoff" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimits

	store               store.Store
	OrganizationService *service.OrganizationService
	SystemService       *service.SystemService
	CredentialService   *service.CredentialService
	HandoffService      *service.HandoffService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	limits httpx.RateLimits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		limits:       limits,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerScope()
	r.registerSystems()
	r.registerCredentials()
	r.registerHandoffs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Handoff Service API
//	@version		0.1.0
//	@description	Credential registry with single-use, time-boxed secret handoff.
//	@description
//	@description	Secrets are sealed at rest with AES-256-GCM. A handoff token reveals one secret exactly once, to whoever holds it, until it expires.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/handoff
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from the identity provider. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Metrics wrap the mux directly so the matched pattern is visible.
	httpx.Chain(telemetry.HTTPMiddleware(r.Mux), r.middlewares...).ServeHTTP(w, req)
}

// authed chains bearer authentication and a per-user limit onto h.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit, r.limits.TrustedProxies...),
	)
}

func (r *Router) registerScope() {
	h := &ScopeHandler{OrganizationService: r.OrganizationService}

	r.Mux.Handle("GET /v1/scope", r.authed(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("PUT /v1/scope", r.authed(h.HandleSet, r.limits.Moderate))

	r.Mux.Handle("POST /v1/organizations", r.authed(h.HandleCreateOrganization, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/organizations/{id}", r.authed(h.HandleDeleteOrganization, r.limits.Moderate))
	r.Mux.Handle("POST /v1/organizations/{id}/members", r.authed(h.HandleAddMember, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/organizations/{id}/members/{userId}", r.authed(h.HandleRemoveMember, r.limits.Moderate))
}

func (r *Router) registerSystems() {
	h := &SystemsHandler{SystemService: r.SystemService}

	r.Mux.Handle("GET /v1/systems", r.authed(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("POST /v1/systems", r.authed(h.HandleCreate, r.limits.Moderate))
	r.Mux.Handle("GET /v1/systems/{id}", r.authed(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("PUT /v1/systems/{id}", r.authed(h.HandleUpdate, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/systems/{id}", r.authed(h.HandleDelete, r.limits.Moderate))
}

func (r *Router) registerCredentials() {
	h := &CredentialsHandler{CredentialService: r.CredentialService}

	r.Mux.Handle("GET /v1/credentials", r.authed(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("POST /v1/credentials", r.authed(h.HandleCreate, r.limits.Moderate))
	r.Mux.Handle("POST /v1/credentials/batch", r.authed(h.HandleBatch, r.limits.Moderate))
	r.Mux.Handle("GET /v1/credentials/{id}", r.authed(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("PATCH /v1/credentials/{id}", r.authed(h.HandleUpdate, r.limits.Moderate))
	r.Mux.Handle("DELETE /v1/credentials/{id}", r.authed(h.HandleDelete, r.limits.Moderate))

	// Secret material leaves the service here: strict per-user limit
	r.Mux.Handle("POST /v1/credentials/{id}/regenerate", r.authed(h.HandleRegenerate, r.limits.Strict))
	r.Mux.Handle("POST /v1/credentials/{id}/reveal", r.authed(h.HandleReveal, r.limits.Strict))
}

func (r *Router) registerHandoffs() {
	h := &HandoffsHandler{HandoffService: r.HandoffService}

	r.Mux.Handle("POST /v1/credentials/{id}/handoffs", r.authed(h.HandleIssue, r.limits.Moderate))
	r.Mux.Handle("GET /v1/credentials/{id}/handoffs", r.authed(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("DELETE /v1/handoffs/{id}", r.authed(h.HandleRevoke, r.limits.Moderate))

	// POST /redeem - anonymous, strict rate limit by IP against token guessing
	r.Mux.Handle("POST /v1/handoffs/redeem",
		httpx.Chain(http.HandlerFunc(h.HandleRedeem),
			httpx.RateLimitByIP(r.limits.Strict, r.limits.TrustedProxies...),
		),
	)
}

func (r *Router) registerSystem() {
	h := &HealthHandler{Started: r.startTime, Version: r.buildVersion, Store: r.store, Keys: r.keys}

	// Probes get the lenient limit; monitoring polls often
	r.Mux.Handle("GET /livez", httpx.Chain(http.HandlerFunc(h.HandleLivez), httpx.RateLimitByIP(r.limits.Lenient, r.limits.TrustedProxies...)))
	r.Mux.Handle("GET /readyz", httpx.Chain(http.HandlerFunc(h.HandleReadyz), httpx.RateLimitByIP(r.limits.Lenient, r.limits.TrustedProxies...)))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
