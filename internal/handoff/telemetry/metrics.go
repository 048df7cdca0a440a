// Package telemetry holds the Prometheus metrics of the handoff service. All
// metrics register against the default registry and are served on /metrics.
//
// HTTP metrics are labelled by the matched route pattern, never the raw URL,
// so ids in paths cannot inflate label cardinality.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Redemption outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeAlreadyRedeemed = "already_redeemed"
	OutcomeExpired         = "expired"
	OutcomeError           = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_http_requests_total",
			Help: "Total HTTP requests, by method, route pattern and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handoff_http_request_duration_seconds",
			Help:    "HTTP request latencies, by method and route pattern.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HandoffTokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_tokens_issued_total",
		Help: "Handoff tokens minted.",
	})

	HandoffRedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_redemptions_total",
			Help: "Handoff token redemption attempts, by outcome.",
		},
		[]string{"outcome"},
	)

	CredentialsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoff_credentials_created_total",
			Help: "Credentials created, by secret mode (generated or manual).",
		},
		[]string{"mode"},
	)

	SecretRevealsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_secret_reveals_total",
		Help: "Authorized direct secret reveals.",
	})

	GenerationExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_password_generation_exhausted_total",
		Help: "Password generations that ran out of attempts.",
	})

	AuditFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_audit_write_failures_total",
		Help: "Audit entries that could not be written.",
	})

	HousekeepingDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handoff_housekeeping_deleted_tokens_total",
		Help: "Expired, unredeemed handoff tokens removed by housekeeping.",
	})
)

// HTTPMiddleware records request counts and latency. It must wrap the
// ServeMux directly: the route pattern is read back from the same request
// value the mux matched.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "<no-route>"
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
