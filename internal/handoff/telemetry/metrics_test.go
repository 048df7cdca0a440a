package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsRegistered(t *testing.T) {
	type describer interface {
		Describe(chan<- *prometheus.Desc)
	}

	for _, c := range []describer{
		HTTPRequestsTotal, HTTPRequestDuration, HandoffTokensIssuedTotal,
		HandoffRedemptionsTotal, CredentialsCreatedTotal, SecretRevealsTotal,
		GenerationExhaustedTotal, AuditFailuresTotal, HousekeepingDeletedTotal,
	} {
		ch := make(chan *prometheus.Desc, 4)
		c.Describe(ch)
		close(ch)
		require.NotEmpty(t, ch)
	}
}

func TestHTTPMiddlewareUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/credentials/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := HTTPMiddleware(mux)

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "GET /v1/credentials/{id}", "418")
	before := counterValue(t, counter)

	for _, id := range []string{"a", "b", "c"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/credentials/"+id, nil))
	}
	require.Equal(t, before+3, counterValue(t, counter))

	unmatched := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "<no-route>", "404")
	before = counterValue(t, unmatched)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, before+1, counterValue(t, unmatched))
}
