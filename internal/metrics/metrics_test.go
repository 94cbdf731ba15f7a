package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveLookup("resolved")
	m.ObserveLookup("resolved")
	m.ObserveLookup("unknown_law")
	m.ObserveRequest("/health", http.MethodGet, http.StatusOK, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("unknown_law")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/health", "GET", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLookup("resolved")
		m.ObserveRequest("/health", http.MethodGet, http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveLookup("not_found")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `reblaw_article_lookups_total{outcome="not_found"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
