package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/items", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/items", 200, 5*time.Millisecond)
	m.Observe("POST", "/api/sales", 400, time.Millisecond)
	m.Observe("POST", "", 500, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/items", "2xx")); got != 2 {
		t.Fatalf("expected 2 GET /api/items requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/sales", "4xx")); got != 1 {
		t.Fatalf("expected 1 POST /api/sales 4xx, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "unknown", "5xx")); got != 1 {
		t.Fatalf("expected empty route to normalize to unknown, got %v", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/", 200, time.Millisecond)
}
