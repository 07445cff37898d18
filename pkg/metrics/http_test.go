package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init()

	HTTPRequestsTotal.WithLabelValues("GET", "/metrics-test", "200").Inc()
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics-test", "200")); got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}

	if err := prometheus.Register(HTTPRequestsTotal); err == nil {
		t.Fatal("expected collector to be registered already")
	}
}
