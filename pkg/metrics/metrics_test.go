package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreIndependentPerInstance(t *testing.T) {
	a, b := New(), New()

	a.CheckoutSubmitted("DONE", "success")
	a.CheckoutSubmitted("DONE", "success")
	b.CheckoutSubmitted("DONE", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.checkouts.WithLabelValues("DONE", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.checkouts.WithLabelValues("DONE", "success")))
}

func TestPrinterStateIsExclusive(t *testing.T) {
	m := New()
	states := []string{"unsupported", "disconnected", "connecting", "connected"}

	m.PrinterState("connecting", states...)
	m.PrinterState("connected", states...)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.printerState.WithLabelValues("connected")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.printerState.WithLabelValues("connecting")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.PrintAttempted("thermal", "printed")
	m.SearchCompleted("product", "hit")
	m.ObserveHTTP("GET", "/api/v1/checkout", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `boumia_pos_print_jobs_total{channel="thermal",outcome="printed"} 1`)
	assert.Contains(t, string(body), `boumia_pos_catalog_searches_total{kind="product",outcome="hit"} 1`)
	assert.Contains(t, string(body), "boumia_pos_http_request_duration_seconds_bucket")
}
