package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boumia_pos"

// Metrics holds the terminal agent's Prometheus collectors. Each instance
// owns its own registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	checkouts    *prometheus.CounterVec
	prints       *prometheus.CounterVec
	searches     *prometheus.CounterVec
	printerState *prometheus.GaugeVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests served by the agent.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_submissions_total",
			Help:      "Order submissions by order status and outcome.",
		}, []string{"status", "outcome"}),
		prints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "print_jobs_total",
			Help:      "Print attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_searches_total",
			Help:      "Debounced catalog searches by kind and outcome.",
		}, []string{"kind", "outcome"}),
		printerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "printer_state",
			Help:      "1 for the thermal channel's current state, 0 otherwise.",
		}, []string{"state"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpDuration,
		m.checkouts,
		m.prints,
		m.searches,
		m.printerState,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) CheckoutSubmitted(status, outcome string) {
	m.checkouts.WithLabelValues(status, outcome).Inc()
}

func (m *Metrics) PrintAttempted(channel, outcome string) {
	m.prints.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) SearchCompleted(kind, outcome string) {
	m.searches.WithLabelValues(kind, outcome).Inc()
}

// PrinterState marks current as the only active state.
func (m *Metrics) PrinterState(current string, all ...string) {
	for _, s := range all {
		m.printerState.WithLabelValues(s).Set(0)
	}
	m.printerState.WithLabelValues(current).Set(1)
}
