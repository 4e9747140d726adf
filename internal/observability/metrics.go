package observability

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	enrichments *prometheus.CounterVec
	cacheLookup *prometheus.CounterVec
}

var (
	initMu   sync.Mutex
	instance *Metrics
)

// Current returns the process-wide metrics, or nil when metrics are disabled.
func Current() *Metrics {
	initMu.Lock()
	defer initMu.Unlock()
	return instance
}

// Init builds the process-wide metrics once. Returns nil when disabled.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initMu.Lock()
	defer initMu.Unlock()
	if instance != nil {
		return instance
	}
	instance = NewMetrics()
	if log != nil {
		log.Info("metrics initialized")
	}
	return instance
}

// NewMetrics builds an isolated registry. Tests use it directly.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vox_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vox_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vox_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vox_persona_descriptions_total",
			Help: "Persona descriptions generated, by source (ai|fallback).",
		}, []string{"source"}),
		cacheLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vox_cache_lookups_total",
			Help: "Cache lookups by outcome (hit|miss|error).",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.enrichments,
		m.cacheLookup,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// StartRequest marks one API request in flight. The returned func must be
// called exactly once with the matched route and response status.
func (m *Metrics) StartRequest() func(method, route string, status int) {
	if m == nil {
		return func(string, string, int) {}
	}
	start := time.Now()
	m.apiInflight.Inc()
	return func(method, route string, status int) {
		m.apiInflight.Dec()
		method = strings.ToUpper(strings.TrimSpace(method))
		code := strconv.Itoa(status)
		m.apiRequests.WithLabelValues(method, route, code).Inc()
		m.apiLatency.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncDescription(source string) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(source).Inc()
}

func (m *Metrics) IncCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookup.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
