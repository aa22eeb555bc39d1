// Package metrics exposes Prometheus instrumentation behind small
// interfaces so the artifact store and the HTTP layer stay testable
// without a live registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreMetrics counts artifact lifecycle events.
type StoreMetrics interface {
	IncIssued(contentType string)
	IncResolved(outcome string)
	IncEvicted(cause string)
	IncSweeps()
}

// GatewayMetrics captures request metrics for the HTTP boundary.
type GatewayMetrics interface {
	ObserveRequest(method, route, status string, durationSeconds float64)
}

// Noop implements StoreMetrics without emitting anything.
type Noop struct{}

func (Noop) IncIssued(string)   {}
func (Noop) IncResolved(string) {}
func (Noop) IncEvicted(string)  {}
func (Noop) IncSweeps()         {}

// NoopGateway implements GatewayMetrics without emitting anything.
type NoopGateway struct{}

func (NoopGateway) ObserveRequest(string, string, string, float64) {}

// Prom implements StoreMetrics backed by Prometheus counters.
type Prom struct {
	issued   *prometheus.CounterVec
	resolved *prometheus.CounterVec
	evicted  *prometheus.CounterVec
	sweeps   prometheus.Counter
	once     sync.Once
}

func NewProm(namespace string) *Prom {
	p := &Prom{
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_issued_total",
			Help:      "Artifacts issued by content type",
		}, []string{"content_type"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_resolved_total",
			Help:      "Token resolutions by outcome",
		}, []string{"outcome"}),
		evicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_evicted_total",
			Help:      "Artifacts evicted by cause",
		}, []string{"cause"}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaper_sweeps_total",
			Help:      "Reaper sweep passes",
		}),
	}
	p.register()
	return p
}

func (p *Prom) register() {
	p.once.Do(func() {
		prometheus.MustRegister(p.issued, p.resolved, p.evicted, p.sweeps)
	})
}

func (p *Prom) IncIssued(contentType string) {
	p.issued.WithLabelValues(contentType).Inc()
}

func (p *Prom) IncResolved(outcome string) {
	p.resolved.WithLabelValues(outcome).Inc()
}

func (p *Prom) IncEvicted(cause string) {
	p.evicted.WithLabelValues(cause).Inc()
}

func (p *Prom) IncSweeps() {
	p.sweeps.Inc()
}

// Handler returns an HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// --- Gateway metrics ---

type gatewayProm struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	once     sync.Once
}

// NewGatewayProm constructs a GatewayMetrics with counters/histograms.
func NewGatewayProm(namespace string) GatewayMetrics {
	g := &gatewayProm{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method/route/status",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method/route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	g.once.Do(func() {
		prometheus.MustRegister(g.requests, g.latency)
	})
	return g
}

func (g *gatewayProm) ObserveRequest(method, route, status string, durationSeconds float64) {
	g.requests.WithLabelValues(method, route, status).Inc()
	g.latency.WithLabelValues(method, route).Observe(durationSeconds)
}
