// Package metrics exposes Prometheus metrics for upstream calls and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Metrics holds all Prometheus collectors of the service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Upstream metrics
	UpstreamLatency *prometheus.HistogramVec
	UpstreamCalls   *prometheus.CounterVec
	UpstreamRetries *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Fan-out metrics
	FanoutInFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg under namespace. A nil reg uses a fresh registry.
func New(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "cardano_api"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "call_latency_seconds",
			Help:      "Upstream provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		UpstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total number of upstream provider calls by outcome",
		}, []string{"provider", "outcome"}),
		UpstreamRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "retries_total",
			Help:      "Total number of rate-limited upstream calls that were retried",
		}, []string{"provider"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route"}),

		FanoutInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "fanout",
			Name:      "in_flight",
			Help:      "Number of fan-out tasks currently running",
		}),

		gatherer: reg,
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveUpstream records the latency and outcome of one upstream call.
func (m *Metrics) ObserveUpstream(provider string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.UpstreamLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	m.UpstreamCalls.WithLabelValues(provider, domain.Kind(err)).Inc()
}

// RecordRetry counts a rate-limited upstream call that will be retried.
func (m *Metrics) RecordRetry(provider string) {
	if m == nil {
		return
	}
	m.UpstreamRetries.WithLabelValues(provider).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// TaskStarted and TaskFinished track fan-out concurrency.
func (m *Metrics) TaskStarted() {
	if m == nil {
		return
	}
	m.FanoutInFlight.Inc()
}

func (m *Metrics) TaskFinished() {
	if m == nil {
		return
	}
	m.FanoutInFlight.Dec()
}
