package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLM call outcomes.
const (
	OutcomeCacheHit    = "cache_hit"
	OutcomeRemote      = "remote"
	OutcomeFallback    = "fallback"
	OutcomeRateLimited = "rate_limited"
)

// Metrics owns its registry so that several instances can coexist in tests.
type Metrics struct {
	registry        *prometheus.Registry
	analyses        *prometheus.CounterVec
	llmCalls        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decision_coach",
			Name:      "analyses_total",
			Help:      "Rule-based analyses served, by kind.",
		}, []string{"kind"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decision_coach",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Enhancement attempts, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "decision_coach",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.analyses, m.llmCalls, m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) AnalysisServed(kind string) {
	m.analyses.WithLabelValues(kind).Inc()
}

func (m *Metrics) LLMCall(operation, outcome string) {
	m.llmCalls.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
