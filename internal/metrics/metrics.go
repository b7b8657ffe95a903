// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Recomputes      *prometheus.CounterVec
	AuthDecisions   *prometheus.CounterVec
}

// New builds a registry with the Go and process collectors plus the
// service collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_completion_recomputes_total",
			Help: "Completion recomputations by kind (task, project).",
		}, []string{"kind"}),
		AuthDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_authorization_decisions_total",
			Help: "Write authorization decisions by outcome.",
		}, []string{"decision"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.Recomputes,
		m.AuthDecisions,
	)
	return m
}

// IncRecompute is safe on a nil receiver.
func (m *Metrics) IncRecompute(kind string) {
	if m == nil {
		return
	}
	m.Recomputes.WithLabelValues(kind).Inc()
}

// IncDecision is safe on a nil receiver.
func (m *Metrics) IncDecision(decision string) {
	if m == nil {
		return
	}
	m.AuthDecisions.WithLabelValues(decision).Inc()
}
