// Package metrics records wizard activity as Prometheus collectors fed by
// domain.LifecycleHooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of placify_submissions_total.
const (
	OutcomeSubmitted = "submitted"
	OutcomeFailed    = "failed"
)

// Metrics owns a registry with the Placify collectors.
type Metrics struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	invalid     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_step_transitions_total",
			Help: "Step transitions by wizard and kind (step_enter, step_rejected, reset).",
		}, []string{"wizard", "kind"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_validation_failures_total",
			Help: "Fields that failed validation on advance.",
		}, []string{"wizard", "field"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_submissions_total",
			Help: "Gateway calls by wizard and outcome.",
		}, []string{"wizard", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_submission_failures_total",
			Help: "Failed gateway calls by reason.",
		}, []string{"wizard", "reason"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placify_submission_duration_seconds",
			Help:    "Duration of gateway calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"wizard"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "placify_submissions_in_flight",
			Help: "Gateway calls currently pending.",
		}, []string{"wizard"}),
	}
	m.registry.MustRegister(
		m.transitions, m.invalid, m.submissions, m.failures, m.latency, m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.transitions.WithLabelValues(e.WizardID, string(e.Type)).Inc()
		},
		OnStepRejected: func(_ context.Context, e *domain.StepEvent) {
			m.transitions.WithLabelValues(e.WizardID, string(e.Type)).Inc()
			for _, field := range e.Invalid {
				m.invalid.WithLabelValues(e.WizardID, field).Inc()
			}
		},
		OnReset: func(_ context.Context, e *domain.StepEvent) {
			m.transitions.WithLabelValues(e.WizardID, string(e.Type)).Inc()
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.inFlight.WithLabelValues(e.WizardID).Inc()
		},
		OnSubmitted: func(_ context.Context, e *domain.SubmitEvent) {
			m.inFlight.WithLabelValues(e.WizardID).Dec()
			m.submissions.WithLabelValues(e.WizardID, OutcomeSubmitted).Inc()
			m.latency.WithLabelValues(e.WizardID).Observe(e.Duration.Seconds())
		},
		OnSubmitFailed: func(_ context.Context, e *domain.SubmitEvent) {
			m.inFlight.WithLabelValues(e.WizardID).Dec()
			m.submissions.WithLabelValues(e.WizardID, OutcomeFailed).Inc()
			m.latency.WithLabelValues(e.WizardID).Observe(e.Duration.Seconds())
			reason := string(domain.ReasonUnknown)
			if e.Failure != nil {
				reason = string(e.Failure.Reason)
			}
			m.failures.WithLabelValues(e.WizardID, reason).Inc()
		},
	}
}
