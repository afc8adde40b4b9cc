// Package metrics exposes dispatch counters to Prometheus.
package metrics

import (
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"

	"github.com/prometheus/client_golang/prometheus"
)

var _ commands.Observer = (*DispatchMetrics)(nil)

// DispatchMetrics counts dispatch outcomes reported by the command handlers.
type DispatchMetrics struct {
	created       *prometheus.CounterVec
	resolved      *prometheus.CounterVec
	failed        *prometheus.CounterVec
	notifyFailed  *prometheus.CounterVec
	sweepDuration prometheus.Histogram
}

// NewDispatchMetrics registers the dispatch collectors on reg.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignments_created_total",
			Help: "Total number of assignments offered to couriers",
		}, []string{"type"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignments_resolved_total",
			Help: "Total number of assignments accepted, rejected or timed out",
		}, []string{"status"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_failures_total",
			Help: "Total number of dispatch attempts that found no courier",
		}, []string{"reason"}),
		notifyFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_notification_failures_total",
			Help: "Total number of notifications that could not be delivered",
		}, []string{"kind"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_timeout_sweep_duration_seconds",
			Help:    "Duration of timeout sweeper passes",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.created, m.resolved, m.failed, m.notifyFailed, m.sweepDuration)
	return m
}

func (m *DispatchMetrics) AssignmentCreated(typ assignment.Type) {
	m.created.WithLabelValues(typ.String()).Inc()
}

func (m *DispatchMetrics) AssignmentResolved(status assignment.Status) {
	m.resolved.WithLabelValues(status.String()).Inc()
}

func (m *DispatchMetrics) DispatchFailed(reason string) {
	m.failed.WithLabelValues(reason).Inc()
}

func (m *DispatchMetrics) NotificationFailed(kind string) {
	m.notifyFailed.WithLabelValues(kind).Inc()
}

// ObserveSweep records how long one sweeper pass took.
func (m *DispatchMetrics) ObserveSweep(seconds float64) {
	m.sweepDuration.Observe(seconds)
}
