package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reload passes.
type Metrics struct {
	// Pass outcomes by trigger ("pull", "push", "scheduled") and status
	PassesTotal *prometheus.CounterVec

	// Full pass latency, collection included
	PassDuration prometheus.Histogram

	// Per-facility transitions by kind (created, updated, missing, removed, revived)
	Transitions *prometheus.CounterVec

	// Problems recorded across passes
	Problems prometheus.Counter

	// Facilities in the last collection
	CollectedFacilities prometheus.Gauge

	// Unix time of the last pass that completed without error
	LastSuccess prometheus.Gauge
}

// New creates a new Metrics instance with all reload metrics registered.
func New() *Metrics {
	return &Metrics{
		PassesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facilities_reload_passes_total",
			Help: "Total reload passes by trigger and status",
		}, []string{"trigger", "status"}), // status: "success", "failed", "collector_failed", "rejected"

		PassDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "facilities_reload_pass_duration_seconds",
			Help:    "Duration of a reload pass including collection",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facilities_reload_transitions_total",
			Help: "Facility transitions applied by reload passes",
		}, []string{"transition"}),

		Problems: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facilities_reload_problems_total",
			Help: "Problems recorded by reload passes",
		}),

		CollectedFacilities: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "facilities_reload_collected_facilities",
			Help: "Number of facilities supplied to the most recent pass",
		}),

		LastSuccess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "facilities_reload_last_success_timestamp_seconds",
			Help: "Unix time of the last reload pass that completed without error",
		}),
	}
}

// IncrementPass records a pass outcome.
func (m *Metrics) IncrementPass(trigger, status string) {
	if m != nil {
		m.PassesTotal.WithLabelValues(trigger, status).Inc()
	}
}

// ObservePassDuration records the total pass duration.
func (m *Metrics) ObservePassDuration(d time.Duration) {
	if m != nil {
		m.PassDuration.Observe(d.Seconds())
	}
}

// AddTransitions records n transitions of one kind.
func (m *Metrics) AddTransitions(transition string, n int) {
	if m != nil && n > 0 {
		m.Transitions.WithLabelValues(transition).Add(float64(n))
	}
}

// AddProblems records n problems.
func (m *Metrics) AddProblems(n int) {
	if m != nil && n > 0 {
		m.Problems.Add(float64(n))
	}
}

// SetCollected records the size of the latest collection.
func (m *Metrics) SetCollected(n int) {
	if m != nil {
		m.CollectedFacilities.Set(float64(n))
	}
}

// MarkSuccess stamps the last successful pass.
func (m *Metrics) MarkSuccess(t time.Time) {
	if m != nil {
		m.LastSuccess.Set(float64(t.Unix()))
	}
}
