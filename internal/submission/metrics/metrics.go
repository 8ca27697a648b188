package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission workflow.
type Metrics struct {
	Submissions  *prometheus.CounterVec
	SoftFailures *prometheus.CounterVec
}

// New registers and returns the submission workflow metrics. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pomen_submissions_total",
			Help: "Completed submission workflows by outcome",
		}, []string{"outcome"}),
		SoftFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pomen_submission_soft_failures_total",
			Help: "Post-tribute best-effort step failures by stage",
		}, []string{"stage"}),
	}
}

// ObserveOutcome records a finished workflow ("submitted" or "failed").
func (m *Metrics) ObserveOutcome(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveSoftFailure records a failed counter increment or photo backfill.
func (m *Metrics) ObserveSoftFailure(stage string) {
	m.SoftFailures.WithLabelValues(stage).Inc()
}
