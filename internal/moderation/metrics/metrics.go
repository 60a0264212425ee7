package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for DecisionsTotal.
const (
	OutcomeAccepted       = "accepted"
	OutcomeRejected       = "rejected"
	OutcomeAlreadyDecided = "already_decided"
	OutcomeNotFound       = "not_found"
	OutcomeError          = "error"
)

// Metrics tracks moderation decisions.
type Metrics struct {
	DecisionsTotal   *prometheus.CounterVec
	DecisionDuration prometheus.Histogram
	DecisionRetries  prometheus.Counter
}

// New registers moderation metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_decisions_total",
			Help: "Moderator decisions by outcome",
		}, []string{"outcome"}),
		DecisionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recruit_decision_duration_seconds",
			Help:    "Duration of Decide including retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		DecisionRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_decision_retries_total",
			Help: "Decision attempts retried after a transient storage fault",
		}),
	}
}

func (m *Metrics) IncrementDecision(outcome string) {
	if m != nil {
		m.DecisionsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveDecision records the duration of a Decide call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDecision(start time.Time) {
	if m != nil {
		m.DecisionDuration.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncrementRetry() {
	if m != nil {
		m.DecisionRetries.Inc()
	}
}
