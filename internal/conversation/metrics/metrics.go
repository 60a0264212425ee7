package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks applicant progress through the form.
type Metrics struct {
	Started            prometheus.Counter
	FieldsAccepted     *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Completed          prometheus.Counter
	Cancelled          prometheus.Counter
	StoreFailures      prometheus.Counter
}

// New registers conversation metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Started: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_conversations_started_total",
			Help: "Conversations started with /form",
		}),
		FieldsAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_conversation_fields_accepted_total",
			Help: "Form fields that passed validation",
		}, []string{"field"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_conversation_validation_failures_total",
			Help: "Form inputs rejected by validation, by field",
		}, []string{"field"}),
		Completed: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_conversations_completed_total",
			Help: "Conversations that produced a stored submission",
		}),
		Cancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_conversations_cancelled_total",
			Help: "Conversations cancelled by the applicant",
		}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_conversation_store_failures_total",
			Help: "Session or submission writes that failed",
		}),
	}
}

func (m *Metrics) IncrementStarted() {
	if m != nil {
		m.Started.Inc()
	}
}

func (m *Metrics) IncrementFieldAccepted(field string) {
	if m != nil {
		m.FieldsAccepted.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncrementCompleted() {
	if m != nil {
		m.Completed.Inc()
	}
}

func (m *Metrics) IncrementCancelled() {
	if m != nil {
		m.Cancelled.Inc()
	}
}

func (m *Metrics) IncrementStoreFailure() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}
