package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery step labels.
const (
	StepModeratorSummary = "moderator_summary"
	StepVerdict          = "verdict"
	StepAttachment       = "attachment"
	StepInstructions     = "instructions"
	StepAmendment        = "amendment"
)

type Metrics struct {
	Deliveries       *prometheus.CounterVec
	DeliveryFailures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_notification_deliveries_total",
			Help: "Outbound notification messages delivered, by step",
		}, []string{"step"}),
		DeliveryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_notification_failures_total",
			Help: "Outbound notification messages that failed, by step",
		}, []string{"step"}),
	}
}

func (m *Metrics) IncrementDelivered(step string) {
	if m != nil {
		m.Deliveries.WithLabelValues(step).Inc()
	}
}

func (m *Metrics) IncrementFailed(step string) {
	if m != nil {
		m.DeliveryFailures.WithLabelValues(step).Inc()
	}
}
