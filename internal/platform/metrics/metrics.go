package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-wide Prometheus metrics. Module metrics (conversation,
// moderation, notification) register on the same registry.
type Metrics struct {
	Registry      *prometheus.Registry
	UpdatesTotal  *prometheus.CounterVec
	HandlerPanics prometheus.Counter
}

// New creates a registry with Go and process collectors plus the inbound
// update counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		UpdatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruit_updates_total",
			Help: "Inbound chat events by kind (command, text, action)",
		}, []string{"kind"}),
		HandlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Name: "recruit_handler_panics_total",
			Help: "Inbound event handlers that panicked and were recovered",
		}),
	}
}

// IncrementUpdates counts one inbound event.
func (m *Metrics) IncrementUpdates(kind string) {
	if m != nil {
		m.UpdatesTotal.WithLabelValues(kind).Inc()
	}
}

// IncrementPanics counts one recovered handler panic.
func (m *Metrics) IncrementPanics() {
	if m != nil {
		m.HandlerPanics.Inc()
	}
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
