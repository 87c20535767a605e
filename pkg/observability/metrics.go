// Package observability bridges the session event channel to Prometheus, so
// pipeline runs can be monitored without the core knowing about metrics.
package observability

import (
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/events"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed from session events.
type Metrics struct {
	commands   *prometheus.CounterVec
	normalized prometheus.Counter
	saves      prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remat_commands_total",
				Help: "Total number of drained transform commands",
			},
			[]string{"command", "status"},
		),
		normalized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "remat_materials_normalized_total",
				Help: "Total number of material records changed by normalization",
			},
		),
		saves: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "remat_documents_saved_total",
				Help: "Total number of documents written",
			},
		),
	}
	reg.MustRegister(m.commands, m.normalized, m.saves)
	return m
}

// Attach subscribes the collectors to a session's event channel and returns
// the unsubscribe function.
func (m *Metrics) Attach(ch *events.Channel) func() {
	return ch.Subscribe(func(evt domain.Event) {
		switch evt.Type {
		case domain.EventCommandDone:
			status := "ok"
			if evt.IsError {
				status = "error"
			}
			m.commands.WithLabelValues(evt.Command, status).Inc()
		case domain.EventNormalized:
			m.normalized.Add(float64(evt.Count))
		case domain.EventDocumentSaved:
			m.saves.Inc()
		}
	})
}
