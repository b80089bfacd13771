package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the per-handler prometheus instruments. Each handler gets its
// own registry so multiple servers (tests included) never collide on
// registration.
type metrics struct {
	registry *prometheus.Registry

	steps           *prometheus.CounterVec
	sessionsCleared prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_steps_total",
				Help: "Total resolution steps served, by outcome",
			},
			[]string{"outcome"},
		),
		sessionsCleared: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "espalier_sessions_cleared_total",
				Help: "Total sessions cleared over the API",
			},
		),
	}
	m.registry.MustRegister(m.steps, m.sessionsCleared)
	return m
}

func (m *metrics) recordStep(done bool) {
	outcome := "next"
	if done {
		outcome = "done"
	}
	m.steps.WithLabelValues(outcome).Inc()
}
