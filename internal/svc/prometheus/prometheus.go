package prometheus

import (
	"github.com/huddleapp/huddle/internal/instance"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	Labels prometheus.Labels
}

type mon struct {
	sessionsActive prometheus.Gauge
	messagesSent   prometheus.Counter
	dispatchesSent prometheus.Counter
}

func (m *mon) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.sessionsActive,
		m.messagesSent,
		m.dispatchesSent,
	)
}

func (m *mon) SessionsActive() prometheus.Gauge {
	return m.sessionsActive
}

func (m *mon) MessagesSent() prometheus.Counter {
	return m.messagesSent
}

func (m *mon) DispatchesSent() prometheus.Counter {
	return m.dispatchesSent
}

func New(o Options) instance.Prometheus {
	return &mon{
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "huddle_sessions_active",
			Help:        "The number of connected client sessions",
			ConstLabels: o.Labels,
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "huddle_messages_sent_total",
			Help:        "The total number of chat messages written",
			ConstLabels: o.Labels,
		}),
		dispatchesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "huddle_dispatches_sent_total",
			Help:        "The total number of snapshot dispatches pushed to clients",
			ConstLabels: o.Labels,
		}),
	}
}
