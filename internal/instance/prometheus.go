package instance

import "github.com/prometheus/client_golang/prometheus"

type Prometheus interface {
	Register(r prometheus.Registerer)

	SessionsActive() prometheus.Gauge
	MessagesSent() prometheus.Counter
	DispatchesSent() prometheus.Counter
}
