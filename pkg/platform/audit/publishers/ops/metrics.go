package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for ops audit tracking.
type Metrics struct {
	Tracked prometheus.Counter
	Sampled prometheus.Counter
}

// NewMetrics registers ops audit metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Tracked: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_audit_ops_tracked_total",
			Help: "Total number of operational audit events tracked",
		}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_audit_ops_sampled_total",
			Help: "Total number of operational audit events dropped due to sampling",
		}),
	}
}

func (m *Metrics) incTracked() {
	if m != nil {
		m.Tracked.Inc()
	}
}

func (m *Metrics) incSampled() {
	if m != nil {
		m.Sampled.Inc()
	}
}
