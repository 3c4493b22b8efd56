package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections prometheus.Counter
	Errors     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_ratelimit_rejections_total",
			Help: "Total number of requests rejected by the per-client rate limit",
		}),
		Errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "hkid_ratelimit_errors_total",
			Help: "Total number of rate limit checks that failed open",
		}),
	}
}

func (m *Metrics) IncrementRejections() {
	if m != nil {
		m.Rejections.Inc()
	}
}

func (m *Metrics) IncrementErrors() {
	if m != nil {
		m.Errors.Inc()
	}
}
