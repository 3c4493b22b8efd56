package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Validation outcomes by widget shape and error kind ("valid" when valid)
	Validations *prometheus.CounterVec

	// Latency per engine operation
	OperationLatency *prometheus.HistogramVec

	// Items per batch request
	BatchSize prometheus.Histogram
}

// New creates the verification metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hkid_validations_total",
			Help: "Total HKID validations by widget shape and outcome",
		}, []string{"shape", "outcome"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hkid_operation_duration_seconds",
			Help:    "Duration of verification operations",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"operation"}), // operation: "validate", "batch", "normalize", "check_digit", "format"

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hkid_batch_size",
			Help:    "Number of values per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementValidation records one validation outcome.
func (m *Metrics) IncrementValidation(shape, outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(shape, outcome).Inc()
	}
}

// ObserveLatency records the duration of an operation.
func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
