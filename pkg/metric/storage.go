package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Storage = (*storageMetrics)(nil)

type storageMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newStorageMetrics(registry *promRegistry, driver string) *storageMetrics {
	constLabels := prometheus.Labels{"driver": driver}

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "storage_operation_duration_seconds",
			Help:        "Duration of item storage operations in seconds",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			ConstLabels: constLabels,
		},
		[]string{"operation"},
	)

	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "storage_operation_failures_total",
			Help:        "Total number of failed item storage operations, not found excluded",
			ConstLabels: constLabels,
		},
		[]string{"operation"},
	)

	registry.registry.MustRegister(duration, failures)

	return &storageMetrics{
		duration: duration,
		failures: failures,
	}
}

func (m *storageMetrics) ObserveDuration(operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *storageMetrics) IncrementFailures(operation string) {
	m.failures.WithLabelValues(operation).Add(1)
}
