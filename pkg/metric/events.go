package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Events = (*eventMetrics)(nil)

type eventMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func newEventMetrics(registry *promRegistry) *eventMetrics {
	published := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_events_published_total",
			Help: "Total number of item events written to Kafka",
		},
		[]string{"topic", "type"},
	)

	failed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_events_failed_total",
			Help: "Total number of item events that could not be written",
		},
		[]string{"topic", "type", "reason"},
	)

	registry.registry.MustRegister(published, failed)

	return &eventMetrics{
		published: published,
		failed:    failed,
	}
}

func (m *eventMetrics) Published(topic string, eventType string) {
	m.published.WithLabelValues(topic, eventType).Add(1)
}

func (m *eventMetrics) Failed(topic string, eventType string, reason string) {
	m.failed.WithLabelValues(topic, eventType, reason).Add(1)
}
