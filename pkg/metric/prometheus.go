package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const _defaultStorageDriver = "mongo"

var _ Factory = (*prometheusFactory)(nil)

type Option func(*prometheusFactory)

// StorageDriver labels storage metrics with the backend in use.
func StorageDriver(driver string) Option {
	return func(f *prometheusFactory) {
		f.storageDriver = driver
	}
}

type prometheusFactory struct {
	registry      *promRegistry
	storageDriver string

	http    *httpMetrics
	storage *storageMetrics
	events  *eventMetrics
}

func NewFactory(opts ...Option) Factory {
	f := &prometheusFactory{
		registry:      newPromRegistry(),
		storageDriver: _defaultStorageDriver,
	}

	for _, opt := range opts {
		opt(f)
	}

	f.http = newHTTPMetrics(f.registry)
	f.storage = newStorageMetrics(f.registry, f.storageDriver)
	f.events = newEventMetrics(f.registry)

	return f
}

func (f *prometheusFactory) HTTP() HTTP {
	return f.http
}

func (f *prometheusFactory) Storage() Storage {
	return f.storage
}

func (f *prometheusFactory) Events() Events {
	return f.events
}

func (f *prometheusFactory) Handler() http.Handler {
	return promhttp.HandlerFor(f.registry.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})
}

type promRegistry struct {
	registry *prometheus.Registry
}

func newPromRegistry() *promRegistry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &promRegistry{registry: reg}
}
