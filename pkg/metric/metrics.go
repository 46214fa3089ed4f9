package metric

import (
	"net/http"
	"time"
)

//go:generate mockgen -source=metrics.go -destination=mock/metrics.go -package=mock_metric

type (
	Factory interface {
		HTTP() HTTP
		Storage() Storage
		Events() Events
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, path string, status int, duration time.Duration)
		SlowRequest(method, path string, status int, duration time.Duration)
	}

	Storage interface {
		ObserveDuration(operation string, duration time.Duration)
		IncrementFailures(operation string)
	}

	Events interface {
		Published(topic string, eventType string)
		Failed(topic string, eventType string, reason string)
	}
)
