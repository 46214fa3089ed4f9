package repository

import (
	"errors"
	"time"

	"itemsvc/internal/entity"
	"itemsvc/pkg/metric"
)

const (
	opCreate  = "create"
	opFind    = "find"
	opFindOne = "find_one"
	opUpdate  = "update"
	opDelete  = "delete"
)

// observe records the duration of a storage call. Not-found results are an
// expected outcome and are not counted as failures.
func observe(metrics metric.Storage, operation string, start time.Time, err error) {
	if metrics == nil {
		return
	}

	metrics.ObserveDuration(operation, time.Since(start))
	if err != nil && !errors.Is(err, entity.ErrDataNotFound) {
		metrics.IncrementFailures(operation)
	}
}
