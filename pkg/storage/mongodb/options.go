package mongodb

import (
	"errors"
	"fmt"
	"time"
)

type Option func(*Mongo)

func MaxPoolSize(size uint64) Option {
	return func(m *Mongo) {
		m.maxPoolSize = size
	}
}

func MaxConnAttempts(attempts int) Option {
	return func(m *Mongo) {
		m.retry.Attempts = attempts
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(m *Mongo) {
		m.retry.BaseDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(m *Mongo) {
		m.retry.MaxDelay = delay
	}
}

// ConnectTimeout bounds one connection attempt and server selection.
func ConnectTimeout(timeout time.Duration) Option {
	return func(m *Mongo) {
		m.connectTimeout = timeout
	}
}

func (m *Mongo) validate() error {
	if m.maxPoolSize == 0 {
		return errors.New("invalid maxPoolSize: must be > 0")
	}
	if m.connectTimeout <= 0 {
		return errors.New("invalid connect timeout: must be > 0")
	}
	if err := m.retry.Validate(); err != nil {
		return fmt.Errorf("connect retry: %w", err)
	}
	return nil
}
