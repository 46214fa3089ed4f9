package postgres

import (
	"errors"
	"fmt"
	"time"
)

type Option func(*Postgres)

func MaxPoolSize(size int32) Option {
	return func(p *Postgres) {
		p.maxPoolSize = size
	}
}

func MaxConnAttempts(attempts int) Option {
	return func(p *Postgres) {
		p.retry.Attempts = attempts
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(p *Postgres) {
		p.retry.BaseDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(p *Postgres) {
		p.retry.MaxDelay = delay
	}
}

// PingTimeout bounds a single connection attempt, pool creation and first
// ping included.
func PingTimeout(timeout time.Duration) Option {
	return func(p *Postgres) {
		p.pingTimeout = timeout
	}
}

func (p *Postgres) validate() error {
	if p.maxPoolSize <= 0 {
		return errors.New("invalid maxPoolSize: must be > 0")
	}
	if p.pingTimeout <= 0 {
		return errors.New("invalid ping timeout: must be > 0")
	}
	if err := p.retry.Validate(); err != nil {
		return fmt.Errorf("connect retry: %w", err)
	}
	return nil
}
