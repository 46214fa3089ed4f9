package kafka

import (
	"fmt"
	"time"
)

type Option func(*Producer)

func MaxAttempts(count int) Option {
	return func(p *Producer) {
		p.retry.Attempts = count
	}
}

func BaseRetryDelay(delay time.Duration) Option {
	return func(p *Producer) {
		p.retry.BaseDelay = delay
	}
}

func MaxRetryDelay(delay time.Duration) Option {
	return func(p *Producer) {
		p.retry.MaxDelay = delay
	}
}

func (p *Producer) validate() error {
	if err := p.retry.Validate(); err != nil {
		return fmt.Errorf("write retry: %w", err)
	}
	return nil
}
