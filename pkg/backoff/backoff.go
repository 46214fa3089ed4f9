// Package backoff computes jittered exponential retry delays.
package backoff

import (
	"context"
	"math/rand"
	"time"
)

const _multiplier = 2

type Backoff struct {
	base    time.Duration
	max     time.Duration
	current time.Duration
}

func New(base, max time.Duration) *Backoff {
	return &Backoff{base: base, max: max, current: base}
}

// Next returns a random delay in [0, 2*current) capped at max and doubles
// current for the following call.
func (b *Backoff) Next() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(b.current * _multiplier)))
	if jitter > b.max {
		jitter = b.max
	}

	next := b.current * _multiplier
	if next > b.max {
		next = b.max
	}
	b.current = next

	return jitter
}

func (b *Backoff) Reset() {
	b.current = b.base
}

// Sleep waits d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
