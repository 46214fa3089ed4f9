package backoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy bounds a retried operation: how many times it runs and how long to
// wait between runs.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func (p Policy) Validate() error {
	switch {
	case p.Attempts <= 0:
		return errors.New("invalid attempts: must be > 0")
	case p.BaseDelay <= 0:
		return errors.New("invalid base retry delay: must be > 0")
	case p.MaxDelay <= 0:
		return errors.New("invalid max retry delay: must be > 0")
	case p.BaseDelay > p.MaxDelay:
		return errors.New("base retry delay cannot exceed max retry delay")
	}
	return nil
}

// Retry runs fn until it succeeds, the attempts run out or ctx is done, and
// reports the attempt it stopped at. onRetry, when set, sees every failure
// that is followed by a wait. After the last attempt the error of fn is
// returned unwrapped.
func Retry(
	ctx context.Context,
	p Policy,
	fn func(ctx context.Context) error,
	onRetry func(attempt int, delay time.Duration, err error),
) (int, error) {
	b := New(p.BaseDelay, p.MaxDelay)

	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return attempt, nil
		}

		if attempt == p.Attempts {
			break
		}

		delay := b.Next()
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}

		if sleepErr := Sleep(ctx, delay); sleepErr != nil {
			return attempt, fmt.Errorf("waiting for retry after %v: %w", err, sleepErr)
		}
	}

	return p.Attempts, err
}
