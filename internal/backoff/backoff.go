package backoff

import (
	"context"
	"math/rand"
	"time"
)

// Policy is an explicit retry delay schedule: exponential growth from
// BaseDelay, capped at MaxDelay, randomized by Jitter. The zero Jitter
// means full jitter (uniform over [0, delay)).
type Policy struct {
	MaxAttempts int // retries after the initial try
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      func(time.Duration) time.Duration
}

func Default() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// Delay returns the randomized delay before retry number attempt (0-based).
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	if d <= 0 {
		d = time.Second
	}
	max := p.MaxDelay
	if max <= 0 {
		max = 30 * time.Second
	}

	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			d = max
			break
		}
	}
	if d > max {
		d = max
	}

	jitter := p.Jitter
	if jitter == nil {
		jitter = FullJitter
	}
	return jitter(d)
}

// Wait sleeps for the attempt's delay, or returns early with the context
// error on cancellation.
func (p Policy) Wait(ctx context.Context, attempt int) error {
	return sleep(ctx, p.Delay(attempt))
}

// WaitFor sleeps for an externally supplied delay, e.g. a Retry-After hint.
func (p Policy) WaitFor(ctx context.Context, d time.Duration) error {
	return sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FullJitter picks uniformly from [0, d).
func FullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d)))
}

// NoJitter returns the delay unchanged. Useful in tests.
func NoJitter(d time.Duration) time.Duration { return d }
