package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a sliding-window request limiter. It keeps batch runs under the
// provider's published per-minute limit instead of burning retries on 429s.
type Limiter struct {
	mu       sync.Mutex
	requests []time.Time
	limit    int
	window   time.Duration
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 10
	}

	return &Limiter{
		limit:  limit,
		window: time.Minute,
	}
}

// Allow reports whether a request may start now and, if so, records it.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	if len(l.requests) >= l.limit {
		return false
	}

	l.requests = append(l.requests, now)
	return true
}

// Wait blocks until a slot is free or the context is done. The request is
// recorded on success.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		if l.Allow() {
			return nil
		}

		d := time.Until(l.ResetTime())
		if d < 10*time.Millisecond {
			d = 10 * time.Millisecond
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining returns the number of requests still allowed in the window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(time.Now())

	if rem := l.limit - len(l.requests); rem > 0 {
		return rem
	}
	return 0
}

// ResetTime is when the oldest recorded request falls out of the window.
func (l *Limiter) ResetTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.requests) == 0 {
		return time.Now()
	}

	oldest := l.requests[0]
	for _, t := range l.requests[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}

// prune drops timestamps outside the window. Caller holds the lock.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	fresh := l.requests[:0]
	for _, t := range l.requests {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	l.requests = fresh
}
