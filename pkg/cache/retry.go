package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// transient marks an error as worth another attempt.
type transient struct{ err error }

func (t transient) Error() string { return t.err.Error() }
func (t transient) Unwrap() error { return t.err }

// Retryable marks err as transient. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transient{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var t transient
	return errors.As(err, &t)
}

// Backoff retries transient failures with exponentially growing delays.
type Backoff struct {
	// Attempts is the total number of calls, including the first (default 3).
	Attempts int
	// Delay is the wait before the second call (default 100ms).
	Delay time.Duration
	// MaxDelay caps the wait between calls; zero means uncapped.
	MaxDelay time.Duration
}

func (b Backoff) withDefaults() Backoff {
	if b.Attempts <= 0 {
		b.Attempts = 3
	}
	if b.Delay <= 0 {
		b.Delay = 100 * time.Millisecond
	}
	return b
}

// Do calls fn until it succeeds, fails permanently, runs out of attempts or
// ctx ends. The transient marker is stripped from the returned error.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	b = b.withDefaults()
	delay := b.Delay
	var err error
	for i := 1; ; i++ {
		if err = fn(); err == nil || !IsRetryable(err) || i == b.Attempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if delay *= 2; b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	var t transient
	if errors.As(err, &t) {
		return t.err
	}
	return err
}
