package cache

import (
	"context"
	"errors"
	"time"
)

// Backoff controls RetryWithBackoff: at most Attempts calls, sleeping Delay
// after the first failure and doubling it each time.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when connecting to a remote cache.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff tries again. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or an error it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or b.Attempts calls were made. It stops early with ctx.Err()
// when ctx is done while waiting. The last error is returned unwrapped.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	if re, ok := err.(*RetryableError); ok {
		return re.Err
	}
	return err
}
