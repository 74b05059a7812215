package usecase

import (
	"context"
	"time"
)

// retryPolicy bounds a synchronous wait-for-an-external-system loop: attempt
// count, per-attempt delay, and a predicate separating retryable from fatal
// errors. Retries stay local to the single request performing them; nothing
// is queued or retried across requests.
type retryPolicy struct {
	attempts  int
	delay     func(attempt int) time.Duration
	retryable func(error) bool
}

// fixedDelay returns a backoff function with a constant interval.
func fixedDelay(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// runWithRetry runs op until it succeeds, fails with a non-retryable error,
// exhausts the attempt budget, or ctx is done. On exhaustion the last error
// is returned so the caller can classify it.
func runWithRetry(ctx context.Context, policy retryPolicy, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= policy.attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !policy.retryable(lastErr) {
			return lastErr
		}
		if attempt == policy.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(policy.delay(attempt)):
		}
	}
	return lastErr
}
