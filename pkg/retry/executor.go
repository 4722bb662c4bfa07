package retry

import (
	"context"
	"time"

	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// Do runs op up to the policy's maximum attempts, sleeping for the policy's
// backoff interval between attempts. The context cancels both the in-flight
// operation (op receives it) and the backoff sleep. The last error is
// returned when every attempt fails.
func Do(ctx context.Context, p Policy, name string, op func(ctx context.Context) error) error {
	var lastErr error
	maxAttempts := p.GetMaxAttempts()
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts || !p.ShouldRetry(lastErr) {
			break
		}

		backoff := time.Duration(p.GetBackoffInterval(attempt)) * time.Millisecond
		logger.Warnf("%s attempt %d/%d failed, retrying in %s: %v", name, attempt, maxAttempts, backoff, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return lastErr
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, p, name, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}
