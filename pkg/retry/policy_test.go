package retry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/pkg/retry"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

func TestLinearBackoffPolicy(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(3, 1000, 500)

	assert.Equal(t, 3, p.GetMaxAttempts())
	assert.Equal(t, 1500, p.GetBackoffInterval(1))
	assert.Equal(t, 2000, p.GetBackoffInterval(2))
}

func TestSchedulePolicy(t *testing.T) {
	p := retry.NewSchedulePolicy([]int{2000, 5000, 10000})

	assert.Equal(t, 4, p.GetMaxAttempts())
	assert.Equal(t, 2000, p.GetBackoffInterval(1))
	assert.Equal(t, 5000, p.GetBackoffInterval(2))
	assert.Equal(t, 10000, p.GetBackoffInterval(3))
	// Out-of-range attempts clamp to the schedule edges.
	assert.Equal(t, 10000, p.GetBackoffInterval(9))
	assert.Equal(t, 2000, p.GetBackoffInterval(0))
}

func TestShouldRetryByKind(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(3, 0, 0)

	fetchErr := exception.NewAppError("kma", exception.KindUpstreamFetch, "status 500", nil, true)
	assert.True(t, p.ShouldRetry(fetchErr))

	timeoutErr := exception.NewAppError("kma", exception.KindUpstreamTimeout, "deadline exceeded", nil, true)
	assert.True(t, p.ShouldRetry(timeoutErr))

	validationErr := exception.NewAppErrorf("kma", exception.KindValidation, "auth key missing")
	assert.False(t, p.ShouldRetry(validationErr))

	// Plain errors report KindUnhandled and stay retryable.
	assert.True(t, p.ShouldRetry(errors.New("connection reset")))
	assert.False(t, p.ShouldRetry(nil))
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(3, 0, 0)

	attempts := 0
	err := retry.Do(context.Background(), p, "test-op", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return exception.NewAppError("kma", exception.KindUpstreamFetch, "transient", nil, true)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(3, 0, 0)

	attempts := 0
	err := retry.Do(context.Background(), p, "test-op", func(ctx context.Context) error {
		attempts++
		return exception.NewAppErrorf("kma", exception.KindValidation, "bad request")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))
}

func TestDoExhaustsAttempts(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(2, 0, 0)

	attempts := 0
	err := retry.Do(context.Background(), p, "test-op", func(ctx context.Context) error {
		attempts++
		return exception.NewAppError("kma", exception.KindUpstreamFetch, "still failing", nil, true)
	})

	assert.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoValue(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(2, 0, 0)

	attempts := 0
	value, err := retry.DoValue(context.Background(), p, "test-op", func(ctx context.Context) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, exception.NewAppError("kma", exception.KindUpstreamFetch, "transient", nil, true)
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	p := retry.NewLinearBackoffPolicy(5, 10_000, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, p, "test-op", func(ctx context.Context) error {
		return exception.NewAppError("kma", exception.KindUpstreamFetch, "transient", nil, true)
	})

	assert.ErrorIs(t, err, context.Canceled)
}
