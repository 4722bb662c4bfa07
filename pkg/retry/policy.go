// Package retry provides the retry policies used by the per-location
// fetchers. Each upstream provider carries its own backoff schedule, so the
// policies here are parameterized rather than hardcoded at call sites.
package retry

import (
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// Policy defines retry behavior for a fetch pipeline.
type Policy interface {
	// ShouldRetry determines if a given error is retryable.
	ShouldRetry(err error) bool
	// GetBackoffInterval returns the backoff interval (in milliseconds) for a
	// given attempt number. attempt starts from 1.
	GetBackoffInterval(attempt int) int
	// GetMaxAttempts returns the maximum number of attempts.
	GetMaxAttempts() int
}

// NewLinearBackoffPolicy creates a policy that waits baseMs + stepMs*attempt
// milliseconds before attempt+1. The upstream weather APIs are retried on any
// failure, including non-2xx responses, so ShouldRetry only refuses
// non-retryable AppErrors.
func NewLinearBackoffPolicy(maxAttempts, baseMs, stepMs int) Policy {
	return &linearBackoffPolicy{
		maxAttempts: maxAttempts,
		baseMs:      baseMs,
		stepMs:      stepMs,
	}
}

type linearBackoffPolicy struct {
	maxAttempts int
	baseMs      int
	stepMs      int
}

func (p *linearBackoffPolicy) GetMaxAttempts() int {
	return p.maxAttempts
}

func (p *linearBackoffPolicy) ShouldRetry(err error) bool {
	return shouldRetry(err)
}

func (p *linearBackoffPolicy) GetBackoffInterval(attempt int) int {
	return p.baseMs + p.stepMs*attempt
}

// NewSchedulePolicy creates a policy with an explicit per-attempt delay
// schedule in milliseconds. The number of attempts is len(delays)+1; the
// delay after attempt n is delays[n-1].
func NewSchedulePolicy(delaysMs []int) Policy {
	return &schedulePolicy{delaysMs: delaysMs}
}

type schedulePolicy struct {
	delaysMs []int
}

func (p *schedulePolicy) GetMaxAttempts() int {
	return len(p.delaysMs) + 1
}

func (p *schedulePolicy) ShouldRetry(err error) bool {
	return shouldRetry(err)
}

func (p *schedulePolicy) GetBackoffInterval(attempt int) int {
	if len(p.delaysMs) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.delaysMs) {
		idx = len(p.delaysMs) - 1
	}
	return p.delaysMs[idx]
}

// shouldRetry retries anything except an AppError explicitly flagged as not
// retryable with a non-upstream kind. Upstream fetch and timeout failures are
// always candidates for another attempt.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	switch exception.KindOf(err) {
	case exception.KindUpstreamFetch, exception.KindUpstreamTimeout, exception.KindUnhandled:
		return true
	case exception.KindPersistence:
		return exception.IsTemporary(err)
	default:
		return false
	}
}

// Verify interfaces
var (
	_ Policy = (*linearBackoffPolicy)(nil)
	_ Policy = (*schedulePolicy)(nil)
)
