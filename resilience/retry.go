package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrAttemptsExhausted is returned when the attempt budget is spent without
// a decisive outcome from the policy.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// RetryableFunc reports whether a failed attempt may be retried.
type RetryableFunc func(error) bool

// OnRetryFunc is invoked before each retry sleep with the attempt number
// just completed, its error, and the upcoming delay.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// RetryPolicy decides whether and when a failed attempt should be retried.
// Attempt numbering starts at 1. Policies must be safe for concurrent use;
// all implementations in this package are stateless.
type RetryPolicy interface {
	// MaxAttempts is the total attempt budget, including the first attempt.
	MaxAttempts() int
	// ShouldRetry is evaluated after attempt number attempt has failed
	// with err. A false return is final.
	ShouldRetry(attempt int, err error) bool
	// Delay is the wait before the attempt following attempt.
	Delay(attempt int) time.Duration
}

// DefaultRetryable retries all errors except context cancellation.
func DefaultRetryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// NoRetry never retries: every call gets exactly one attempt.
type NoRetry struct{}

func (NoRetry) MaxAttempts() int { return 1 }

func (NoRetry) ShouldRetry(int, error) bool { return false }

func (NoRetry) Delay(int) time.Duration { return 0 }

// FixedDelay retries up to Retries times after the first attempt, with a
// constant interval between attempts, so Retries=3 allows 4 attempts in
// total. RetryIf filters which errors are eligible; a non-eligible error
// short-circuits immediately regardless of remaining budget.
type FixedDelay struct {
	Retries  int
	Interval time.Duration
	RetryIf  RetryableFunc
}

// NewFixedDelay creates a fixed-delay policy with the default eligibility
// filter.
func NewFixedDelay(retries int, interval time.Duration) *FixedDelay {
	return &FixedDelay{Retries: retries, Interval: interval, RetryIf: DefaultRetryable}
}

func (p *FixedDelay) MaxAttempts() int {
	if p.Retries <= 0 {
		return 1
	}
	return p.Retries + 1
}

func (p *FixedDelay) ShouldRetry(attempt int, err error) bool {
	if attempt >= p.MaxAttempts() {
		return false
	}
	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryable
	}
	return retryIf(err)
}

func (p *FixedDelay) Delay(int) time.Duration {
	return p.Interval
}

// ExponentialBackoff retries up to Retries times after the first attempt,
// doubling the delay each attempt: delay(k) = min(MaxDelay, BaseDelay *
// 2^(k-1)). Jitter, when set in (0, 1], randomizes each delay by up to that
// fraction; the result is still capped at MaxDelay.
type ExponentialBackoff struct {
	Retries   int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    float64
	RetryIf   RetryableFunc
}

// NewExponentialBackoff creates an exponential backoff policy with no
// jitter and the default eligibility filter.
func NewExponentialBackoff(retries int, baseDelay, maxDelay time.Duration) *ExponentialBackoff {
	return &ExponentialBackoff{
		Retries:   retries,
		BaseDelay: baseDelay,
		MaxDelay:  maxDelay,
		RetryIf:   DefaultRetryable,
	}
}

func (p *ExponentialBackoff) MaxAttempts() int {
	if p.Retries <= 0 {
		return 1
	}
	return p.Retries + 1
}

func (p *ExponentialBackoff) ShouldRetry(attempt int, err error) bool {
	if attempt >= p.MaxAttempts() {
		return false
	}
	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryable
	}
	return retryIf(err)
}

func (p *ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(p.BaseDelay) * math.Pow(2, float64(attempt-1))

	if p.Jitter > 0 {
		jitterRange := delay * p.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	if maxDelay := float64(p.MaxDelay); p.MaxDelay > 0 && delay > maxDelay {
		delay = maxDelay
	}
	if delay < 0 {
		delay = float64(p.BaseDelay)
	}

	return time.Duration(delay)
}

// Execute runs fn through the policy until it succeeds, the policy declines
// to retry, or the attempt budget is exhausted. fn receives the attempt
// number, starting at 1. The inter-attempt delay is cancellable: a context
// cancelled during the delay prevents the next attempt from starting.
func Execute[T any](ctx context.Context, policy RetryPolicy, fn func(attempt int) (T, error)) (T, error) {
	return ExecuteNotify(ctx, policy, fn, nil)
}

// ExecuteNotify is Execute with a callback invoked before each retry sleep.
func ExecuteNotify[T any](ctx context.Context, policy RetryPolicy, fn func(attempt int) (T, error), notify OnRetryFunc) (T, error) {
	var zero T

	maxAttempts := policy.MaxAttempts()
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}

		if !policy.ShouldRetry(attempt, err) {
			return zero, err
		}

		// Defensive bound: the policy asked to retry past its own budget.
		if attempt >= maxAttempts {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, err)
		}

		delay := policy.Delay(attempt)
		if notify != nil {
			notify(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// ExecuteFunc runs a function that returns only an error.
func ExecuteFunc(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) error {
	_, err := Execute(ctx, policy, func(attempt int) (struct{}, error) {
		return struct{}{}, fn(attempt)
	})
	return err
}
