package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient failure")

func TestNoRetry(t *testing.T) {
	p := NoRetry{}
	if p.MaxAttempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", p.MaxAttempts())
	}
	if p.ShouldRetry(1, errTransient) {
		t.Error("NoRetry must never retry")
	}
}

func TestFixedDelay_ConstantDelay(t *testing.T) {
	p := NewFixedDelay(5, 250*time.Millisecond)
	for attempt := 1; attempt <= 5; attempt++ {
		if got := p.Delay(attempt); got != 250*time.Millisecond {
			t.Errorf("attempt %d: expected 250ms, got %v", attempt, got)
		}
	}
}

func TestFixedDelay_ShouldRetry(t *testing.T) {
	p := NewFixedDelay(3, time.Millisecond)

	for attempt := 1; attempt <= 3; attempt++ {
		if !p.ShouldRetry(attempt, errTransient) {
			t.Errorf("expected retry on attempt %d", attempt)
		}
	}
	if p.ShouldRetry(4, errTransient) {
		t.Error("attempt 4 is the last of the budget, no retry")
	}
}

func TestRetryBudgetIncludesFirstAttempt(t *testing.T) {
	tests := []struct {
		name   string
		policy RetryPolicy
		want   int
	}{
		{"fixed 3 retries", NewFixedDelay(3, time.Millisecond), 4},
		{"backoff 3 retries", NewExponentialBackoff(3, time.Millisecond, time.Second), 4},
		{"fixed zero retries", NewFixedDelay(0, time.Millisecond), 1},
		{"backoff zero retries", NewExponentialBackoff(0, time.Millisecond, time.Second), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.MaxAttempts(); got != tt.want {
				t.Errorf("MaxAttempts() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFixedDelay_RetryIfShortCircuits(t *testing.T) {
	permanent := errors.New("permanent")
	p := NewFixedDelay(10, time.Millisecond)
	p.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	// A non-eligible error stops immediately regardless of remaining budget.
	if p.ShouldRetry(1, permanent) {
		t.Error("expected no retry for a non-eligible error")
	}
	if !p.ShouldRetry(1, errTransient) {
		t.Error("expected retry for an eligible error")
	}
}

func TestExponentialBackoff_DelayGrowthAndCap(t *testing.T) {
	p := NewExponentialBackoff(6, time.Second, 10*time.Second)

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second, // capped
	}
	var prev time.Duration
	for i, w := range want {
		attempt := i + 1
		got := p.Delay(attempt)
		if got != w {
			t.Errorf("attempt %d: expected %v, got %v", attempt, w, got)
		}
		if got < prev {
			t.Errorf("attempt %d: delay decreased from %v to %v", attempt, prev, got)
		}
		prev = got
	}
}

func TestExponentialBackoff_JitterNeverExceedsMax(t *testing.T) {
	p := NewExponentialBackoff(8, time.Second, 5*time.Second)
	p.Jitter = 0.5

	for attempt := 1; attempt <= 8; attempt++ {
		for i := 0; i < 100; i++ {
			if got := p.Delay(attempt); got > 5*time.Second {
				t.Fatalf("attempt %d: delay %v exceeds max", attempt, got)
			}
		}
	}
}

func TestExecute_SucceedsAfterRetries(t *testing.T) {
	p := NewFixedDelay(5, time.Millisecond)

	calls := 0
	result, err := Execute(context.Background(), p, func(attempt int) (string, error) {
		calls++
		if attempt != calls {
			t.Errorf("expected attempt %d, got %d", calls, attempt)
		}
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %q", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestExecute_StopsOnNonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	p := NewFixedDelay(5, time.Millisecond)
	p.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := Execute(context.Background(), p, func(int) (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls)
	}
}

func TestExecute_ExhaustsBudget(t *testing.T) {
	p := NewFixedDelay(3, time.Millisecond)

	calls := 0
	_, err := Execute(context.Background(), p, func(int) (int, error) {
		calls++
		return 0, errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected last error surfaced, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 attempts (first plus 3 retries), got %d", calls)
	}
}

func TestExecute_CancelDuringDelay(t *testing.T) {
	p := NewFixedDelay(3, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Execute(ctx, p, func(int) (int, error) {
			calls++
			return 0, errTransient
		})
		done <- err
	}()

	// Let the first attempt fail, then cancel while the loop is sleeping.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("cancellation during delay must prevent the next attempt, got %d calls", calls)
	}
}

func TestExecuteNotify_ReportsDelays(t *testing.T) {
	p := NewExponentialBackoff(3, time.Millisecond, time.Second)

	var delays []time.Duration
	_, err := ExecuteNotify(context.Background(), p, func(int) (int, error) {
		return 0, errTransient
	}, func(attempt int, err error, delay time.Duration) {
		delays = append(delays, delay)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("expected %d retries, got %d", len(want), len(delays))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("retry %d: expected delay %v, got %v", i+1, want[i], delays[i])
		}
	}
}

func TestExecute_DefensiveBound(t *testing.T) {
	// A policy that always says retry must still hit the exhaustion bound.
	p := &alwaysRetry{attempts: 3}

	calls := 0
	_, err := Execute(context.Background(), p, func(int) (int, error) {
		calls++
		return 0, errTransient
	})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

type alwaysRetry struct{ attempts int }

func (p *alwaysRetry) MaxAttempts() int { return p.attempts }

func (p *alwaysRetry) ShouldRetry(int, error) bool { return true }

func (p *alwaysRetry) Delay(int) time.Duration { return 0 }
