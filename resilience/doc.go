// Package resilience provides patterns for calling unreliable services:
// pluggable retry policies, a token bucket rate limiter, and a circuit
// breaker.
//
// Retry policies are strategy objects implementing RetryPolicy. The
// generic Execute loop drives them:
//
//	policy := resilience.NewExponentialBackoff(3, time.Second, 10*time.Second)
//	result, err := resilience.Execute(ctx, policy, func(attempt int) (T, error) {
//	    return callService(ctx)
//	})
package resilience
