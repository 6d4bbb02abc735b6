package httpclient

import (
	"fmt"
	"net/url"
	"time"

	"github.com/partsearch/partsearch/resilience"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultRetryCount = 3
	defaultRetryDelay = time.Second
	defaultMaxDelay   = 10 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 5s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this. Nil means no authentication.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Retry is the retry policy. Nil means no retry (single attempt).
	Retry resilience.RetryPolicy `yaml:"-" mapstructure:"-"`

	// Transform post-processes decoded response bodies. Nil means identity.
	Transform Transformer `yaml:"-" mapstructure:"-"`

	// Transport performs the network call. Nil means net/http.
	Transport Transport `yaml:"-" mapstructure:"-"`

	// RateLimiter configures client-side rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker configures circuit breaking. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retry == nil {
		c.Retry = resilience.NoRetry{}
	}
	if c.Transform == nil {
		c.Transform = IdentityTransformer{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("httpclient: base URL %q is not an absolute URL", c.BaseURL)
		}
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultRetryPolicy returns an exponential backoff policy suitable for
// HTTP clients: 3 retries after the first attempt, 1s base delay, 10s cap,
// retrying only transport failures and 5xx status failures.
func DefaultRetryPolicy() resilience.RetryPolicy {
	p := resilience.NewExponentialBackoff(defaultRetryCount, defaultRetryDelay, defaultMaxDelay)
	p.RetryIf = IsRetryable
	return p
}

// BackoffRetryPolicy returns an exponential backoff policy with the given
// retry count and the HTTP retryability rule.
func BackoffRetryPolicy(retries int, baseDelay, maxDelay time.Duration) resilience.RetryPolicy {
	p := resilience.NewExponentialBackoff(retries, baseDelay, maxDelay)
	p.RetryIf = IsRetryable
	return p
}

// FixedRetryPolicy returns a constant-delay policy with the given retry
// count and the HTTP retryability rule.
func FixedRetryPolicy(retries int, interval time.Duration) resilience.RetryPolicy {
	p := resilience.NewFixedDelay(retries, interval)
	p.RetryIf = IsRetryable
	return p
}
