package partsapi

import (
	"time"

	"github.com/partsearch/partsearch/httpclient"
)

const (
	defaultTimeout       = 5 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
	defaultMaxRetryDelay = 10 * time.Second
)

// ClientConfig assembles a parts client from plain settings. Zero-value
// fields fall back to defaults: 5s timeout, 3 retries, 1s base delay.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://api.partsearch.io".
	BaseURL string
	// APIKey, when set, is sent via the X-API-Key header.
	APIKey string
	// Token, when set, is sent as a bearer token. Takes precedence over
	// APIKey.
	Token string
	// Timeout bounds each request.
	Timeout time.Duration
	// RetryAttempts is the number of retries after the first call, so the
	// default of 3 allows 4 attempts in total.
	RetryAttempts int
	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

func (c *ClientConfig) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
}

func (c ClientConfig) auth() *httpclient.AuthConfig {
	switch {
	case c.Token != "":
		return httpclient.BearerAuth(c.Token)
	case c.APIKey != "":
		return httpclient.APIKeyAuth(c.APIKey)
	default:
		return httpclient.NoAuth()
	}
}

// New builds a parts client from the configuration: exponential backoff
// retries and the date-field transformer are wired in.
func New(cfg ClientConfig) (*Client, error) {
	cfg.applyDefaults()

	inner, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Auth:      cfg.auth(),
		Retry:     httpclient.BackoffRetryPolicy(cfg.RetryAttempts, cfg.RetryDelay, defaultMaxRetryDelay),
		Transform: httpclient.NewDateFieldTransformer(),
	})
	if err != nil {
		return nil, err
	}
	return NewClient(inner), nil
}

// Option tweaks a preset configuration.
type Option func(*ClientConfig)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *ClientConfig) { c.APIKey = key }
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *ClientConfig) { c.Token = token }
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *ClientConfig) { c.Timeout = timeout }
}

// WithRetry overrides the retry count and base delay.
func WithRetry(retries int, delay time.Duration) Option {
	return func(c *ClientConfig) {
		c.RetryAttempts = retries
		c.RetryDelay = delay
	}
}

// NewDevelopment creates a client preset for local development: localhost
// base URL, generous timeout, a single retry.
func NewDevelopment(opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		BaseURL:       "http://localhost:8080",
		Timeout:       30 * time.Second,
		RetryAttempts: 1,
	}
	return newPreset(cfg, opts...)
}

// NewStaging creates a client preset for the staging environment.
func NewStaging(opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		BaseURL:       "https://staging-api.partsearch.io",
		Timeout:       10 * time.Second,
		RetryAttempts: 3,
	}
	return newPreset(cfg, opts...)
}

// NewProduction creates a client preset for production: tight timeout,
// full retry budget.
func NewProduction(opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		BaseURL:       "https://api.partsearch.io",
		Timeout:       5 * time.Second,
		RetryAttempts: 3,
	}
	return newPreset(cfg, opts...)
}

func newPreset(cfg ClientConfig, opts ...Option) (*Client, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

// NewWithTransport creates a client over a custom transport, bypassing the
// network. Intended for tests and in-process wiring.
func NewWithTransport(transport httpclient.Transport, opts ...Option) (*Client, error) {
	cfg := ClientConfig{
		BaseURL:       "http://mock.local",
		RetryAttempts: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()

	inner, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Auth:      cfg.auth(),
		Retry:     httpclient.BackoffRetryPolicy(cfg.RetryAttempts, cfg.RetryDelay, defaultMaxRetryDelay),
		Transform: httpclient.NewDateFieldTransformer(),
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}
	return NewClient(inner), nil
}
