package httpclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/partsearch/partsearch/logger"
	"github.com/partsearch/partsearch/resilience"
)

// Client orchestrates one logical operation per Do call: it applies the
// authentication strategy, invokes the transport, and loops attempts under
// the retry policy until success, a non-retryable failure, or exhaustion.
// A Client is safe for concurrent use; each call owns its own request and
// response descriptors.
type Client struct {
	config    Config
	transport Transport
	cb        *resilience.CircuitBreaker
	rl        *resilience.RateLimiter
	tracer    trace.Tracer
	log       *logger.Logger
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport()
	}

	c := &Client{
		config:    cfg,
		transport: transport,
		tracer:    otel.Tracer("httpclient"),
		log:       logger.WithComponent("httpclient"),
	}

	if cfg.CircuitBreaker != nil {
		c.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	return c, nil
}

// Do executes an HTTP request and returns the complete response with its
// decoded body transformed. On failure the returned error is a typed
// *Error; the response is nil.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	c.prepare(&req)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.Path),
		))
	defer span.End()

	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			typed := classifyWaitError(err)
			span.SetStatus(codes.Error, typed.Error())
			return nil, typed
		}
	}

	resp, err := resilience.ExecuteNotify(ctx, c.config.Retry, func(int) (*Response, error) {
		return c.doOnce(ctx, req)
	}, func(attempt int, attemptErr error, delay time.Duration) {
		c.log.Warn("retrying request", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, req.Path,
			logger.FieldAttempt, attempt,
			"delay", delay.String(),
			logger.FieldError, attemptErr.Error(),
		))
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	// Transform exactly once, on the final successful response.
	if resp.Data != nil {
		resp.Data = c.config.Transform.Transform(resp.Data)
	}

	return resp, nil
}

// classifyWaitError folds a rate limiter rejection into the error taxonomy
// so callers see a typed *Error from every Do failure path.
func classifyWaitError(err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	case errors.Is(err, context.Canceled):
		return NewCancelledError(err)
	default:
		return NewRateLimitError(err)
	}
}

// prepare resolves the URL against the base URL and fills in client-level
// defaults the transport and auth strategy rely on.
func (c *Client) prepare(req *Request) {
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		req.Path = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}
	if req.Timeout <= 0 {
		req.Timeout = c.config.Timeout
	}

	headers := make(map[string]string, len(c.config.Headers)+len(req.Headers)+1)
	headers["Accept"] = "application/json"
	for k, v := range c.config.Headers {
		headers[k] = v
	}
	for k, v := range req.Headers {
		headers[k] = v
	}
	req.Headers = headers
}

// doOnce runs a single attempt: a fresh descriptor is decorated by the
// auth strategy and handed to the transport, and the status code is
// classified into the error taxonomy.
func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	attempt := req
	attempt.Headers = make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		attempt.Headers[k] = v
	}
	attempt.Query = append([]Param(nil), req.Query...)

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(&attempt)

	execute := func() (*Response, error) {
		resp, err := c.transport.RoundTrip(ctx, &attempt)
		if err != nil {
			return nil, err
		}
		if statusErr := ClassifyStatusCode(resp.StatusCode, resp.Status, resp.Body); statusErr != nil {
			return nil, statusErr
		}
		return resp, nil
	}

	if c.cb != nil {
		var resp *Response
		err := c.cb.Execute(func() error {
			var execErr error
			resp, execErr = execute()
			return execErr
		})
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	return execute()
}

// Transport returns the underlying transport for advanced use cases.
func (c *Client) Transport() Transport {
	return c.transport
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}
