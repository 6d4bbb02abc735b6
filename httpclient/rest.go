package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.SetHeader(key, value)
	}
}

// WithQuery adds a query parameter to the request. Parameters keep their
// insertion order in the encoded URL.
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		r.AddQuery(key, value)
	}
}

// WithRequestAuth overrides authentication for the request.
func WithRequestAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) {
		r.Auth = auth
	}
}

// WithTimeout overrides the client timeout for the request.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = timeout
	}
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request. Success is signaled by the status code
// alone; an empty body is not decoded.
func Delete(c *Client, ctx context.Context, path string, opts ...RequestOption) error {
	req := Request{Method: http.MethodDelete, Path: path}
	for _, opt := range opts {
		opt(&req)
	}
	_, err := c.Do(ctx, req)
	return err
}

// doTyped executes a typed REST request and decodes the transformed
// response body into T, so the configured transformer's output is what the
// typed result reflects.
func doTyped[T any](c *Client, ctx context.Context, method, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	req := Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		if err != nil {
			return nil, NewDecodeError(err, resp.Body)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, NewDecodeError(err, resp.Body)
		}
	} else if len(resp.Body) > 0 && !resp.IsJSON() {
		return nil, NewDecodeError(
			errUnexpectedContentType(resp.Headers["Content-Type"]), resp.Body)
	}

	return &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Data:       data,
	}, nil
}

type contentTypeError string

func (e contentTypeError) Error() string {
	return "expected application/json response, got " + string(e)
}

func errUnexpectedContentType(ct string) error {
	if ct == "" {
		ct = "no content type"
	}
	return contentTypeError(ct)
}
