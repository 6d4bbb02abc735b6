package httpclient

import (
	"net/url"
	"strings"
	"time"
)

// Param is a single query parameter. Parameters are kept as an ordered list
// so the encoded query string preserves insertion order.
type Param struct {
	Key   string
	Value string
}

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if
	// BaseURL is empty.
	Path string
	// Headers are request-specific headers (merged over client defaults).
	Headers map[string]string
	// Query are URL query parameters, encoded in insertion order.
	Query []Param
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
	// Timeout overrides the client-level timeout for this request.
	Timeout time.Duration
}

// AddQuery appends a query parameter, preserving insertion order.
func (r *Request) AddQuery(key, value string) {
	r.Query = append(r.Query, Param{Key: key, Value: value})
}

// SetHeader sets a request header.
func (r *Request) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
}

// encodeQuery renders query parameters in insertion order.
func encodeQuery(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Response is the result of an HTTP request. It is never mutated after the
// transport constructs it, except that the orchestrator fills Data with the
// transformed decoded body exactly once.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the HTTP status text.
	Status string
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
	// Data is the decoded JSON body, nil when the response did not carry
	// JSON. After a successful Do it has been run through the client's
	// response transformer.
	Data any
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.Headers["Content-Type"]), "application/json")
}
