package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeCancelled indicates the caller cancelled the request.
	ErrCodeCancelled
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates the request was rejected as invalid (other 4xx,
	// or a client-side validation failure before any network call).
	ErrCodeValidation
	// ErrCodeDecode indicates the response body could not be decoded as JSON.
	ErrCodeDecode
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCancelled:
		return "cancelled"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeDecode:
		return "decode"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport-level errors).
	StatusCode int
	// Status is the HTTP status text ("" for transport-level errors).
	Status string
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error. For status failures whose body carried a
	// structured error, this is the server's message.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewCancelledError creates a cancellation error.
func NewCancelledError(err error) *Error {
	return &Error{
		Code:      ErrCodeCancelled,
		Message:   err.Error(),
		Retryable: false,
		Err:       err,
	}
}

// NewRateLimitError creates a client-side rate limit error: the local
// limiter rejected the request before any network call was made.
func NewRateLimitError(err error) *Error {
	return &Error{
		Code:      ErrCodeRateLimit,
		Message:   err.Error(),
		Retryable: false,
		Err:       err,
	}
}

// NewValidationError creates a client-side validation error. No network
// call was made.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   msg,
		Retryable: false,
	}
}

// NewDecodeError creates a decode error. Retrying will not fix a
// structurally broken response.
func NewDecodeError(err error, body []byte) *Error {
	return &Error{
		Code:      ErrCodeDecode,
		Message:   err.Error(),
		Retryable: false,
		Body:      body,
		Err:       err,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
//
// All 4xx codes are non-retryable, including 429: the retry budget is not
// spent on requests the server has already rejected. 5xx codes are
// retryable.
func ClassifyStatusCode(statusCode int, status string, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	e := &Error{
		StatusCode: statusCode,
		Status:     status,
		Message:    statusMessage(statusCode, body),
		Body:       body,
	}

	switch {
	case statusCode == 401 || statusCode == 403:
		e.Code = ErrCodeAuth
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code = ErrCodeRateLimit
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	case statusCode >= 500:
		e.Code = ErrCodeServer
		e.Retryable = true
	default:
		e.Code = ErrCodeServer
	}

	return e
}

// statusMessage extracts a human-readable message from an error body,
// falling back to the HTTP status line.
func statusMessage(statusCode int, body []byte) string {
	if msg := errorMessage(body); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// errorMessage pulls a structured message out of a JSON error body.
// Recognized shapes: {"error": {"message": "..."}}, {"message": "..."},
// and {"error": "..."}.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil {
			return plain
		}
	}
	return ""
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRateLimit checks if an error is a rate limit error, either a 429 from
// the server or a rejection by the client-side limiter.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsDecode checks if an error is a decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDecode
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsRetryable checks if an error is retryable: transport failures and 5xx
// status failures are, everything else is not.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status code carried by an error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
