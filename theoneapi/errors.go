package theoneapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNoMorePages indicates NextPage was called on the last page
	ErrNoMorePages = errors.New("no more pages")
)

// Kind classifies a failed call
type Kind int

const (
	// KindTransport is a network level failure (DNS, refused connection, cancelled context)
	KindTransport Kind = iota + 1
	// KindAPI is a non-2xx response carrying an upstream message
	KindAPI
	// KindMalformedError is a non-2xx response whose body is not an ErrorResponse
	KindMalformedError
	// KindDecode is a 2xx response whose body does not match the expected shape
	KindDecode
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindMalformedError:
		return "malformed_error"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error represents a failed API call
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Body       string
	Err        error
}

// Error implements the error interface. API failures read exactly as the
// upstream message and transport failures as the underlying error.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return e.Message
	case KindTransport:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "transport failure"
	case KindMalformedError:
		return fmt.Sprintf("malformed error response: status %d", e.StatusCode)
	case KindDecode:
		if e.Err != nil {
			return fmt.Sprintf("decode response: %v", e.Err)
		}
		return "decode response"
	default:
		return fmt.Sprintf("the one api error: status %d", e.StatusCode)
	}
}

// Unwrap returns the underlying error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Temporary reports whether repeating the call could succeed. The client
// never retries on its own.
func (e *Error) Temporary() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindAPI, KindMalformedError:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// KindOf returns the Kind of err if it is, or wraps, an *Error
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}
