// Package transport carries request bodies to the Customers Mail Cloud API
// and classifies what comes back. It knows nothing about resources or
// records; callers decide how to interpret a Response.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Poster sends a request body to a URL with POST.
//
// A 2xx answer returns the Response and a nil error. A 4xx or 5xx answer
// returns the Response together with a *StatusError so the caller can
// still inspect the body. A failure that produced no answer returns a
// *NetworkError and a nil Response.
type Poster interface {
	Post(ctx context.Context, url string, body Body) (*Response, error)
}

// Body is a request payload.
type Body interface {
	// Encode returns the Content-Type header value and the payload.
	Encode() (contentType string, payload io.Reader, err error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusError reports a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

// maxErrorBody bounds how much of a response body goes into an error message.
const maxErrorBody = 120

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s resulted in a %s response", e.Method, e.URL, e.Status)
	if len(e.Body) == 0 {
		return msg
	}
	body := e.Body
	if len(body) > maxErrorBody {
		return fmt.Sprintf("%s: %s (truncated...)", msg, body[:maxErrorBody])
	}
	return fmt.Sprintf("%s: %s", msg, body)
}

// IsClient reports whether the status is in the 4xx range.
func (e *StatusError) IsClient() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServer reports whether the status is in the 5xx range.
func (e *StatusError) IsServer() bool {
	return e.StatusCode >= 500
}

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
