package mailcloud

import (
	"errors"

	"github.com/lattiq/mailcloud/internal/core"
)

// Predefined sentinel errors for common cases.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("client closed")

	// ErrRateLimited indicates the client-side rate limiter refused to wait.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidConfiguration indicates invalid configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingCredentials indicates an empty API user or key.
	ErrMissingCredentials = core.ErrMissingCredentials

	// ErrUnexpectedResponse indicates a response body that could not be interpreted.
	ErrUnexpectedResponse = core.ErrUnexpectedResponse

	// ErrClientError matches a 4xx response without an errors body.
	ErrClientError = core.ErrClientError

	// ErrServerError matches a 5xx response without an errors body.
	ErrServerError = core.ErrServerError

	// ErrNetworkError matches a request that produced no response.
	ErrNetworkError = core.ErrNetworkError
)

// Error types returned by the client.
type (
	MailCloudError     = core.MailCloudError
	ValidationError    = core.ValidationError
	APIError           = core.APIError
	ErrorEntry         = core.ErrorEntry
	TransportError     = core.TransportError
	TransportErrorKind = core.TransportErrorKind
	UnknownFieldError  = core.UnknownFieldError
	FieldValueError    = core.FieldValueError
	AttachmentError    = core.AttachmentError
)

// Transport error kinds.
const (
	TransportNetwork = core.TransportNetwork
	TransportClient  = core.TransportClient
	TransportServer  = core.TransportServer
)

// NewValidationError creates a new validation error.
var NewValidationError = core.NewValidationError

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsValidationError reports whether err was raised before any request was sent.
func IsValidationError(err error) bool {
	return errors.Is(err, &ValidationError{})
}
