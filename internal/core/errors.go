package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingCredentials indicates the API user or key is empty.
	ErrMissingCredentials = errors.New("api_user and api_key are required")

	// ErrUnexpectedResponse indicates a successful response whose body
	// could not be interpreted.
	ErrUnexpectedResponse = errors.New("unexpected API response format")

	// ErrClientError matches transport failures caused by a 4xx status.
	ErrClientError = errors.New("client error")

	// ErrServerError matches transport failures caused by a 5xx status.
	ErrServerError = errors.New("server error")

	// ErrNetworkError matches transport failures that produced no response.
	ErrNetworkError = errors.New("request failed")
)

// MailCloudError is implemented by every error type returned by the SDK.
type MailCloudError interface {
	error
	MailCloudError() // marker method
}

// ValidationError reports bad input detected before any request is built.
type ValidationError struct {
	// Field is the parameter that failed validation.
	Field string

	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// MailCloudError implements the MailCloudError interface.
func (e *ValidationError) MailCloudError() {}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RequiredError reports a missing required parameter.
func RequiredError(field string) *ValidationError {
	return NewValidationError(field, field+" parameter is required")
}

// ErrorEntry is one element of the API's "errors" array.
type ErrorEntry struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the entry as "[code] message (field: field)".
func (e ErrorEntry) String() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	if e.Code != "" {
		msg = "[" + e.Code + "] " + msg
	}
	if e.Field != "" {
		msg += " (field: " + e.Field + ")"
	}
	return msg
}

// APIError is returned when the API responds with a non-empty errors array.
type APIError struct {
	// Errors holds every entry reported by the API, in order.
	Errors []ErrorEntry

	// RawResponse is the decoded response body.
	RawResponse map[string]any

	// StatusCode is the HTTP status the errors arrived with.
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return "Unknown API error occurred"
	}
	msgs := make([]string, len(e.Errors))
	for i, entry := range e.Errors {
		msgs[i] = entry.String()
	}
	return strings.Join(msgs, "; ")
}

// MailCloudError implements the MailCloudError interface.
func (e *APIError) MailCloudError() {}

// Code returns the code of the first error entry.
func (e *APIError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// Field returns the field of the first error entry.
func (e *APIError) Field() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Field
}

// Codes returns every non-empty error code.
func (e *APIError) Codes() []string {
	var codes []string
	for _, entry := range e.Errors {
		if entry.Code != "" {
			codes = append(codes, entry.Code)
		}
	}
	return codes
}

// HasCode reports whether any entry carries the given code.
func (e *APIError) HasCode(code string) bool {
	for _, c := range e.Codes() {
		if c == code {
			return true
		}
	}
	return false
}

// TransportErrorKind classifies a transport failure.
type TransportErrorKind int

const (
	// TransportNetwork is a failure with no HTTP response (DNS, TLS, timeout).
	TransportNetwork TransportErrorKind = iota

	// TransportClient is a 4xx response without a parseable errors body.
	TransportClient

	// TransportServer is a 5xx response.
	TransportServer
)

// String returns the string representation of the kind.
func (k TransportErrorKind) String() string {
	switch k {
	case TransportClient:
		return "client"
	case TransportServer:
		return "server"
	default:
		return "network"
	}
}

// TransportError represents a failure below the API contract.
type TransportError struct {
	// Kind classifies the failure.
	Kind TransportErrorKind

	// StatusCode is the HTTP status, or 0 for network failures.
	StatusCode int

	// Op names the operation, e.g. "get bounces".
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportClient:
		return fmt.Sprintf("Client error: %v", e.Err)
	case TransportServer:
		return fmt.Sprintf("Server error: %v", e.Err)
	default:
		return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	switch e.Kind {
	case TransportClient:
		return target == ErrClientError
	case TransportServer:
		return target == ErrServerError
	default:
		return target == ErrNetworkError
	}
}

// MailCloudError implements the MailCloudError interface.
func (e *TransportError) MailCloudError() {}

// UnknownFieldError signals a response field missing from a record's
// field table.
type UnknownFieldError struct {
	Field  string
	Record string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("Invalid property: %s in %s", e.Field, e.Record)
}

// MailCloudError implements the MailCloudError interface.
func (e *UnknownFieldError) MailCloudError() {}

// FieldValueError reports a known field whose value has the wrong type.
type FieldValueError struct {
	Field  string
	Record string
	Value  any
}

// Error implements the error interface.
func (e *FieldValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %s in %s", e.Value, e.Field, e.Record)
}

// MailCloudError implements the MailCloudError interface.
func (e *FieldValueError) MailCloudError() {}

// AttachmentError reports an attachment that could not be streamed.
type AttachmentError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *AttachmentError) Unwrap() error {
	return e.Err
}

// MailCloudError implements the MailCloudError interface.
func (e *AttachmentError) MailCloudError() {}
