package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		entries  []ErrorEntry
		expected string
	}{
		{
			name: "two entries",
			entries: []ErrorEntry{
				{Code: "10-001", Field: "subject", Message: "Subject is required"},
				{Code: "10-002", Field: "text", Message: "Text content is required"},
			},
			expected: "[10-001] Subject is required (field: subject); [10-002] Text content is required (field: text)",
		},
		{
			name:     "no entries",
			entries:  nil,
			expected: "Unknown API error occurred",
		},
		{
			name:     "empty message",
			entries:  []ErrorEntry{{Code: "99-999"}},
			expected: "[99-999] Unknown error",
		},
		{
			name:     "message only",
			entries:  []ErrorEntry{{Message: "Invalid api_key"}},
			expected: "Invalid api_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{Errors: tt.entries}
			if got := err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Codes(t *testing.T) {
	err := &APIError{Errors: []ErrorEntry{
		{Code: "01-004", Field: "from", Message: "DKIM signature required"},
		{Field: "to", Message: "no code"},
		{Code: "10-002", Field: "text"},
	}}

	if err.Code() != "01-004" {
		t.Errorf("Code() = %q, want 01-004", err.Code())
	}
	if err.Field() != "from" {
		t.Errorf("Field() = %q, want from", err.Field())
	}
	codes := err.Codes()
	if len(codes) != 2 || codes[0] != "01-004" || codes[1] != "10-002" {
		t.Errorf("Codes() = %v", codes)
	}
	if !err.HasCode("10-002") {
		t.Error("HasCode(10-002) = false, want true")
	}
	if err.HasCode("00-000") {
		t.Error("HasCode(00-000) = true, want false")
	}

	empty := &APIError{}
	if empty.Code() != "" || empty.Field() != "" {
		t.Error("empty APIError should report no code and field")
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *TransportError
		expected string
		sentinel error
	}{
		{
			name:     "client",
			err:      &TransportError{Kind: TransportClient, StatusCode: 404, Err: cause},
			expected: "Client error: boom",
			sentinel: ErrClientError,
		},
		{
			name:     "server",
			err:      &TransportError{Kind: TransportServer, StatusCode: 502, Err: cause},
			expected: "Server error: boom",
			sentinel: ErrServerError,
		},
		{
			name:     "network",
			err:      &TransportError{Kind: TransportNetwork, Op: "get bounces", Err: cause},
			expected: "Failed to get bounces: boom",
			sentinel: ErrNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
			wrapped := fmt.Errorf("wrapped: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
			if !errors.Is(wrapped, cause) {
				t.Error("cause not reachable through Unwrap")
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", RequiredError("server_composition"))
	if !errors.Is(err, &ValidationError{}) {
		t.Error("errors.Is(ValidationError) = false")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As failed")
	}
	if ve.Field != "server_composition" {
		t.Errorf("Field = %q", ve.Field)
	}
	if ve.Error() != "server_composition parameter is required" {
		t.Errorf("Error() = %q", ve.Error())
	}
}

func TestMarkerInterface(t *testing.T) {
	errs := []error{
		&ValidationError{},
		&APIError{},
		&TransportError{},
		&UnknownFieldError{},
		&FieldValueError{},
		&AttachmentError{},
	}
	for _, err := range errs {
		if _, ok := err.(MailCloudError); !ok {
			t.Errorf("%T does not implement MailCloudError", err)
		}
	}
}

func TestCredentials(t *testing.T) {
	if _, err := NewCredentials("", "key"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("empty user: err = %v", err)
	}
	if _, err := NewCredentials("user", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("empty key: err = %v", err)
	}

	creds, err := NewCredentials("user", "secret")
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	if creds.User() != "user" || creds.Key() != "secret" {
		t.Errorf("creds = %s/%s", creds.User(), creds.Key())
	}
	if s := creds.String(); s != "user:****" {
		t.Errorf("String() = %q leaks or misformats the key", s)
	}
}
