package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrTransport marks a failure before any HTTP status existed: the
	// remote store was unreachable, the connection dropped, or the
	// request timed out.
	ErrTransport = errors.New("record store unreachable")

	// ErrValidationFailed is raised client-side before a request is
	// issued (required field missing, uncoercible numeric input).
	ErrValidationFailed = errors.New("validation failed")

	// ErrResourceNotFound covers both an unknown resource kind and a
	// record the remote store reports as gone.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnknownKind is returned for a resource kind key outside the
	// configured catalog.
	ErrUnknownKind = errors.New("unknown resource kind")
)

// APIError carries the HTTP status of a non-success response from the
// remote record store. No structured error body is parsed; the status
// code is all the contract provides.
type APIError struct {
	Status int
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("record store API error: status %d", e.Status)
}

// NewAPIError creates an APIError for the given HTTP status
func NewAPIError(status int) *APIError {
	return &APIError{Status: status}
}

// IsNotFound reports whether err is a remote 404 or a local not-found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 404
	}
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrUnknownKind)
}

// NewTransportError wraps an underlying network error in the transport
// sentinel so callers can match with errors.Is.
func NewTransportError(err error) error {
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// NewValidationError creates a validation error naming the failing field.
func NewValidationError(field, reason string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf("%s: %s", field, reason),
		Field:   field,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}
