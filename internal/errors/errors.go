package errors

import (
	"errors"
	"fmt"
)

// This package defines a centralized set of sentinel errors for the application.
// Services return (or wrap) these so the API layer can map them to HTTP
// responses with `errors.Is()` without the services knowing about status codes.

var (
	// ErrValidation signifies that input data provided by a client failed
	// validation (missing or empty required fields).
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfigured signifies that a provider's endpoint or credentials are
	// absent. It is never surfaced to end users as an error; the chat flow
	// degrades instead.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrUpstream signifies that an external provider returned a non-success
	// status (or could not be reached) after all retries.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrUpstream = errors.New("upstream provider error")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)

// UpstreamError carries the provider's status code and a redacted copy of
// its response body. It unwraps to ErrUpstream.
type UpstreamError struct {
	Status int
	Detail any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrUpstream.Error(), e.Status)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
