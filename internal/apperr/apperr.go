// Package apperr defines the error taxonomy shared by the service layer and
// the HTTP handlers. Errors are wrapped with %w and matched with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound: unknown order, payment, transaction, user or document.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument: missing required filter or empty update payload.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict: uniqueness violation (category slug, user email).
	ErrConflict = errors.New("conflict")
	// ErrPersistence: the store is unavailable or a write failed.
	ErrPersistence = errors.New("persistence failure")
	// ErrResourceExhausted: a bounded key-allocation loop ran out of attempts.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Status maps a service error to an HTTP status code. Unknown errors map to
// 500 like any other unexpected failure.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrResourceExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
