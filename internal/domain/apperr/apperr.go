// internal/domain/apperr/apperr.go
package apperr

import (
	"errors"
	"net/http"
)

// Kind is a closed, machine-readable classification of operation failures.
// Callers branch on Kind, never on concrete error types.
type Kind string

const (
	Unauthenticated    Kind = "unauthenticated"
	InvalidArgument    Kind = "invalid-argument"
	FailedPrecondition Kind = "failed-precondition"
	PermissionDenied   Kind = "permission-denied"
	AlreadyExists      Kind = "already-exists"
	Internal           Kind = "internal"
	Unknown            Kind = "unknown"
)

// Error carries a Kind plus a caller-safe message. The wrapped cause is kept
// for diagnostics (logs) and is never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// E builds a leaf error with a kind and caller-safe message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and caller-safe message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind of err. Errors that never got classified
// collapse to Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return Unknown
}

// PublicMessage returns the caller-safe message of err, or a generic one
// for unclassified errors.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e != nil && e.Message != "" {
		return e.Message
	}
	return "an unknown error occurred"
}

// HTTPStatus maps a Kind to an HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case AlreadyExists:
		return http.StatusConflict
	case FailedPrecondition:
		return http.StatusPreconditionFailed
	case Internal, Unknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
