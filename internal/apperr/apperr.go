// Package apperr defines the backoffice error taxonomy.
//
// Every failure a handler can surface is classified into one Kind, so the
// HTTP layer renders errors from a single mapping instead of ad-hoc status
// picking in each controller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error.
type Kind string

const (
	// Configuration marks a fatal deployment problem (e.g. missing
	// identity-provider client secret). Not user-actionable.
	Configuration Kind = "configuration"

	// InvalidCredentials marks a rejected login.
	InvalidCredentials Kind = "invalid_credentials"

	// Forbidden marks a capability denial.
	Forbidden Kind = "forbidden"

	// InvalidTransition marks an order status rule violation.
	InvalidTransition Kind = "invalid_transition"

	// NotFound passes through an upstream 404.
	NotFound Kind = "not_found"

	// Validation marks bad input, caught locally or upstream.
	Validation Kind = "validation"

	// RequestFailed is the generic bucket for upstream/network failures.
	RequestFailed Kind = "request_failed"
)

// Error is the concrete error type carried through the call stack.
type Error struct {
	Kind    Kind
	Message string
	// Status overrides the kind's default HTTP status when non-zero,
	// e.g. to forward the identity provider's own status code.
	Status int
	// Fields holds field-level messages for Validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithStatus sets the HTTP status to forward and returns e.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// WithFields attaches field-level validation messages and returns e.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

// KindOf returns the Kind of err, or RequestFailed for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return RequestFailed
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Request failed"
}

// FieldErrors returns field-level messages when err is a Validation error.
func FieldErrors(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

// HTTPStatus maps err to the status code the backoffice surfaces.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusBadGateway
	}
	if ae.Status != 0 {
		return ae.Status
	}
	switch ae.Kind {
	case Configuration:
		return http.StatusInternalServerError
	case InvalidCredentials:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case InvalidTransition:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
