// Package apperr defines the error taxonomy shared by the stores, the HTTP
// backend and the CLI.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindTransport
	KindServer
	KindAuth
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Error is a categorized error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation reports a failed input precondition.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a reference to an id that does not exist.
func NotFound(resource string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %v", resource, id)}
}

// Transport reports a network-level failure (unreachable host, timeout).
func Transport(cause error) *Error {
	return &Error{Kind: KindTransport, Message: "network error", Cause: cause}
}

// Timeout reports an expired request deadline.
func Timeout() *Error {
	return &Error{Kind: KindTransport, Message: "request timed out"}
}

// Server reports a non-2xx response. detail is the server-supplied message
// when one was present in the body; the status text is the fallback.
func Server(status int, detail string) *Error {
	if detail == "" {
		detail = fmt.Sprintf("server error: %s", http.StatusText(status))
	}
	return &Error{Kind: KindServer, Message: detail}
}

// Auth reports a 401, the session-invalidation signal.
func Auth(detail string) *Error {
	if detail == "" {
		detail = "session expired or invalid"
	}
	return &Error{Kind: KindAuth, Message: detail}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsAuth reports whether err is a session-invalidation error.
func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}

// UserMessage returns the message to surface to the user. Foreign errors
// fall back to their Error text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
