package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can map it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindConflict
	KindForbidden
	KindNotFound
	KindUnauthenticated
)

// Error carries a caller-safe message plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause. The message is what callers see; the cause is what
// the 500 envelope exposes.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Invalid(message string) *Error         { return New(KindInvalid, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }
func Internal(err error) *Error             { return Wrap(KindInternal, "Server error", err) }

// KindOf reports the Kind of err, defaulting to KindInternal for anything
// that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to the HTTP status code of its Kind.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalid, KindConflict:
		return 400
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindUnauthenticated:
		return 401
	default:
		return 500
	}
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server error"
}
