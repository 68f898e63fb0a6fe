// Package apperr defines the error taxonomy shared by services and the HTTP
// boundary. Services return *Error values (possibly wrapped with op context);
// the transport layer maps the Kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindUnauthenticated covers a missing, malformed or expired token and bad login credentials.
	KindUnauthenticated Kind = "unauthenticated"

	// KindNotFound covers an unknown id, slug or referenced program.
	KindNotFound Kind = "not_found"

	// KindConflict covers a uniqueness violation.
	KindConflict Kind = "conflict"

	// KindValidation covers a malformed payload.
	KindValidation Kind = "validation"

	// KindInternal is anything unexpected.
	KindInternal Kind = "internal"
)

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

// Is matches another *Error by kind and message, so sentinel values declared
// with New can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func Validation(msg string) *Error      { return New(KindValidation, msg) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of the first *Error in err's
// chain. Internal errors never leak their text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
