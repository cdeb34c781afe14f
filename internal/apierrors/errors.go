// Package apierrors classifies every failure the client core can surface:
// validation failures raised synchronously by the core itself, remote
// failures from the backend, and stale-id lookups. Callers branch on the
// Kind (via errors.As / the Is* helpers) to decide what to show the user.
package apierrors

import (
	"errors"
	"fmt"
)

// Kind partitions errors into the three classes the UI layer cares about.
type Kind int

const (
	// KindValidation is an invariant violation inside the core. It is
	// always rejected synchronously and never partially applied.
	KindValidation Kind = iota
	// KindRemote is a network or service failure. Prior local state is
	// always left intact; the core never retries on its own.
	KindRemote
	// KindNotFound means the record was deleted or moved elsewhere. It is
	// surfaced distinctly so the caller can prompt a refresh.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error carries a classification alongside the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation error with the given message.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Remote wraps a transport or service failure.
func Remote(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindRemote, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFound marks a stale-id failure for the given resource.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is classified as a validation error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsRemote reports whether err is classified as a remote failure.
func IsRemote(err error) bool { return isKind(err, KindRemote) }

// IsNotFound reports whether err is classified as a stale-id failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

func isKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
