// Package apperror holds the error kinds the task workflow reports to callers.
// Anything that is not one of these kinds is an infrastructure failure.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// Error carries a user-facing message and unwraps to its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return newError(ErrBadRequest, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func InvalidState(format string, args ...any) error {
	return newError(ErrInvalidState, format, args...)
}

// KindOf returns the kind of err, or nil for infrastructure errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrBadRequest, ErrForbidden, ErrNotFound, ErrInvalidState} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns the user-facing message of err when it has a kind.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
