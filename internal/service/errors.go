package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("validation")

	// ErrConflict is returned when the requested slot is already held by an active booking.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned for an unknown booking id, coupon id or coupon code.
	ErrNotFound = errors.New("not_found")

	// ErrInvalidState is returned when the current status forbids the operation.
	ErrInvalidState = errors.New("invalid_state")

	// ErrExhausted is returned when a coupon has reached its usage ceiling.
	ErrExhausted = errors.New("exhausted")

	// ErrStore is returned when the record store fails to read or write.
	ErrStore = errors.New("store")
)

// Error carries a kind sentinel and a message that can be shown to the caller.
// errors.Is(err, ErrConflict) and friends match on Kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func storeError(op string, err error) *Error {
	return &Error{Kind: ErrStore, Message: op, Err: err}
}

// KindOf returns the kind sentinel of err, or nil when err is not a service error.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrInvalidState, ErrExhausted, ErrStore} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
