package errors

import (
	"errors"
	"fmt"
)

// Application error kinds. Everything past validation collapses into
// ErrDeliveryFailure for the caller; ErrDegradedWrite is only ever logged.

var (
	// ErrInvalidInput indicates a malformed or incomplete submission
	ErrInvalidInput = errors.New("invalid input")

	// ErrMethodNotAllowed indicates a disallowed HTTP verb
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrDegradedWrite indicates the storage webhook was unreachable or rejected the write
	ErrDegradedWrite = errors.New("degraded write")

	// ErrDeliveryFailure indicates a must-succeed email could not be sent
	ErrDeliveryFailure = errors.New("delivery failure")
)

// DeliveryError reports which pipeline step failed. Its message is the
// underlying error's message so callers can surface it unchanged.
type DeliveryError struct {
	Step string
	Err  error
}

func (e *DeliveryError) Error() string {
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDeliveryFailure) hold for any DeliveryError
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailure
}

// DeliveryFailure wraps err as a failure of the named step
func DeliveryFailure(step string, err error) error {
	return &DeliveryError{Step: step, Err: err}
}

// DegradedWrite wraps a storage failure so it can be told apart in logs
func DegradedWrite(err error) error {
	return fmt.Errorf("%w: %w", ErrDegradedWrite, err)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
