package orbital

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStep rejects a dt or domain that is not positive and finite.
	ErrInvalidStep = errors.New("orbital: dt and domain must be positive and finite")

	// ErrUnknownBody indicates a speculative run was asked to track an unregistered id.
	ErrUnknownBody = errors.New("orbital: body not registered")

	// ErrCanceled indicates a speculative run stopped before its last increment.
	ErrCanceled = errors.New("orbital: speculative run canceled")
)

// StepError wraps an error with the increment it interrupted.
type StepError struct {
	Increment int
	Time      float64
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("increment %d (t=%.4f): %v", e.Increment, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
