package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for system construction and validation.
var (
	// ErrCapacity indicates more bodies were added than the system can hold.
	ErrCapacity = errors.New("dynamo: system capacity exceeded")

	// ErrNegativeGM indicates a body with a negative gravitational parameter.
	ErrNegativeGM = errors.New("dynamo: gravitational parameter must be non-negative")

	// ErrEmptySystem indicates an operation that needs at least one body.
	ErrEmptySystem = errors.New("dynamo: system has no bodies")

	// ErrUnknownBody indicates a body name that is not part of the system.
	ErrUnknownBody = errors.New("dynamo: unknown body")

	// ErrNonFinite indicates a state containing NaN or Inf components.
	ErrNonFinite = errors.New("dynamo: non-finite state (NaN or Inf detected)")
)

// BodyError wraps an error with the body it refers to.
type BodyError struct {
	Index   int
	Name    string
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d (%s): %v", e.Index, e.Name, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
