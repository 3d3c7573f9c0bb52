package scheduler

import "fmt"

// InsufficientEmployeesError is returned by the feasibility pre-check when a
// role's required total exceeds its estimated fill capacity for the span.
type InsufficientEmployeesError struct {
	Role      string
	Required  int32
	Available int32
}

func (e *InsufficientEmployeesError) Error() string {
	return fmt.Sprintf("not enough employees for role %q: %d required, an estimated %d can be filled", e.Role, e.Required, e.Available)
}

// UnknownReferenceError signals that a catalog entry referenced by a
// requirement vanished between preprocessing and decoding.
type UnknownReferenceError struct {
	Kind string // "shift", "role" or "employee"
	ID   any
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %v referenced by schedule", e.Kind, e.ID)
}
