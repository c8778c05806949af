package listings

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed caller input, such as an empty or
	// repeating candidate list.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnexpectedValue marks a candidate type failing a structural
	// precondition: missing, lacking the marker capability, or outside the
	// base type's subtree.
	ErrUnexpectedValue = errors.New("unexpected value")
)

// ClassError describes a rejected candidate. It unwraps to ErrInvalidArgument
// or ErrUnexpectedValue.
type ClassError struct {
	Kind   Kind
	Type   string // empty when the candidate list as a whole is rejected
	Reason string
	Err    error
}

func (e *ClassError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s.Validate: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid class passed to %s.Validate: %s %s", e.Kind, e.Type, e.Reason)
}

func (e *ClassError) Unwrap() error { return e.Err }
