package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ResolutionError reports that a named type reference did not resolve to
// a type value (spec §7: TypeResolutionError). RequestID lets the REPL,
// the script runner, and internal/typesvc correlate a failure across logs
// without re-parsing the message.
type ResolutionError struct {
	Name      string
	RequestID uuid.UUID
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("type resolution error [%s]: %q does not resolve to a type", e.RequestID, e.Name)
}

// NewResolutionError builds a ResolutionError tagged with a fresh request id.
func NewResolutionError(name string) *ResolutionError {
	return &ResolutionError{Name: name, RequestID: uuid.New()}
}

// MismatchSide distinguishes an argument-type failure from a return-type
// failure at a call boundary.
type MismatchSide int

const (
	MismatchInput MismatchSide = iota
	MismatchOutput
)

func (s MismatchSide) String() string {
	if s == MismatchInput {
		return "input"
	}
	return "output"
}

// MismatchError reports that a value failed valueOf ⊑ T, either at a call
// boundary or at an explicit assertion (spec §7: TypeMismatchError).
type MismatchError struct {
	Callable  string // name of the function at the call boundary, "" for a bare assertion
	Side      MismatchSide
	Expected  string // printed expected type
	Observed  string // printed typeOf(value)
	RequestID uuid.UUID
}

func (e *MismatchError) Error() string {
	if e.Callable == "" {
		return fmt.Sprintf("type mismatch [%s]: expected %s, got %s", e.RequestID, e.Expected, e.Observed)
	}
	return fmt.Sprintf("type mismatch [%s]: %s: wrong %s type: expected %s, got %s",
		e.RequestID, e.Callable, e.Side, e.Expected, e.Observed)
}

// NewMismatchError builds a MismatchError tagged with a fresh request id.
func NewMismatchError(callable string, side MismatchSide, expected, observed string) *MismatchError {
	return &MismatchError{
		Callable:  callable,
		Side:      side,
		Expected:  expected,
		Observed:  observed,
		RequestID: uuid.New(),
	}
}
