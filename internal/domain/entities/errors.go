package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for trait validation. Match with errors.Is.
var (
	// ErrCoercion is returned when a value cannot be read as an integer.
	ErrCoercion = errors.New("value is not an integer")
	// ErrRange is returned when a numeric value falls outside its bounds.
	ErrRange = errors.New("value out of range")
	// ErrOffsetFormat is returned for malformed or duplicate offsets.
	ErrOffsetFormat = errors.New("invalid offset")
	// ErrNameResolution is returned when a canonical name cannot be resolved.
	ErrNameResolution = errors.New("name resolution failed")
	// ErrNoMatch refines ErrNameResolution: the candidate matched nothing.
	ErrNoMatch = errors.New("no match")
	// ErrAmbiguousMatch refines ErrNameResolution: the candidate matched several names.
	ErrAmbiguousMatch = errors.New("too many matches")
	// ErrSubstat is returned when a substat relation would break the trait tree.
	ErrSubstat = errors.New("invalid substat")
	// ErrValueNotAllowed is returned when a value is outside a trait's allowed set.
	ErrValueNotAllowed = errors.New("value not allowed")
	// ErrNotAnAttribute is returned for a name outside the nine built-in Attributes.
	ErrNotAnAttribute = errors.New("not a built-in attribute")
)

// Bound names which side of a range was violated.
type Bound string

// Range bounds.
const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

// CoercionError reports an input that could not be coerced to an integer.
type CoercionError struct {
	Input any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("numeric trait requires an integer, got %#v", e.Input)
}

func (e *CoercionError) Unwrap() error { return ErrCoercion }

// RangeError reports a value outside [Min, Max].
type RangeError struct {
	Value int
	Min   int
	Max   int
	Bound Bound
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d must be between %d and %d (violates %s)", e.Value, e.Min, e.Max, e.Bound)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// checkRange returns a *RangeError if v is outside [lo, hi].
func checkRange(v, lo, hi int) error {
	switch {
	case v < lo:
		return &RangeError{Value: v, Min: lo, Max: hi, Bound: BoundMin}
	case v > hi:
		return &RangeError{Value: v, Min: lo, Max: hi, Bound: BoundMax}
	}
	return nil
}

// OffsetError reports a single rejected offset entry.
type OffsetError struct {
	Reason  string
	Value   int
	Problem string
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset %q (%d): %s", e.Reason, e.Value, e.Problem)
}

func (e *OffsetError) Unwrap() error { return ErrOffsetFormat }

// NameResolutionError reports a candidate that matched zero or several names.
// Matches is empty for a no-match failure.
type NameResolutionError struct {
	Candidate string
	Matches   []string
}

func (e *NameResolutionError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no match for %q", e.Candidate)
	}
	return fmt.Sprintf("too many matches for %q: %s", e.Candidate, strings.Join(e.Matches, ", "))
}

func (e *NameResolutionError) Unwrap() error { return ErrNameResolution }

// Is lets callers distinguish the no-match and ambiguous cases.
func (e *NameResolutionError) Is(target error) bool {
	switch target {
	case ErrNoMatch:
		return len(e.Matches) == 0
	case ErrAmbiguousMatch:
		return len(e.Matches) > 1
	}
	return false
}
