package entities

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Default bounds for a NumericTrait.
const (
	DefaultNumericMin = 0
	DefaultNumericMax = 5
)

// NumericTrait is an integer trait with inclusive bounds and a set of named
// offsets (temporary boosts and penalties).
//
// The bare value is always within [Min, Max]. Offsets are reported separately
// through OffsetSum and Effective and are not range-checked.
type NumericTrait struct {
	traitBase
	value   int
	min     int
	max     int
	allowed []int
	offsets map[string]int
}

type numericConfig struct {
	min     int
	max     int
	allowed []int
}

// NumericOption configures a NumericTrait at construction.
type NumericOption func(*numericConfig)

// WithRange sets the inclusive bounds.
func WithRange(minValue, maxValue int) NumericOption {
	return func(c *numericConfig) {
		c.min = minValue
		c.max = maxValue
	}
}

// WithMax raises or lowers the upper bound only.
func WithMax(maxValue int) NumericOption {
	return func(c *numericConfig) {
		c.max = maxValue
	}
}

// WithAllowed restricts the value to a discrete set. The set must fit in the
// configured range.
func WithAllowed(values ...int) NumericOption {
	return func(c *numericConfig) {
		c.allowed = slices.Clone(values)
	}
}

// WithAllowedValues applies a dictionary entry's value constraint.
func WithAllowedValues(av AllowedValues) NumericOption {
	return func(c *numericConfig) {
		if lo, hi, ok := av.Bounds(); ok {
			c.min, c.max = lo, hi
		}
		if len(av.Discrete) > 0 {
			c.allowed = slices.Clone(av.Discrete)
		}
	}
}

// NewNumeric creates a NumericTrait. value may be any integer kind, an
// integral float, or a base-10 string.
func NewNumeric(name string, value any, opts ...NumericOption) (*NumericTrait, error) {
	cfg := numericConfig{min: DefaultNumericMin, max: DefaultNumericMax}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newNumeric(name, value, cfg)
}

func newNumeric(name string, value any, cfg numericConfig) (*NumericTrait, error) {
	if cfg.min > cfg.max {
		return nil, fmt.Errorf("%w: min %d exceeds max %d", ErrRange, cfg.min, cfg.max)
	}
	for _, a := range cfg.allowed {
		if err := checkRange(a, cfg.min, cfg.max); err != nil {
			return nil, fmt.Errorf("allowed value: %w", err)
		}
	}

	n := &NumericTrait{
		traitBase: traitBase{name: name},
		min:       cfg.min,
		max:       cfg.max,
		offsets:   make(map[string]int),
	}
	if len(cfg.allowed) > 0 {
		n.allowed = slices.Sorted(slices.Values(cfg.allowed))
		n.allowed = slices.Compact(n.allowed)
	}

	v, err := n.validate(value)
	if err != nil {
		return nil, err
	}
	n.value = v
	return n, nil
}

// Kind returns KindNumeric.
func (n *NumericTrait) Kind() Kind { return KindNumeric }

// Raw returns the bare value as an int.
func (n *NumericTrait) Raw() any { return n.value }

// Value returns the bare value.
func (n *NumericTrait) Value() int { return n.value }

// Own returns the bare value, ignoring any substat.
func (n *NumericTrait) Own() int { return n.value }

// Combined returns the bare value plus the combined value of a numeric substat.
func (n *NumericTrait) Combined() int { return n.value + n.combinedSubstat() }

// Min returns the inclusive lower bound.
func (n *NumericTrait) Min() int { return n.min }

// Max returns the inclusive upper bound.
func (n *NumericTrait) Max() int { return n.max }

// Allowed returns the discrete allowed values, or nil if any value in range is allowed.
func (n *NumericTrait) Allowed() []int { return slices.Clone(n.allowed) }

// SetValue replaces the bare value.
func (n *NumericTrait) SetValue(value any) error {
	v, err := n.validate(value)
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

// Add increments the bare value by delta. A negative delta decrements.
func (n *NumericTrait) Add(delta any) error {
	v, err := n.Plus(delta)
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

// Plus returns what the value would be after Add(delta) without changing it.
func (n *NumericTrait) Plus(delta any) (int, error) {
	d, err := coerceInt(delta)
	if err != nil {
		return 0, err
	}
	switch {
	case d > 0 && n.value > math.MaxInt-d:
		return 0, &RangeError{Value: math.MaxInt, Min: n.min, Max: n.max, Bound: BoundMax}
	case d < 0 && n.value < math.MinInt-d:
		return 0, &RangeError{Value: math.MinInt, Min: n.min, Max: n.max, Bound: BoundMin}
	}
	return n.validate(n.value + d)
}

// validate coerces v and checks it against the range and the allowed set.
func (n *NumericTrait) validate(v any) (int, error) {
	i, err := coerceInt(v)
	if err != nil {
		return 0, err
	}
	if err := checkRange(i, n.min, n.max); err != nil {
		return 0, err
	}
	if len(n.allowed) > 0 {
		if _, found := slices.BinarySearch(n.allowed, i); !found {
			return 0, fmt.Errorf("%w: %d (allowed: %v)", ErrValueNotAllowed, i, n.allowed)
		}
	}
	return i, nil
}

// Offsets returns a copy of the offsets.
func (n *NumericTrait) Offsets() map[string]int {
	return maps.Clone(n.offsets)
}

// SetOffset merges new offsets into the existing set. Every reason must be
// non-empty and new, and every value non-zero; otherwise nothing is merged.
func (n *NumericTrait) SetOffset(offset map[string]int) error {
	for reason, value := range offset {
		switch {
		case reason == "":
			return &OffsetError{Reason: reason, Value: value, Problem: "reason must be a non-empty string"}
		case value == 0:
			return &OffsetError{Reason: reason, Value: value, Problem: "value must be a non-zero integer"}
		}
		if _, exists := n.offsets[reason]; exists {
			return &OffsetError{Reason: reason, Value: value, Problem: "reason already in offset"}
		}
	}
	maps.Copy(n.offsets, offset)
	return nil
}

// RemoveOffset deletes the offset for reason and reports whether it existed.
func (n *NumericTrait) RemoveOffset(reason string) bool {
	if _, ok := n.offsets[reason]; !ok {
		return false
	}
	delete(n.offsets, reason)
	return true
}

// OffsetSum returns the sum of all offsets, 0 when there are none.
func (n *NumericTrait) OffsetSum() int {
	var sum int
	for _, v := range n.offsets {
		sum += v
	}
	return sum
}

// Effective returns the bare value plus OffsetSum. It is not clamped to the range.
func (n *NumericTrait) Effective() int { return n.value + n.OffsetSum() }

func (n *NumericTrait) String() string {
	if sum := n.OffsetSum(); sum != 0 {
		return fmt.Sprintf("%s %d (%+d)", n.name, n.value, sum)
	}
	return fmt.Sprintf("%s %d", n.name, n.value)
}
