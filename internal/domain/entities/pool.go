package entities

import (
	"errors"
	"fmt"
)

// PoolValue is the payload of a PoolTrait.
type PoolValue struct {
	Max     int `json:"max" yaml:"max"`
	Current int `json:"current" yaml:"current"`
}

// PoolTrait is a depletable trait such as Willpower: a permanent maximum and
// a current value with 0 <= current <= max.
type PoolTrait struct {
	traitBase
	max     int
	current int
}

var errNegativeAmount = errors.New("amount must not be negative")

// NewPool creates a full pool.
func NewPool(name string, maxValue int) (*PoolTrait, error) {
	if maxValue < 0 {
		return nil, &RangeError{Value: maxValue, Min: 0, Max: maxValue, Bound: BoundMin}
	}
	return &PoolTrait{
		traitBase: traitBase{name: name},
		max:       maxValue,
		current:   maxValue,
	}, nil
}

// Kind returns KindPool.
func (p *PoolTrait) Kind() Kind { return KindPool }

// Raw returns a PoolValue.
func (p *PoolTrait) Raw() any { return PoolValue{Max: p.max, Current: p.current} }

// Max returns the permanent maximum.
func (p *PoolTrait) Max() int { return p.max }

// Current returns the current value.
func (p *PoolTrait) Current() int { return p.current }

// Own returns the current value.
func (p *PoolTrait) Own() int { return p.current }

// Combined returns the current value plus the combined value of a numeric substat.
func (p *PoolTrait) Combined() int { return p.current + p.combinedSubstat() }

// Spend removes n points. It fails without change if n exceeds the current value.
func (p *PoolTrait) Spend(n int) error {
	if n < 0 {
		return fmt.Errorf("spending %s: %w", p.name, errNegativeAmount)
	}
	if err := checkRange(p.current-n, 0, p.max); err != nil {
		return fmt.Errorf("spending %d from %s: %w", n, p.name, err)
	}
	p.current -= n
	return nil
}

// Restore adds up to n points, stopping at max, and returns the amount restored.
func (p *PoolTrait) Restore(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("restoring %s: %w", p.name, errNegativeAmount)
	}
	restored := min(n, p.max-p.current)
	p.current += restored
	return restored, nil
}

// Refill sets current to max.
func (p *PoolTrait) Refill() { p.current = p.max }

// SetMax changes the maximum. Current is lowered if it would exceed the new max.
func (p *PoolTrait) SetMax(maxValue int) error {
	if maxValue < 0 {
		return &RangeError{Value: maxValue, Min: 0, Max: p.max, Bound: BoundMin}
	}
	p.max = maxValue
	p.current = min(p.current, maxValue)
	return nil
}

func (p *PoolTrait) String() string {
	return fmt.Sprintf("%s %d/%d", p.name, p.current, p.max)
}
