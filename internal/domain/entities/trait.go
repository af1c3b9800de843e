// Package entities contains the trait hierarchy and the data dictionary types.
package entities

import (
	"fmt"
	"strings"
)

// Kind identifies the concrete type of a Trait.
type Kind string

// Trait kinds.
const (
	KindString     Kind = "string"
	KindNumeric    Kind = "numeric"
	KindAttribute  Kind = "attribute"
	KindPool       Kind = "pool"
	KindMultivalue Kind = "multivalue"
)

// Trait is a named stat on a character sheet.
//
// Raw returns the trait's payload in its natural Go type (int for numeric
// traits, string for string traits, PoolValue for pools, map[string]string for
// multivalue traits). Substat returns the single hosted trait, or nil.
type Trait interface {
	Name() string
	Kind() Kind
	Raw() any
	Substat() Trait

	base() *traitBase
}

// Numeric is a trait that can be summed with its substat.
type Numeric interface {
	Trait
	// Own returns the trait's bare value, ignoring any substat.
	Own() int
	// Combined returns Own plus the Combined value of a numeric substat.
	Combined() int
}

// traitBase holds the fields every trait shares. Embed it to satisfy Trait.
type traitBase struct {
	name    string
	substat Trait
	parent  *traitBase
}

// Name returns the display name.
func (b *traitBase) Name() string { return b.name }

// Substat returns the hosted substat, or nil.
func (b *traitBase) Substat() Trait { return b.substat }

func (b *traitBase) base() *traitBase { return b }

// combinedSubstat returns the Combined value of a numeric substat, or 0.
func (b *traitBase) combinedSubstat() int {
	if n, ok := b.substat.(Numeric); ok {
		return n.Combined()
	}
	return 0
}

// Chain makes sub the substat of host.
//
// A host holds at most one substat and a trait has at most one host, so the
// relation is a tree. Chain fails with ErrSubstat if host already has a
// substat, if sub is already hosted, or if the edge would form a cycle.
func Chain(host, sub Trait) error {
	if host == nil || sub == nil {
		return fmt.Errorf("%w: host and substat are required", ErrSubstat)
	}
	h, s := host.base(), sub.base()
	if h == s {
		return fmt.Errorf("%w: %s cannot be its own substat", ErrSubstat, host.Name())
	}
	if h.substat != nil {
		return fmt.Errorf("%w: %s already hosts %s", ErrSubstat, host.Name(), h.substat.Name())
	}
	if s.parent != nil {
		return fmt.Errorf("%w: %s is already a substat", ErrSubstat, sub.Name())
	}
	for p := h; p != nil; p = p.parent {
		if p == s {
			return fmt.Errorf("%w: chaining %s under %s forms a cycle", ErrSubstat, sub.Name(), host.Name())
		}
	}

	h.substat = sub
	s.parent = h
	return nil
}

// Unchain detaches and returns host's substat. It returns nil if there is none.
func Unchain(host Trait) Trait {
	if host == nil {
		return nil
	}
	h := host.base()
	sub := h.substat
	if sub == nil {
		return nil
	}
	sub.base().parent = nil
	h.substat = nil
	return sub
}

// Resolve follows a dotted path such as "Medicine.First_Aid" from root down
// its substat chain. Names compare case-insensitively. The first segment must
// name root itself.
func Resolve(root Trait, path string) (Trait, bool) {
	if root == nil {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var current Trait = root
	for i, seg := range segments {
		if i > 0 {
			current = current.Substat()
			if current == nil {
				return nil, false
			}
		}
		if NormalizeName(current.Name()) != NormalizeName(seg) {
			return nil, false
		}
	}
	return current, true
}

// Total sums the bare values of the given traits.
func Total(terms ...Numeric) int {
	var sum int
	for _, t := range terms {
		sum += t.Own()
	}
	return sum
}
