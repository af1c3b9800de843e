package entities

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

var errEmptyKey = errors.New("key must not be empty")

// MultivalueTrait is a keyed collection of string sub-entries, such as Gifts.
// Keys may be strings or integers; integer keys are stored as their decimal
// string, so 3 and "3" address the same entry.
type MultivalueTrait struct {
	traitBase
	entries map[string]*StringTrait
}

// NewMultivalue creates an empty MultivalueTrait.
func NewMultivalue(name string) *MultivalueTrait {
	return &MultivalueTrait{
		traitBase: traitBase{name: name},
		entries:   make(map[string]*StringTrait),
	}
}

// Key normalizes a string or integer key.
func Key(k any) (string, error) {
	if s, ok := k.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", errEmptyKey
		}
		return s, nil
	}
	i, err := coerceInt(k)
	if err != nil {
		return "", fmt.Errorf("key %#v: %w", k, err)
	}
	return strconv.Itoa(i), nil
}

// Kind returns KindMultivalue.
func (m *MultivalueTrait) Kind() Kind { return KindMultivalue }

// Raw returns a copy of the entries as map[string]string.
func (m *MultivalueTrait) Raw() any {
	out := make(map[string]string, len(m.entries))
	for k, e := range m.entries {
		out[k] = e.Value()
	}
	return out
}

// Set stores text under key, replacing any previous entry.
func (m *MultivalueTrait) Set(key any, text string) error {
	k, err := Key(key)
	if err != nil {
		return err
	}
	entry, err := NewString(k, text)
	if err != nil {
		return err
	}
	m.entries[k] = entry
	return nil
}

// Get returns the entry under key.
func (m *MultivalueTrait) Get(key any) (*StringTrait, bool) {
	k, err := Key(key)
	if err != nil {
		return nil, false
	}
	e, ok := m.entries[k]
	return e, ok
}

// Delete removes the entry under key and reports whether it existed.
func (m *MultivalueTrait) Delete(key any) bool {
	k, err := Key(key)
	if err != nil {
		return false
	}
	if _, ok := m.entries[k]; !ok {
		return false
	}
	delete(m.entries, k)
	return true
}

// Keys returns the keys in sorted order.
func (m *MultivalueTrait) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// Len returns the number of entries.
func (m *MultivalueTrait) Len() int { return len(m.entries) }
