package entities

import "fmt"

// StringTrait is a free-text trait such as Clan or Concept. It has no
// arithmetic. When an allowed set is given, values are matched
// case-insensitively and stored in the set's spelling.
type StringTrait struct {
	traitBase
	value   string
	allowed []string
}

// NewString creates a StringTrait. allowed may be empty for free text.
func NewString(name, value string, allowed ...string) (*StringTrait, error) {
	s := &StringTrait{
		traitBase: traitBase{name: name},
		allowed:   append([]string(nil), allowed...),
	}
	if err := s.SetValue(value); err != nil {
		return nil, err
	}
	return s, nil
}

// Kind returns KindString.
func (s *StringTrait) Kind() Kind { return KindString }

// Raw returns the value as a string.
func (s *StringTrait) Raw() any { return s.value }

// Value returns the text.
func (s *StringTrait) Value() string { return s.value }

// SetValue replaces the text.
func (s *StringTrait) SetValue(value string) error {
	if len(s.allowed) == 0 {
		s.value = value
		return nil
	}
	folded := NormalizeName(value)
	for _, a := range s.allowed {
		if NormalizeName(a) == folded {
			s.value = a
			return nil
		}
	}
	return fmt.Errorf("%w: %q for %s", ErrValueNotAllowed, value, s.name)
}

func (s *StringTrait) String() string {
	return fmt.Sprintf("%s: %s", s.name, s.value)
}
