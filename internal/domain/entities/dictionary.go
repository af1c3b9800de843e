package entities

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Prerequisite is an opaque rule expression. It is stored and displayed but
// never evaluated here.
type Prerequisite string

// AllowedValues constrains a trait's value to a discrete set or an inclusive
// range. The zero value allows anything.
type AllowedValues struct {
	Discrete []int `json:"discrete,omitempty" yaml:"discrete,omitempty"`
	Min      *int  `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *int  `json:"max,omitempty" yaml:"max,omitempty"`
}

// IsZero reports whether no constraint is set.
func (a AllowedValues) IsZero() bool {
	return len(a.Discrete) == 0 && a.Min == nil && a.Max == nil
}

// Bounds returns the effective inclusive range. For a discrete set this is
// its smallest and largest member.
func (a AllowedValues) Bounds() (lo, hi int, ok bool) {
	if len(a.Discrete) > 0 {
		return slices.Min(a.Discrete), slices.Max(a.Discrete), true
	}
	if a.Min != nil && a.Max != nil {
		return *a.Min, *a.Max, true
	}
	return 0, 0, false
}

// Contains reports whether v satisfies the constraint.
func (a AllowedValues) Contains(v int) bool {
	if len(a.Discrete) > 0 {
		return slices.Contains(a.Discrete, v)
	}
	if a.Min != nil && v < *a.Min {
		return false
	}
	if a.Max != nil && v > *a.Max {
		return false
	}
	return true
}

// Validate checks the constraint is well formed.
func (a AllowedValues) Validate() error {
	if len(a.Discrete) > 0 && (a.Min != nil || a.Max != nil) {
		return errors.New("use either a discrete set or a range, not both")
	}
	if (a.Min == nil) != (a.Max == nil) {
		return errors.New("a range needs both min and max")
	}
	if a.Min != nil && *a.Min > *a.Max {
		return fmt.Errorf("min %d exceeds max %d", *a.Min, *a.Max)
	}
	return nil
}

func (a AllowedValues) String() string {
	switch {
	case len(a.Discrete) > 0:
		parts := make([]string, len(a.Discrete))
		for i, v := range a.Discrete {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ",")
	case a.Min != nil && a.Max != nil:
		return fmt.Sprintf("%d-%d", *a.Min, *a.Max)
	}
	return ""
}

// Range is a convenience constructor for an inclusive range constraint.
func Range(lo, hi int) AllowedValues {
	return AllowedValues{Min: &lo, Max: &hi}
}

// DictionaryEntry is the metadata for one canonical trait name.
type DictionaryEntry struct {
	Category     string        `json:"category" yaml:"category"`
	Name         string        `json:"name" yaml:"name"`
	Tags         []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Values       AllowedValues `json:"values,omitzero" yaml:"values,omitempty"`
	Templates    []string      `json:"templates,omitempty" yaml:"templates,omitempty"`
	Prerequisite Prerequisite  `json:"prerequisite,omitempty" yaml:"prerequisite,omitempty"`
	PrereqText   string        `json:"prereq_text,omitempty" yaml:"prereq_text,omitempty"`
	Book         string        `json:"book,omitempty" yaml:"book,omitempty"`
	Note         string        `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt    time.Time     `json:"created_at,omitzero" yaml:"-"`
}

// Validate checks required fields and the value constraint. The attribute
// category is closed: only the nine built-in names are valid in it.
func (e *DictionaryEntry) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name is required")
	}
	if strings.Contains(e.Name, ".") {
		return fmt.Errorf("name %q must not contain '.'", e.Name)
	}
	if NormalizeCategory(e.Category) == CategoryAttribute {
		if _, ok := AttributeDictionary.Lookup(e.Name); !ok {
			return fmt.Errorf("%w: %q", ErrNotAnAttribute, e.Name)
		}
	}
	for _, tag := range e.Tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("tags must not be empty strings")
		}
	}
	if err := e.Values.Validate(); err != nil {
		return fmt.Errorf("values: %w", err)
	}
	return nil
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e *DictionaryEntry) HasTag(tag string) bool {
	folded := NormalizeName(tag)
	for _, t := range e.Tags {
		if NormalizeName(t) == folded {
			return true
		}
	}
	return false
}

// Dictionary is a read-only registry of the valid names in one category.
type Dictionary struct {
	category string
	entries  map[string]DictionaryEntry // keyed by NormalizeName
	names    []string                   // canonical spellings, sorted
}

// NewDictionary builds a Dictionary. Entries must belong to category and have
// distinct names.
func NewDictionary(category string, entries []DictionaryEntry) (*Dictionary, error) {
	d := &Dictionary{
		category: category,
		entries:  make(map[string]DictionaryEntry, len(entries)),
		names:    make([]string, 0, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		if e.Category != category {
			return nil, fmt.Errorf("entry %q belongs to %q, not %q", e.Name, e.Category, category)
		}
		key := NormalizeName(e.Name)
		if _, dup := d.entries[key]; dup {
			return nil, fmt.Errorf("duplicate entry %q in %s", e.Name, category)
		}
		d.entries[key] = e
		d.names = append(d.names, e.Name)
	}
	slices.Sort(d.names)
	return d, nil
}

// mustDictionary is NewDictionary for built-in data.
func mustDictionary(category string, entries []DictionaryEntry) *Dictionary {
	d, err := NewDictionary(category, entries)
	if err != nil {
		panic(err)
	}
	return d
}

// Category returns the dictionary's category.
func (d *Dictionary) Category() string { return d.category }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.names) }

// Names returns the canonical names in sorted order.
func (d *Dictionary) Names() []string { return slices.Clone(d.names) }

// Lookup finds an entry by its full name, ignoring case.
func (d *Dictionary) Lookup(name string) (DictionaryEntry, bool) {
	e, ok := d.entries[NormalizeName(name)]
	return e, ok
}

// Canonicalize resolves a partial name to exactly one canonical name.
func (d *Dictionary) Canonicalize(candidate string) (string, error) {
	return Canonicalize(candidate, d.names)
}

// Tags returns the tags for name, or nil if it is not in the dictionary.
func (d *Dictionary) Tags(name string) []string {
	e, ok := d.Lookup(name)
	if !ok {
		return nil
	}
	return slices.Clone(e.Tags)
}

// WithTag returns the canonical names carrying tag, sorted.
func (d *Dictionary) WithTag(tag string) []string {
	var out []string
	for _, name := range d.names {
		e := d.entries[NormalizeName(name)]
		if e.HasTag(tag) {
			out = append(out, name)
		}
	}
	return out
}
