package entities

import "fmt"

// Attribute bounds. Some supernatural templates raise the ceiling above
// AttributeMax, up to AttributeCeiling.
const (
	AttributeMin     = 1
	AttributeMax     = 5
	AttributeCeiling = 10
)

// Attribute is a NumericTrait named after one of the nine game Attributes.
type Attribute struct {
	NumericTrait
}

// NewAttribute canonicalizes name against the built-in Attribute dictionary
// and creates an Attribute in [1, 5]. Use WithMax to raise the ceiling.
func NewAttribute(name string, value any, opts ...NumericOption) (*Attribute, error) {
	return NewAttributeFrom(AttributeDictionary, name, value, opts...)
}

// NewAttributeFrom is NewAttribute with an explicit Attribute dictionary.
// The resolved name must still be one of the built-in Attributes, and Tags
// always reads the built-in dictionary.
func NewAttributeFrom(dict *Dictionary, name string, value any, opts ...NumericOption) (*Attribute, error) {
	canonical, err := dict.Canonicalize(name)
	if err != nil {
		return nil, err
	}
	builtin, ok := AttributeDictionary.Lookup(canonical)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAnAttribute, canonical)
	}
	canonical = builtin.Name

	cfg := numericConfig{min: AttributeMin, max: AttributeMax}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.min = AttributeMin
	if err := checkRange(cfg.max, AttributeMax, AttributeCeiling); err != nil {
		return nil, fmt.Errorf("attribute max: %w", err)
	}

	n, err := newNumeric(canonical, value, cfg)
	if err != nil {
		return nil, err
	}
	return &Attribute{NumericTrait: *n}, nil
}

// Kind returns KindAttribute.
func (a *Attribute) Kind() Kind { return KindAttribute }

// Tags returns the Attribute's classification tags from the built-in dictionary.
func (a *Attribute) Tags() []string {
	return AttributeDictionary.Tags(a.name)
}
