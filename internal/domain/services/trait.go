package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
)

// TraitService builds traits whose names and value constraints come from
// the stored dictionaries.
type TraitService struct {
	dictionaries *DictionaryService
}

// NewTraitService creates a new TraitService.
func NewTraitService(dictionaries *DictionaryService) *TraitService {
	return &TraitService{dictionaries: dictionaries}
}

// NewAttribute canonicalizes candidate against the stored Attribute
// dictionary and builds an Attribute. The built-in dictionary is used when
// nothing has been seeded.
func (s *TraitService) NewAttribute(ctx context.Context, candidate string, value any, opts ...entities.NumericOption) (*entities.Attribute, error) {
	d, err := s.dictionaries.Dictionary(ctx, entities.CategoryAttribute)
	if errors.Is(err, ErrUnknownCategory) {
		d = entities.AttributeDictionary
	} else if err != nil {
		return nil, err
	}
	return entities.NewAttributeFrom(d, candidate, value, opts...)
}

// NewNumeric canonicalizes candidate within category and builds a
// NumericTrait constrained by the entry's allowed values. Explicit opts are
// applied after the entry's constraint.
func (s *TraitService) NewNumeric(ctx context.Context, category, candidate string, value any, opts ...entities.NumericOption) (*entities.NumericTrait, error) {
	entry, err := s.dictionaries.Resolve(ctx, category, candidate)
	if err != nil {
		return nil, err
	}

	all := make([]entities.NumericOption, 0, len(opts)+1)
	if !entry.Values.IsZero() {
		all = append(all, entities.WithAllowedValues(entry.Values))
	}
	all = append(all, opts...)

	n, err := entities.NewNumeric(entry.Name, value, all...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entry.Category, entry.Name, err)
	}
	return n, nil
}

// NewString canonicalizes candidate within category and builds a free-text
// StringTrait named after the entry.
func (s *TraitService) NewString(ctx context.Context, category, candidate, value string) (*entities.StringTrait, error) {
	entry, err := s.dictionaries.Resolve(ctx, category, candidate)
	if err != nil {
		return nil, err
	}
	return entities.NewString(entry.Name, value)
}

// NewChoice builds a StringTrait named name whose value must be one of the
// names in category, such as a Clan.
func (s *TraitService) NewChoice(ctx context.Context, name, category, candidate string) (*entities.StringTrait, error) {
	d, err := s.dictionaries.Dictionary(ctx, category)
	if err != nil {
		return nil, err
	}
	value, err := d.Canonicalize(candidate)
	if err != nil {
		return nil, err
	}
	return entities.NewString(name, value, d.Names()...)
}
