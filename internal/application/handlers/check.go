package handlers

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
)

// CheckHandler builds a trait from user input and reports its values.
type CheckHandler struct {
	traits *services.TraitService
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(traits *services.TraitService) *CheckHandler {
	return &CheckHandler{traits: traits}
}

// CheckRequest describes the trait to build.
type CheckRequest struct {
	Kind     entities.Kind  // KindAttribute or KindNumeric
	Category string         // Dictionary category for numeric traits
	Name     string         // Partial or full name
	Value    string         // Raw value as typed
	Max      int            // Raised Attribute max, 0 for the default
	Offsets  map[string]int // Applied in one merge
}

// CheckResult reports a built trait.
type CheckResult struct {
	Name      string
	Kind      entities.Kind
	Value     int
	Min       int
	Max       int
	Offsets   map[string]int
	OffsetSum int
	Effective int
	Tags      []string
}

// Handle builds the trait and applies the offsets. Any failure is returned
// unchanged so callers can match the entities error kinds.
func (h *CheckHandler) Handle(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	var (
		trait *entities.NumericTrait
		tags  []string
	)

	switch req.Kind {
	case entities.KindAttribute:
		var opts []entities.NumericOption
		if req.Max > 0 {
			opts = append(opts, entities.WithMax(req.Max))
		}
		a, err := h.traits.NewAttribute(ctx, req.Name, req.Value, opts...)
		if err != nil {
			return nil, err
		}
		trait, tags = &a.NumericTrait, a.Tags()
	case entities.KindNumeric:
		if req.Category == "" {
			return nil, fmt.Errorf("%w for numeric traits", services.ErrCategoryRequired)
		}
		n, err := h.traits.NewNumeric(ctx, req.Category, req.Name, req.Value)
		if err != nil {
			return nil, err
		}
		trait = n
	default:
		return nil, fmt.Errorf("unsupported trait kind %q (valid: attribute, numeric)", req.Kind)
	}

	if len(req.Offsets) > 0 {
		if err := trait.SetOffset(req.Offsets); err != nil {
			return nil, err
		}
	}

	return &CheckResult{
		Name:      trait.Name(),
		Kind:      req.Kind,
		Value:     trait.Value(),
		Min:       trait.Min(),
		Max:       trait.Max(),
		Offsets:   trait.Offsets(),
		OffsetSum: trait.OffsetSum(),
		Effective: trait.Effective(),
		Tags:      tags,
	}, nil
}

// SortedReasons returns the offset reasons of r in sorted order.
func (r *CheckResult) SortedReasons() []string {
	return slices.Sorted(maps.Keys(r.Offsets))
}
