package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
)

// DictionaryHandler handles dictionary administration.
type DictionaryHandler struct {
	service *services.DictionaryService
}

// NewDictionaryHandler creates a new DictionaryHandler.
func NewDictionaryHandler(service *services.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{
		service: service,
	}
}

// AddRequest describes a new dictionary entry from the command line.
type AddRequest struct {
	Category   string
	Name       string
	Tags       []string
	Values     []int
	Min        *int
	Max        *int
	Templates  []string
	PrereqText string
	Book       string
	Note       string
}

// HandleList returns the entries in category, or all entries.
func (h *DictionaryHandler) HandleList(ctx context.Context, category string) ([]entities.DictionaryEntry, error) {
	return h.service.List(ctx, category)
}

// HandleCategories returns every stored category.
func (h *DictionaryHandler) HandleCategories(ctx context.Context) ([]string, error) {
	return h.service.Categories(ctx)
}

// HandleDescribe returns an entry by full name, falling back to partial-name
// resolution when there is no exact match.
func (h *DictionaryHandler) HandleDescribe(ctx context.Context, category, name string) (*entities.DictionaryEntry, error) {
	entry, err := h.service.Get(ctx, category, name)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	resolved, err := h.service.Resolve(ctx, category, name)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// HandleAdd creates a new entry.
func (h *DictionaryHandler) HandleAdd(ctx context.Context, req AddRequest) error {
	if len(req.Values) > 0 && (req.Min != nil || req.Max != nil) {
		return errors.New("use either --values or --min/--max, not both")
	}

	return h.service.Add(ctx, entities.DictionaryEntry{
		Category:   req.Category,
		Name:       req.Name,
		Tags:       req.Tags,
		Values:     entities.AllowedValues{Discrete: req.Values, Min: req.Min, Max: req.Max},
		Templates:  req.Templates,
		PrereqText: req.PrereqText,
		Book:       req.Book,
		Note:       req.Note,
	})
}

// HandleRemove deletes an entry.
func (h *DictionaryHandler) HandleRemove(ctx context.Context, category, name string) error {
	return h.service.Remove(ctx, category, name)
}

// HandleResolve returns the canonical name for a partial one.
func (h *DictionaryHandler) HandleResolve(ctx context.Context, category, partial string) (string, error) {
	name, err := h.service.Canonicalize(ctx, category, partial)
	if err != nil {
		return "", fmt.Errorf("resolving %q in %s: %w", partial, category, err)
	}
	return name, nil
}

// HandleHistory returns recent dictionary writes.
func (h *DictionaryHandler) HandleHistory(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	return h.service.AuditLog(ctx, action, limit)
}
