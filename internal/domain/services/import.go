package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/ports"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing entries during import.
type ConflictStrategy string

const (
	// ConflictSkip skips entries that already exist (by category and name).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite replaces existing entries with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// IsValid reports whether c is a known strategy.
func (c ConflictStrategy) IsValid() bool {
	return c == ConflictSkip || c == ConflictOverwrite
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun          bool             // Validate without saving
	OnConflict      ConflictStrategy // How to handle existing entries
	DefaultCategory string           // Used for rows without a category
}

// ImportError represents an error for a specific entry during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	BatchID  string
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing dictionary entries from external sources.
type ImportService struct {
	store  ports.DictionaryStore
	logger *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(store ports.DictionaryStore, logger *slog.Logger) *ImportService {
	return &ImportService{
		store:  store,
		logger: logger,
	}
}

// Import validates raw entries and saves the valid ones. Invalid rows are
// reported in the result and never saved.
func (s *ImportService) Import(ctx context.Context, raw []parsers.RawEntry, opts ImportOptions) (*ImportResult, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	if !opts.OnConflict.IsValid() {
		return nil, fmt.Errorf("invalid conflict strategy %q (valid: skip, overwrite)", opts.OnConflict)
	}

	result := &ImportResult{BatchID: uuid.New().String()}
	logger := s.logger.With("batch_id", result.BatchID)

	// Validate all entries first
	valid, validationErrors := s.validateEntries(raw, opts.DefaultCategory)
	result.Errors = validationErrors

	if len(valid) == 0 {
		return result, nil
	}

	toSave, skipped, conflictErrors, err := s.resolveConflicts(ctx, valid, opts.OnConflict)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped
	result.Errors = append(result.Errors, conflictErrors...)

	// Handle dry run
	if opts.DryRun {
		result.Imported = len(toSave)
		logger.Debug("dry run import", "would_import", result.Imported, "skipped", skipped)
		return result, nil
	}

	for i := range toSave {
		if err := s.store.SaveEntry(ctx, &toSave[i].entry); err != nil {
			return nil, fmt.Errorf("saving %s %s: %w", toSave[i].entry.Category, toSave[i].entry.Name, err)
		}
		result.Imported++
	}

	details := map[string]any{
		"batch_id":    result.BatchID,
		"imported":    result.Imported,
		"skipped":     result.Skipped,
		"errors":      len(result.Errors),
		"on_conflict": string(opts.OnConflict),
	}
	if err := s.store.LogAction(ctx, entities.ActionImportBatch, "", "", details); err != nil {
		return nil, fmt.Errorf("logging import: %w", err)
	}

	logger.Info("import complete", "imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

type pendingEntry struct {
	line  int
	entry entities.DictionaryEntry
}

// validateEntries converts raw entries and returns valid ones with any errors.
// A second row with the same category and name as an earlier one is an error.
func (s *ImportService) validateEntries(raw []parsers.RawEntry, defaultCategory string) ([]pendingEntry, []ImportError) {
	valid := make([]pendingEntry, 0, len(raw))
	var errs []ImportError
	seen := make(map[string]int, len(raw))

	for i := range raw {
		r := &raw[i]
		lineNum := r.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		entry, ierr := convertRawEntry(r, defaultCategory, lineNum)
		if ierr != nil {
			errs = append(errs, *ierr)
			continue
		}

		id := entryID(entry.Category, entry.Name)
		if first, dup := seen[id]; dup {
			errs = append(errs, ImportError{
				Line:    lineNum,
				Field:   "name",
				Value:   entry.Name,
				Message: fmt.Sprintf("duplicate of line %d", first),
			})
			continue
		}
		seen[id] = lineNum

		valid = append(valid, pendingEntry{line: lineNum, entry: entry})
	}

	return valid, errs
}

// convertRawEntry validates a single raw entry and builds the domain entry.
func convertRawEntry(r *parsers.RawEntry, defaultCategory string, lineNum int) (entities.DictionaryEntry, *ImportError) {
	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = defaultCategory
	}
	if category == "" {
		return entities.DictionaryEntry{}, &ImportError{Line: lineNum, Field: "category", Message: "missing required field: category"}
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return entities.DictionaryEntry{}, &ImportError{Line: lineNum, Field: "name", Message: "missing required field: name"}
	}

	entry := entities.DictionaryEntry{
		Category:     entities.NormalizeCategory(category),
		Name:         name,
		Tags:         r.Tags,
		Values:       entities.AllowedValues{Discrete: r.Values, Min: r.Min, Max: r.Max},
		Templates:    r.Templates,
		Prerequisite: entities.Prerequisite(r.Prerequisite),
		PrereqText:   r.PrereqText,
		Book:         r.Book,
		Note:         r.Note,
	}

	if err := entry.Values.Validate(); err != nil {
		return entities.DictionaryEntry{}, &ImportError{
			Line:    lineNum,
			Field:   "values",
			Value:   entry.Values.String(),
			Message: err.Error(),
		}
	}
	if err := entry.Validate(); err != nil {
		return entities.DictionaryEntry{}, &ImportError{Line: lineNum, Field: "name", Value: name, Message: err.Error()}
	}

	return entry, nil
}

// resolveConflicts decides which valid entries get written. Under skip,
// existing entries are counted as skipped. Under overwrite, existing entries
// are replaced except built-in Attributes, which are reported as errors.
func (s *ImportService) resolveConflicts(ctx context.Context, valid []pendingEntry, onConflict ConflictStrategy) (toSave []pendingEntry, skipped int, errs []ImportError, err error) {
	toSave = make([]pendingEntry, 0, len(valid))

	for _, p := range valid {
		existing, err := s.store.FindEntry(ctx, p.entry.Category, p.entry.Name)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("checking existing entry: %w", err)
		}
		if existing == nil {
			toSave = append(toSave, p)
			continue
		}

		if onConflict == ConflictSkip {
			skipped++
			continue
		}
		if entities.IsProtectedEntry(p.entry.Category, p.entry.Name) {
			errs = append(errs, ImportError{
				Line:    p.line,
				Field:   "name",
				Value:   p.entry.Name,
				Message: ErrProtectedEntry.Error(),
			})
			continue
		}

		// Overwrite keeps the original creation time
		p.entry.CreatedAt = existing.CreatedAt
		toSave = append(toSave, p)
	}

	return toSave, skipped, errs, nil
}
