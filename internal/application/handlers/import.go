package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/thenomain/PyGMCCG/internal/domain/services"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/parsers"
)

// ImportHandler handles importing dictionary entries from files.
type ImportHandler struct {
	service      *services.ImportService
	dictionaries *services.DictionaryService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService, dictionaries *services.DictionaryService) *ImportHandler {
	return &ImportHandler{
		service:      service,
		dictionaries: dictionaries,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "yaml", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing entries
	Category   string                    // Default category for rows without one
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	File     string
	BatchID  string
	Imported int
	Skipped  int
	Errors   []services.ImportError
}

// Handle imports entries from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	// Get parser
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	// Parse entries
	raw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(raw) == 0 {
		return &ImportResult{File: filePath}, nil
	}

	serviceResult, err := h.service.Import(ctx, raw, services.ImportOptions{
		DryRun:          opts.DryRun,
		OnConflict:      opts.OnConflict,
		DefaultCategory: opts.Category,
	})
	if err != nil {
		return nil, err
	}

	if serviceResult.Imported > 0 && !opts.DryRun {
		h.dictionaries.Invalidate()
	}

	return &ImportResult{
		File:     filePath,
		BatchID:  serviceResult.BatchID,
		Imported: serviceResult.Imported,
		Skipped:  serviceResult.Skipped,
		Errors:   serviceResult.Errors,
	}, nil
}

// HandleDir imports every supported file in dir, in name order. A file's
// base name is its default category.
func (h *ImportHandler) HandleDir(ctx context.Context, dir string, opts ImportOptions) ([]ImportResult, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary directory: %w", err)
	}

	var files []string
	for _, e := range dirEntries {
		if e.IsDir() || parsers.ForFile(e.Name()) == nil {
			continue
		}
		files = append(files, e.Name())
	}
	slices.Sort(files)

	results := make([]ImportResult, 0, len(files))
	for _, name := range files {
		fileOpts := opts
		if fileOpts.Category == "" {
			fileOpts.Category = name[:len(name)-len(filepath.Ext(name))]
		}
		fileOpts.Format = "auto"

		result, err := h.Handle(ctx, filepath.Join(dir, name), fileOpts)
		if err != nil {
			return results, fmt.Errorf("importing %s: %w", name, err)
		}
		results = append(results, *result)
	}
	return results, nil
}
