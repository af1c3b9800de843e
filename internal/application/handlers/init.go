// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenomain/PyGMCCG/internal/domain/ports"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/config"
)

// StoreOpener opens the dictionary store described by cfg.
type StoreOpener func(cfg config.SQLiteConfig) (ports.DictionaryStore, error)

// InitHandler handles project initialization.
type InitHandler struct {
	open   StoreOpener
	logger *slog.Logger
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open StoreOpener, logger *slog.Logger) *InitHandler {
	return &InitHandler{
		open:   open,
		logger: logger,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
	Seeded       int
}

// Handle writes the default config, creates the database schema and seeds
// the built-in dictionaries.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("pygmccg already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := h.open(cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	seeded, err := services.NewDictionaryService(store, h.logger).LoadDefaults(ctx, cfg.Dictionary.SeedSkills)
	if err != nil {
		return nil, fmt.Errorf("seeding defaults: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: cfg.SQLite.Path,
		Seeded:       seeded,
	}, nil
}
