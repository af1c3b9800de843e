package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenomain/PyGMCCG/internal/application/handlers"
	"github.com/thenomain/PyGMCCG/internal/domain/ports"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/config"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/logging"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config            *config.Config
	Logger            *slog.Logger
	DictionaryHandler *handlers.DictionaryHandler
	ImportHandler     *handlers.ImportHandler
	ExportHandler     *handlers.ExportHandler
	CheckHandler      *handlers.CheckHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	store, err := openStore(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	// Ensure schema exists
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	dictionaryService := services.NewDictionaryService(store, logger)
	traitService := services.NewTraitService(dictionaryService)
	importService := services.NewImportService(store, logger)

	deps := &Deps{
		Config:            cfg,
		Logger:            logger,
		DictionaryHandler: handlers.NewDictionaryHandler(dictionaryService),
		ImportHandler:     handlers.NewImportHandler(importService, dictionaryService),
		ExportHandler:     handlers.NewExportHandler(dictionaryService),
		CheckHandler:      handlers.NewCheckHandler(traitService),
	}

	return fn(deps)
}

// openStore is the handlers.StoreOpener backed by SQLite.
func openStore(cfg config.SQLiteConfig) (ports.DictionaryStore, error) {
	repo, err := sqlite.NewRepository(cfg)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// newLogger builds the logger, applying --log-level over the config.
func newLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	if globalLogLevel != "" {
		cfg.Level = globalLogLevel
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
