package handlers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenomain/PyGMCCG/internal/domain/mocks"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
)

// testEnv wires a seeded in-memory dictionary stack.
type testEnv struct {
	store        *mocks.DictionaryStore
	dictionaries *services.DictionaryService
	traits       *services.TraitService
	imports      *services.ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := mocks.NewDictionaryStore()
	dictionaries := services.NewDictionaryService(store, logger)
	_, err := dictionaries.LoadDefaults(context.Background(), true)
	require.NoError(t, err)

	return &testEnv{
		store:        store,
		dictionaries: dictionaries,
		traits:       services.NewTraitService(dictionaries),
		imports:      services.NewImportService(store, logger),
	}
}
