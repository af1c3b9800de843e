package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	tables := []string{"dictionary_entries", "audit_log"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_Entries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	resources := entities.DictionaryEntry{
		Category:     "Merit",
		Name:         "Resources",
		Tags:         []string{"Social"},
		Values:       entities.AllowedValues{Discrete: []int{1, 2, 3, 4, 5}},
		Templates:    []string{"mortal", "vampire"},
		Prerequisite: "",
		PrereqText:   "None",
		Book:         "CoD 2e",
		Note:         "Disposable income",
	}
	size := entities.DictionaryEntry{
		Category: "merit",
		Name:     "Giant",
		Values:   entities.Range(3, 3),
	}

	t.Run("save and find", func(t *testing.T) {
		require.NoError(t, repo.SaveEntry(ctx, &resources))

		found, err := repo.FindEntry(ctx, "MERIT", "resources")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "merit", found.Category)
		assert.Equal(t, "Resources", found.Name)
		assert.Equal(t, []string{"Social"}, found.Tags)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, found.Values.Discrete)
		assert.Nil(t, found.Values.Min)
		assert.Equal(t, []string{"mortal", "vampire"}, found.Templates)
		assert.Equal(t, "None", found.PrereqText)
		assert.Equal(t, "CoD 2e", found.Book)
		assert.Equal(t, "Disposable income", found.Note)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("range round trip", func(t *testing.T) {
		require.NoError(t, repo.SaveEntry(ctx, &size))

		found, err := repo.FindEntry(ctx, "merit", "giant")
		require.NoError(t, err)
		require.NotNil(t, found)
		lo, hi, ok := found.Values.Bounds()
		require.True(t, ok)
		assert.Equal(t, 3, lo)
		assert.Equal(t, 3, hi)
		assert.Nil(t, found.Tags)
	})

	t.Run("not found returns nil", func(t *testing.T) {
		found, err := repo.FindEntry(ctx, "merit", "Allies")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("upsert replaces by normalized name", func(t *testing.T) {
		before, err := repo.FindEntry(ctx, "merit", "Resources")
		require.NoError(t, err)

		updated := resources
		updated.Name = "RESOURCES"
		updated.Note = "Changed"
		updated.Values = entities.AllowedValues{}
		require.NoError(t, repo.SaveEntry(ctx, &updated))

		found, err := repo.FindEntry(ctx, "merit", "resources")
		require.NoError(t, err)
		assert.Equal(t, "RESOURCES", found.Name)
		assert.Equal(t, "Changed", found.Note)
		assert.True(t, found.Values.IsZero())
		assert.True(t, before.CreatedAt.Equal(found.CreatedAt), "created_at survives replace")

		all, err := repo.ListEntries(ctx, "merit")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("list and categories", func(t *testing.T) {
		require.NoError(t, repo.SaveEntry(ctx, &entities.DefaultAttributeEntries[0]))

		all, err := repo.ListEntries(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "attribute", all[0].Category)
		assert.Equal(t, "Giant", all[1].Name)

		cats, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"attribute", "merit"}, cats)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteEntry(ctx, "merit", "giant"))
		found, err := repo.FindEntry(ctx, "merit", "Giant")
		require.NoError(t, err)
		assert.Nil(t, found)

		require.NoError(t, repo.DeleteEntry(ctx, "merit", "giant"), "deleting a missing entry is not an error")
	})
}

func TestRepository_AuditLog(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	timeNow = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	t.Cleanup(func() { timeNow = func() time.Time { return time.Now().UTC() } })

	require.NoError(t, repo.LogAction(ctx, entities.ActionEntryAdded, "merit", "Resources", nil))
	require.NoError(t, repo.LogAction(ctx, entities.ActionImportBatch, "", "", map[string]any{"imported": 3}))
	require.NoError(t, repo.LogAction(ctx, entities.ActionEntryRemoved, "merit", "Resources", nil))

	all, err := repo.FindAuditLog(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entities.ActionEntryRemoved, all[0].Action)
	assert.Equal(t, entities.ActionEntryAdded, all[2].Action)
	assert.Equal(t, "Resources", all[2].Name)
	assert.Equal(t, "merit", all[2].Category)

	imports, err := repo.FindAuditLog(ctx, entities.ActionImportBatch, 10)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Empty(t, imports[0].Category)
	assert.EqualValues(t, 3, imports[0].Details["imported"])

	limited, err := repo.FindAuditLog(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepository_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dictionary.db")

	repo, err := NewRepository(config.SQLiteConfig{Path: path, BusyTimeoutMS: 1000})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.SaveEntry(ctx, &entities.DefaultSkillEntries[0]))
	require.NoError(t, repo.Close())

	reopened, err := NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindEntry(ctx, "skill", "Academics")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{entities.TagMental}, found.Tags)
}
