package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newSeededService(t *testing.T) (*DictionaryService, *mocks.DictionaryStore) {
	t.Helper()
	store := mocks.NewDictionaryStore()
	svc := NewDictionaryService(store, discardLogger())
	_, err := svc.LoadDefaults(context.Background(), true)
	require.NoError(t, err)
	return svc, store
}

func TestDictionaryService_LoadDefaults(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewDictionaryStore()
	svc := NewDictionaryService(store, discardLogger())

	n, err := svc.LoadDefaults(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	n, err = svc.LoadDefaults(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 24, n, "only the missing skills are written")

	n, err = svc.LoadDefaults(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"attribute", "skill"}, cats)

	audit, err := svc.AuditLog(ctx, entities.ActionDefaultsSeeded, 0)
	require.NoError(t, err)
	assert.Len(t, audit, 2)
}

func TestDictionaryService_LoadDefaults_StoreError(t *testing.T) {
	store := mocks.NewDictionaryStore()
	store.Err = errors.New("disk full")
	svc := NewDictionaryService(store, discardLogger())

	_, err := svc.LoadDefaults(context.Background(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDictionaryService_Add(t *testing.T) {
	ctx := context.Background()
	svc, store := newSeededService(t)

	err := svc.Add(ctx, entities.DictionaryEntry{
		Category: "Merit",
		Name:     "Resources",
		Tags:     []string{"Social"},
		Values:   entities.AllowedValues{Discrete: []int{1, 2, 3, 4, 5}},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "merit", "resources")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Resources", got.Name)
	assert.Equal(t, "merit", got.Category)

	err = svc.Add(ctx, entities.DictionaryEntry{Category: "merit", Name: "RESOURCES"})
	assert.ErrorIs(t, err, ErrEntryExists)

	err = svc.Add(ctx, entities.DictionaryEntry{Category: "merit", Name: ""})
	assert.ErrorContains(t, err, "invalid entry")

	audit, err := store.FindAuditLog(ctx, entities.ActionEntryAdded, 0)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "Resources", audit[0].Name)
}

func TestDictionaryService_Add_AttributeCategoryIsClosed(t *testing.T) {
	ctx := context.Background()
	svc, store := newSeededService(t)
	traits := NewTraitService(svc)

	for _, name := range []string{"Power", "Strider"} {
		err := svc.Add(ctx, entities.DictionaryEntry{Category: "attribute", Name: name})
		assert.ErrorIs(t, err, entities.ErrNotAnAttribute, name)
	}

	got, err := store.FindEntry(ctx, "attribute", "Power")
	require.NoError(t, err)
	assert.Nil(t, got)

	a, err := traits.NewAttribute(ctx, "Str", 3)
	require.NoError(t, err)
	assert.Equal(t, "Strength", a.Name())
	assert.Equal(t, []string{entities.TagPhysical, entities.TagForce}, a.Tags())
}

func TestDictionaryService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	err := svc.Remove(ctx, "attribute", "Strength")
	assert.ErrorIs(t, err, ErrProtectedEntry)

	err = svc.Remove(ctx, "skill", "Underwater Basket Weaving")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, svc.Remove(ctx, "skill", "brawl"))
	got, err := svc.Get(ctx, "skill", "Brawl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDictionaryService_Dictionary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	d, err := svc.Dictionary(ctx, "Skill")
	require.NoError(t, err)
	assert.Equal(t, 24, d.Len())

	again, err := svc.Dictionary(ctx, "skill")
	require.NoError(t, err)
	assert.Same(t, d, again, "second call is served from cache")

	require.NoError(t, svc.Remove(ctx, "skill", "Brawl"))
	fresh, err := svc.Dictionary(ctx, "skill")
	require.NoError(t, err)
	assert.Equal(t, 23, fresh.Len(), "writes invalidate the cache")

	_, err = svc.Dictionary(ctx, "merit")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = svc.Dictionary(ctx, " ")
	assert.ErrorIs(t, err, ErrCategoryRequired)
}

func TestDictionaryService_Dictionary_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	var wg sync.WaitGroup
	results := make([]*entities.Dictionary, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := svc.Dictionary(ctx, "attribute")
			if err == nil {
				results[i] = d
			}
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		assert.Same(t, results[0], d)
	}
}

func TestDictionaryService_Canonicalize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	name, err := svc.Canonicalize(ctx, "attribute", "wit")
	require.NoError(t, err)
	assert.Equal(t, "Wits", name)

	_, err = svc.Canonicalize(ctx, "attribute", "s")
	assert.ErrorIs(t, err, entities.ErrAmbiguousMatch)

	entry, err := svc.Resolve(ctx, "skill", "firea")
	require.NoError(t, err)
	assert.Equal(t, "Firearms", entry.Name)
	assert.Equal(t, []string{entities.TagPhysical}, entry.Tags)

	tags, err := svc.Tags(ctx, "attribute", "Composure")
	require.NoError(t, err)
	assert.Equal(t, []string{entities.TagSocial, entities.TagResistance}, tags)
}
