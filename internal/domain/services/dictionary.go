// Package services holds the dictionary registry and the use cases built on it.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/ports"
)

// Errors returned by DictionaryService.
var (
	ErrEntryNotFound    = errors.New("dictionary entry not found")
	ErrEntryExists      = errors.New("dictionary entry already exists")
	ErrProtectedEntry   = errors.New("built-in attribute entries cannot be removed or replaced")
	ErrUnknownCategory  = errors.New("unknown dictionary category")
	ErrCategoryRequired = errors.New("category is required")
)

// DictionaryService manages the stored data dictionaries and serves
// cached read-only views of them.
type DictionaryService struct {
	store  ports.DictionaryStore
	logger *slog.Logger

	cache   map[string]*entities.Dictionary // keyed by normalized category
	cacheMu sync.RWMutex
}

// NewDictionaryService creates a new DictionaryService.
func NewDictionaryService(store ports.DictionaryStore, logger *slog.Logger) *DictionaryService {
	return &DictionaryService{
		store:  store,
		logger: logger,
		cache:  make(map[string]*entities.Dictionary),
	}
}

// LoadDefaults seeds the built-in Attribute entries, and the Skill entries
// when withSkills is set. Existing entries are left alone. It returns the
// number of entries written.
func (s *DictionaryService) LoadDefaults(ctx context.Context, withSkills bool) (int, error) {
	defaults := entities.DefaultAttributeEntries
	if withSkills {
		defaults = entities.DefaultEntries()
	}

	existing, err := s.store.ListEntries(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing entries: %w", err)
	}
	existingSet := make(map[string]bool, len(existing))
	for i := range existing {
		existingSet[entryID(existing[i].Category, existing[i].Name)] = true
	}

	var seeded int
	for i := range defaults {
		e := defaults[i]
		if existingSet[entryID(e.Category, e.Name)] {
			continue
		}
		if err := s.store.SaveEntry(ctx, &e); err != nil {
			return seeded, fmt.Errorf("seeding %s %s: %w", e.Category, e.Name, err)
		}
		seeded++
	}

	if seeded > 0 {
		if err := s.store.LogAction(ctx, entities.ActionDefaultsSeeded, "", "", map[string]any{"count": seeded}); err != nil {
			return seeded, fmt.Errorf("logging seed: %w", err)
		}
		s.logger.Info("seeded default dictionary entries", "count", seeded)
	}
	s.Invalidate()
	return seeded, nil
}

// List returns the entries in category, or every entry when category is empty.
func (s *DictionaryService) List(ctx context.Context, category string) ([]entities.DictionaryEntry, error) {
	return s.store.ListEntries(ctx, category)
}

// Categories returns the stored categories.
func (s *DictionaryService) Categories(ctx context.Context) ([]string, error) {
	return s.store.ListCategories(ctx)
}

// Get returns an entry by its full name, or nil if not found.
func (s *DictionaryService) Get(ctx context.Context, category, name string) (*entities.DictionaryEntry, error) {
	return s.store.FindEntry(ctx, category, name)
}

// Add creates a new entry. It fails with ErrEntryExists if the name is taken.
func (s *DictionaryService) Add(ctx context.Context, entry entities.DictionaryEntry) error {
	entry.Category = entities.NormalizeCategory(entry.Category)
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}

	existing, err := s.store.FindEntry(ctx, entry.Category, entry.Name)
	if err != nil {
		return fmt.Errorf("checking entry: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: %s %q", ErrEntryExists, entry.Category, existing.Name)
	}

	if err := s.store.SaveEntry(ctx, &entry); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	if err := s.store.LogAction(ctx, entities.ActionEntryAdded, entry.Category, entry.Name, nil); err != nil {
		return fmt.Errorf("logging add: %w", err)
	}

	s.logger.Debug("dictionary entry added", "category", entry.Category, "name", entry.Name)
	s.Invalidate()
	return nil
}

// Remove deletes an entry. Built-in Attributes cannot be removed.
func (s *DictionaryService) Remove(ctx context.Context, category, name string) error {
	if entities.IsProtectedEntry(category, name) {
		return fmt.Errorf("%w: %s", ErrProtectedEntry, name)
	}

	existing, err := s.store.FindEntry(ctx, category, name)
	if err != nil {
		return fmt.Errorf("checking entry: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s %q", ErrEntryNotFound, category, name)
	}

	if err := s.store.DeleteEntry(ctx, existing.Category, existing.Name); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if err := s.store.LogAction(ctx, entities.ActionEntryRemoved, existing.Category, existing.Name, nil); err != nil {
		return fmt.Errorf("logging remove: %w", err)
	}

	s.logger.Debug("dictionary entry removed", "category", existing.Category, "name", existing.Name)
	s.Invalidate()
	return nil
}

// Dictionary returns a read-only view of a category. It fails with
// ErrUnknownCategory if the category has no entries.
func (s *DictionaryService) Dictionary(ctx context.Context, category string) (*entities.Dictionary, error) {
	key := entities.NormalizeCategory(category)
	if key == "" {
		return nil, ErrCategoryRequired
	}

	// Fast path: check cache with read lock
	s.cacheMu.RLock()
	d, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if ok {
		return d, nil
	}

	// Slow path: need to populate cache
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Double-check: another goroutine may have populated the cache
	if d, ok := s.cache[key]; ok {
		return d, nil
	}

	entries, err := s.store.ListEntries(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("listing %s entries: %w", key, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	d, err = entities.NewDictionary(key, entries)
	if err != nil {
		return nil, fmt.Errorf("building %s dictionary: %w", key, err)
	}
	s.cache[key] = d
	return d, nil
}

// Canonicalize resolves a partial name within a category.
func (s *DictionaryService) Canonicalize(ctx context.Context, category, candidate string) (string, error) {
	d, err := s.Dictionary(ctx, category)
	if err != nil {
		return "", err
	}
	return d.Canonicalize(candidate)
}

// Resolve canonicalizes candidate and returns the matching entry.
func (s *DictionaryService) Resolve(ctx context.Context, category, candidate string) (entities.DictionaryEntry, error) {
	d, err := s.Dictionary(ctx, category)
	if err != nil {
		return entities.DictionaryEntry{}, err
	}
	name, err := d.Canonicalize(candidate)
	if err != nil {
		return entities.DictionaryEntry{}, err
	}
	entry, _ := d.Lookup(name)
	return entry, nil
}

// Tags returns the tags of a named entry, or nil if it is not in the category.
func (s *DictionaryService) Tags(ctx context.Context, category, name string) ([]string, error) {
	d, err := s.Dictionary(ctx, category)
	if err != nil {
		return nil, err
	}
	return d.Tags(name), nil
}

// AuditLog returns recent dictionary writes, newest first.
func (s *DictionaryService) AuditLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	return s.store.FindAuditLog(ctx, action, limit)
}

// Invalidate drops every cached dictionary view.
func (s *DictionaryService) Invalidate() {
	s.cacheMu.Lock()
	s.cache = make(map[string]*entities.Dictionary)
	s.cacheMu.Unlock()
}

// entryID is the identity of an entry within the store.
func entryID(category, name string) string {
	return entities.NormalizeCategory(category) + "\x00" + entities.NormalizeName(name)
}
