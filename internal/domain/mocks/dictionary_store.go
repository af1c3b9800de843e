// Package mocks provides in-memory fakes of the domain ports for tests.
package mocks

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
)

type entryKey struct {
	category string
	name     string
}

// DictionaryStore is an in-memory implementation of ports.DictionaryStore.
// Setting Err makes every call fail with it.
type DictionaryStore struct {
	Entries map[entryKey]entities.DictionaryEntry
	Audit   []entities.AuditEntry
	Err     error

	mu sync.Mutex
}

// NewDictionaryStore creates an empty mock store.
func NewDictionaryStore() *DictionaryStore {
	return &DictionaryStore{
		Entries: make(map[entryKey]entities.DictionaryEntry),
	}
}

func keyOf(category, name string) entryKey {
	return entryKey{category: entities.NormalizeCategory(category), name: entities.NormalizeName(name)}
}

// EnsureSchema is a no-op.
func (m *DictionaryStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close is a no-op.
func (m *DictionaryStore) Close() error {
	return nil
}

// SaveEntry stores a copy of entry.
func (m *DictionaryStore) SaveEntry(_ context.Context, entry *entities.DictionaryEntry) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e := *entry
	e.Category = entities.NormalizeCategory(e.Category)
	if existing, ok := m.Entries[keyOf(e.Category, e.Name)]; ok {
		e.CreatedAt = existing.CreatedAt
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.Entries[keyOf(e.Category, e.Name)] = e
	return nil
}

// FindEntry returns a copy of the stored entry, or nil.
func (m *DictionaryStore) FindEntry(_ context.Context, category, name string) (*entities.DictionaryEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.Entries[keyOf(category, name)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// ListEntries lists entries sorted by category then name.
func (m *DictionaryStore) ListEntries(_ context.Context, category string) ([]entities.DictionaryEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	want := entities.NormalizeCategory(category)
	result := make([]entities.DictionaryEntry, 0, len(m.Entries))
	for k, e := range m.Entries {
		if category == "" || k.category == want {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, func(a, b entities.DictionaryEntry) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return result, nil
}

// ListCategories returns the distinct categories.
func (m *DictionaryStore) ListCategories(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var cats []string
	for _, e := range m.Entries {
		if !slices.Contains(cats, e.Category) {
			cats = append(cats, e.Category)
		}
	}
	slices.Sort(cats)
	return cats, nil
}

// DeleteEntry removes an entry.
func (m *DictionaryStore) DeleteEntry(_ context.Context, category, name string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Entries, keyOf(category, name))
	return nil
}

// LogAction records an audit entry in memory.
func (m *DictionaryStore) LogAction(_ context.Context, action, category, name string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		Category:  category,
		Name:      name,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// FindAuditLog returns recorded entries newest first.
func (m *DictionaryStore) FindAuditLog(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if action != "" && m.Audit[i].Action != action {
			continue
		}
		result = append(result, m.Audit[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
