// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
)

// DictionaryStore defines persistence for data dictionary entries.
// Names are matched by their normalized form (see entities.NormalizeName).
type DictionaryStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error

	// SaveEntry inserts an entry or replaces the one with the same
	// category and normalized name.
	SaveEntry(ctx context.Context, entry *entities.DictionaryEntry) error

	// FindEntry returns the entry, or nil if not found.
	FindEntry(ctx context.Context, category, name string) (*entities.DictionaryEntry, error)

	// ListEntries lists entries ordered by name. An empty category lists all
	// entries ordered by category, then name.
	ListEntries(ctx context.Context, category string) ([]entities.DictionaryEntry, error)

	// ListCategories returns the distinct categories in sorted order.
	ListCategories(ctx context.Context) ([]string, error)

	// DeleteEntry removes an entry. Deleting a missing entry is not an error.
	DeleteEntry(ctx context.Context, category, name string) error

	// LogAction appends to the audit log.
	LogAction(ctx context.Context, action, category, name string, details map[string]any) error

	// FindAuditLog returns audit entries newest first. An empty action
	// matches every action; limit <= 0 means no limit.
	FindAuditLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
