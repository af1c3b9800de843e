package entities

import "time"

// Audit actions recorded for dictionary writes.
const (
	ActionEntryAdded     = "entry_added"
	ActionEntryUpdated   = "entry_updated"
	ActionEntryRemoved   = "entry_removed"
	ActionImportBatch    = "import_batch"
	ActionDefaultsSeeded = "defaults_seeded"
)

// AuditEntry represents a logged dictionary write.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	Category  string         `json:"category,omitempty"`
	Name      string         `json:"name,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
