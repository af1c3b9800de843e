// Package sqlite provides a SQLite implementation of the DictionaryStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = func() time.Time { return time.Now().UTC() }

// Repository implements ports.DictionaryStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeoutMS)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Data dictionary entries, one row per canonical name per category
	CREATE TABLE IF NOT EXISTS dictionary_entries (
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		tags TEXT,
		allowed TEXT,
		templates TEXT,
		prerequisite TEXT,
		prereq_text TEXT,
		book TEXT,
		note TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY(category, normalized_name)
	);
	CREATE INDEX IF NOT EXISTS idx_dictionary_entries_category ON dictionary_entries(category);

	-- Audit log (tracks all dictionary writes)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		category TEXT,
		name TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveEntry saves or replaces a dictionary entry. The original created_at
// is kept on replace.
func (r *Repository) SaveEntry(ctx context.Context, entry *entities.DictionaryEntry) error {
	tags, err := marshalList(entry.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}
	templates, err := marshalList(entry.Templates)
	if err != nil {
		return fmt.Errorf("marshaling templates: %w", err)
	}
	var allowed sql.NullString
	if !entry.Values.IsZero() {
		data, err := json.Marshal(entry.Values)
		if err != nil {
			return fmt.Errorf("marshaling allowed values: %w", err)
		}
		allowed = sql.NullString{String: string(data), Valid: true}
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := `
		INSERT INTO dictionary_entries (
			category, name, normalized_name, tags, allowed, templates,
			prerequisite, prereq_text, book, note, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(category, normalized_name) DO UPDATE SET
			name = excluded.name,
			tags = excluded.tags,
			allowed = excluded.allowed,
			templates = excluded.templates,
			prerequisite = excluded.prerequisite,
			prereq_text = excluded.prereq_text,
			book = excluded.book,
			note = excluded.note
	`
	_, err = r.db.ExecContext(ctx, query,
		entities.NormalizeCategory(entry.Category),
		entry.Name,
		entities.NormalizeName(entry.Name),
		tags,
		allowed,
		templates,
		nullString(string(entry.Prerequisite)),
		nullString(entry.PrereqText),
		nullString(entry.Book),
		nullString(entry.Note),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

const entryColumns = `category, name, tags, allowed, templates, prerequisite, prereq_text, book, note, created_at`

// FindEntry finds an entry by category and name (case-insensitive).
func (r *Repository) FindEntry(ctx context.Context, category, name string) (*entities.DictionaryEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM dictionary_entries
		WHERE category = ? AND normalized_name = ?
	`
	row := r.db.QueryRowContext(ctx, query, entities.NormalizeCategory(category), entities.NormalizeName(name))

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries lists the entries in a category, or every entry when category is empty.
func (r *Repository) ListEntries(ctx context.Context, category string) ([]entities.DictionaryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM dictionary_entries`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, entities.NormalizeCategory(category))
	}
	query += ` ORDER BY category ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.DictionaryEntry, 0, 32)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// ListCategories returns the distinct categories in sorted order.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM dictionary_entries ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteEntry deletes an entry by category and name.
func (r *Repository) DeleteEntry(ctx context.Context, category, name string) error {
	query := `DELETE FROM dictionary_entries WHERE category = ? AND normalized_name = ?`
	if _, err := r.db.ExecContext(ctx, query, entities.NormalizeCategory(category), entities.NormalizeName(name)); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action, category, name string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `INSERT INTO audit_log (action, category, name, details, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, nullString(category), nullString(name), detailsJSON, timeNow())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `SELECT id, action, category, name, details, created_at FROM audit_log`
	var args []any
	if action != "" {
		query += ` WHERE action = ?`
		args = append(args, action)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	if limit > 0 {
		entries = make([]entities.AuditEntry, 0, limit)
	}

	for rows.Next() {
		var entry entities.AuditEntry
		var category, name, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&category,
			&name,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.Category = category.String
		entry.Name = name.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*entities.DictionaryEntry, error) {
	var entry entities.DictionaryEntry
	var tags, allowed, templates, prerequisite, prereqText, book, note sql.NullString

	err := row.Scan(
		&entry.Category,
		&entry.Name,
		&tags,
		&allowed,
		&templates,
		&prerequisite,
		&prereqText,
		&book,
		&note,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	if entry.Tags, err = unmarshalList(tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags of %s: %w", entry.Name, err)
	}
	if entry.Templates, err = unmarshalList(templates); err != nil {
		return nil, fmt.Errorf("unmarshaling templates of %s: %w", entry.Name, err)
	}
	if allowed.Valid && allowed.String != "" {
		if err := json.Unmarshal([]byte(allowed.String), &entry.Values); err != nil {
			return nil, fmt.Errorf("unmarshaling allowed values of %s: %w", entry.Name, err)
		}
	}

	entry.Prerequisite = entities.Prerequisite(prerequisite.String)
	entry.PrereqText = prereqText.String
	entry.Book = book.String
	entry.Note = note.String
	return &entry, nil
}

func marshalList(items []string) (sql.NullString, error) {
	if len(items) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalList(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s.String), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
