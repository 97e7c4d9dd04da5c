// Package history records every export step in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/unipack/internal/migrations"
)

// Export steps.
const (
	StepMirror  = "mirror"
	StepLegacy  = "legacy"
	StepCodegen = "codegen"
)

// Step outcomes.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Entry represents a history record.
type Entry struct {
	ID           int64     `json:"id"`
	DescriptorID string    `json:"descriptor_id"`
	PackageName  string    `json:"package_name"`
	Version      string    `json:"version"`
	Step         string    `json:"step"`
	Status       string    `json:"status"`
	Destination  string    `json:"destination,omitempty"`
	Files        int       `json:"files"`
	Bytes        int64     `json:"bytes"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter specifies criteria for listing history.
type Filter struct {
	DescriptorID *string
	Step         *string
	Status       *string
	Limit        int
}

// Store persists history records.
type Store struct {
	db *sql.DB
}

// NewStore creates a history store on an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if needed) the history database at path and applies
// the schema. Use ":memory:" for a throwaway database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return db, nil
}

// Add inserts a new history entry.
func (s *Store) Add(e *Entry) error {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		INSERT INTO history (descriptor_id, package_name, version, step, status, destination, files, bytes, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.DescriptorID, e.PackageName, e.Version, e.Step, e.Status, e.Destination, e.Files, e.Bytes, e.Error, now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	return nil
}

// List returns history entries matching the filter.
// Results are ordered by most recent first.
func (s *Store) List(f Filter) ([]*Entry, error) {
	var conditions []string
	var args []any

	if f.DescriptorID != nil {
		conditions = append(conditions, "descriptor_id = ? COLLATE NOCASE")
		args = append(args, *f.DescriptorID)
	}
	if f.Step != nil {
		conditions = append(conditions, "step = ?")
		args = append(args, *f.Step)
	}
	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, descriptor_id, package_name, version, step, status, destination, files, bytes, error, created_at
		FROM history ` + whereClause + ` ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.DescriptorID, &e.PackageName, &e.Version, &e.Step, &e.Status,
			&e.Destination, &e.Files, &e.Bytes, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return results, nil
}
