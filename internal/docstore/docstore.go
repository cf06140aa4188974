// Package docstore maintains a SQLite index of document-management records
// and answers "which records live at this path" queries. It realizes the
// downstream collaborator contract of the resolution engine: each query
// path is expanded into its representational variants and records are
// matched on location or filesystem path, merged by record UUID.
package docstore

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/TomBener/devonthink-mcp/internal/pathutil"
)

// Record is one indexed document.
type Record struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Location string `json:"location"` // group path inside the document database
	Path     string `json:"path"`     // filesystem path of the indexed file
}

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates a document index at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening document index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			uuid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT,
			path TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path) WHERE path IS NOT NULL AND path != '';
	`
	_, err := db.Exec(schema)
	return err
}

// Add upserts a record by UUID. Paths are stored canonicalized so that
// variant expansion at query time lines up with stored values.
func (d *DB) Add(rec Record) error {
	if rec.UUID == "" {
		return fmt.Errorf("record UUID must not be empty")
	}
	_, err := d.db.Exec(`
		INSERT INTO documents (uuid, name, location, path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			path = excluded.path`,
		rec.UUID, rec.Name,
		pathutil.Canonicalize(rec.Location), pathutil.Canonicalize(rec.Path))
	if err != nil {
		return fmt.Errorf("adding record %s: %w", rec.UUID, err)
	}
	return nil
}

// SearchByPath returns the records whose path or location matches any
// variant encoding of the query path. Results from all variants are merged
// by UUID, preserving the order records were indexed in.
func (d *DB) SearchByPath(p string) ([]Record, error) {
	variants := pathutil.Variants(p)
	if len(variants) == 0 {
		return nil, nil
	}

	var conds []string
	var args []interface{}
	for _, v := range variants {
		conds = append(conds, "path = ? OR instr(path, ?) > 0 OR location = ? OR instr(location, ?) > 0")
		args = append(args, v, v, v, v)
	}

	query := fmt.Sprintf(`
		SELECT uuid, name, location, path FROM documents
		WHERE %s
		ORDER BY rowid`, strings.Join(conds, " OR "))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	seen := make(map[string]bool)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UUID, &rec.Name, &rec.Location, &rec.Path); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if seen[rec.UUID] {
			continue
		}
		seen[rec.UUID] = true
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of indexed records.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}
