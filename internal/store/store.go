// Package store persists the checked set of a selection tree across
// sessions, keyed by workspace root.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	root TEXT NOT NULL,
	path TEXT NOT NULL,
	PRIMARY KEY (root, path)
);
`

// Store holds saved selections in a SQLite database.
type Store struct {
	DB *sqlx.DB
}

// Open opens (or creates) the database at dbPath and ensures the
// schema exists.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selection store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize selection store: %w", err)
	}
	return &Store{DB: db}, nil
}

// Load returns the saved checked set for root. An unknown root yields
// an empty map, not an error.
func (s *Store) Load(root string) (map[string]bool, error) {
	var paths []string
	err := s.DB.Select(&paths, "SELECT path FROM selections WHERE root = ? ORDER BY path", root)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection for %s: %w", root, err)
	}

	checked := make(map[string]bool, len(paths))
	for _, path := range paths {
		checked[path] = true
	}
	return checked, nil
}

// Save replaces the saved checked set for root with the checked entries
// of the given map.
func (s *Store) Save(root string, checked map[string]bool) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM selections WHERE root = ?", root); err != nil {
		return fmt.Errorf("failed to clear selection for %s: %w", root, err)
	}
	for path, v := range checked {
		if !v {
			continue
		}
		if _, err := tx.Exec("INSERT INTO selections (root, path) VALUES (?, ?)", root, path); err != nil {
			return fmt.Errorf("failed to save selection for %s: %w", root, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
