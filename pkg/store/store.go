// Package store persists common-password wordlists so large lists can be
// imported once and loaded quickly afterwards.
package store

import (
	"context"
	"fmt"
	"io"
)

// Store provides persistence for common-password wordlists.
type Store interface {
	// Import adds every non-blank line of r, tagged with source. It returns
	// the number of new words added; duplicates are ignored.
	Import(ctx context.Context, r io.Reader, source string) (int, error)

	// Add stores individual words under source.
	Add(source string, words ...string) (int, error)

	// Contains checks whether word (case-insensitive) is stored.
	Contains(word string) (bool, error)

	// Count returns the number of distinct words.
	Count() (int, error)

	// Sources reports word counts per import source.
	Sources() ([]SourceStat, error)

	// WriteTo streams every word, one per line.
	WriteTo(w io.Writer) (int64, error)

	// Close closes the underlying database.
	Close() error
}

// SourceStat is the number of words imported from one source.
type SourceStat struct {
	Source string `json:"source"`
	Words  int    `json:"words"`
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" returns a MemoryStore, anything else a
// SQLite database at that path.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
