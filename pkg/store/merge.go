package store

import (
	"database/sql"
	"fmt"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	WordsMerged      int
	SourcesProcessed int
}

// Merge combines multiple wordlist databases into one.
// Deduplication is handled via INSERT OR IGNORE on the word key, so the
// first database to contribute a word keeps its source tag.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	dest, err := NewSQLite(cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer dest.Close()

	stats := &MergeStats{}

	for _, sourcePath := range cfg.SourcePaths {
		n, err := mergeFrom(dest.db, sourcePath)
		if err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.WordsMerged += n
		stats.SourcesProcessed++
	}

	return stats, nil
}

// mergeFrom copies passwords from a source database to the destination.
func mergeFrom(destDB *sql.DB, sourcePath string) (int, error) {
	source, err := NewSQLite(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer source.Close()

	rows, err := source.db.Query("SELECT word, source FROM passwords")
	if err != nil {
		return 0, fmt.Errorf("querying passwords: %w", err)
	}
	defer rows.Close()

	// Start transaction for efficiency
	tx, err := destDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO passwords (word, source) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	merged := 0
	for rows.Next() {
		var word, src string
		if err := rows.Scan(&word, &src); err != nil {
			return 0, fmt.Errorf("scanning password: %w", err)
		}
		res, err := stmt.Exec(word, src)
		if err != nil {
			return 0, fmt.Errorf("inserting password: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			merged++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating passwords: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return merged, nil
}
