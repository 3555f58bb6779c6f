package store

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	_ "modernc.org/sqlite"
)

// importBatchSize is the number of rows inserted per transaction.
const importBatchSize = 5000

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store, creating the file if needed.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Import adds every non-blank line of r, tagged with source.
func (s *SQLiteStore) Import(ctx context.Context, r io.Reader, source string) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	added := 0
	batch := make([]string, 0, importBatchSize)
	flush := func() error {
		n, err := s.insert(ctx, source, batch)
		added += n
		batch = batch[:0]
		return err
	}

	for sc.Scan() {
		w := dictionary.Normalize(sc.Text())
		if w == "" {
			continue
		}
		batch = append(batch, w)
		if len(batch) == importBatchSize {
			if err := flush(); err != nil {
				return added, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return added, fmt.Errorf("reading wordlist: %w", err)
	}
	if err := flush(); err != nil {
		return added, err
	}
	return added, nil
}

// Add stores individual words under source.
func (s *SQLiteStore) Add(source string, words ...string) (int, error) {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if w = dictionary.Normalize(w); w != "" {
			normalized = append(normalized, w)
		}
	}
	return s.insert(context.Background(), source, normalized)
}

func (s *SQLiteStore) insert(ctx context.Context, source string, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	// Start transaction for efficiency
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO passwords (word, source) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		res, err := stmt.ExecContext(ctx, w, source)
		if err != nil {
			return 0, fmt.Errorf("inserting password: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

// Contains checks whether word is stored.
func (s *SQLiteStore) Contains(word string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM passwords WHERE word = ?", dictionary.Normalize(word)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking password existence: %w", err)
	}
	return count > 0, nil
}

// Count returns the number of distinct words.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM passwords").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting passwords: %w", err)
	}
	return count, nil
}

// Sources reports word counts per import source, ordered by source.
func (s *SQLiteStore) Sources() ([]SourceStat, error) {
	rows, err := s.db.Query(`
		SELECT source, COUNT(*)
		FROM passwords
		GROUP BY source
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var stats []SourceStat
	for rows.Next() {
		var st SourceStat
		if err := rows.Scan(&st.Source, &st.Words); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return stats, nil
}

// WriteTo streams every word, one per line.
func (s *SQLiteStore) WriteTo(w io.Writer) (int64, error) {
	rows, err := s.db.Query("SELECT word FROM passwords")
	if err != nil {
		return 0, fmt.Errorf("querying passwords: %w", err)
	}
	defer rows.Close()

	bw := bufio.NewWriter(w)
	var written int64
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return written, fmt.Errorf("scanning password: %w", err)
		}
		n, err := bw.WriteString(word + "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	if err := rows.Err(); err != nil {
		return written, fmt.Errorf("iterating passwords: %w", err)
	}

	return written, bw.Flush()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
