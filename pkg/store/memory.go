package store

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu    sync.RWMutex
	words map[string]string // word -> source
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		words: make(map[string]string),
	}
}

// Import adds every non-blank line of r, tagged with source.
func (m *MemoryStore) Import(ctx context.Context, r io.Reader, source string) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var words []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading wordlist: %w", err)
	}
	return m.Add(source, words...)
}

// Add stores individual words under source.
func (m *MemoryStore) Add(source string, words ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	for _, w := range words {
		w = dictionary.Normalize(w)
		if w == "" {
			continue
		}
		if _, exists := m.words[w]; exists {
			// Deduplicate - first source wins
			continue
		}
		m.words[w] = source
		added++
	}
	return added, nil
}

// Contains checks whether word is stored.
func (m *MemoryStore) Contains(word string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.words[dictionary.Normalize(word)]
	return ok, nil
}

// Count returns the number of distinct words.
func (m *MemoryStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.words), nil
}

// Sources reports word counts per import source, ordered by source.
func (m *MemoryStore) Sources() ([]SourceStat, error) {
	m.mu.RLock()
	counts := make(map[string]int)
	for _, src := range m.words {
		counts[src]++
	}
	m.mu.RUnlock()

	stats := make([]SourceStat, 0, len(counts))
	for src, n := range counts {
		stats = append(stats, SourceStat{Source: src, Words: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Source < stats[j].Source })
	return stats, nil
}

// WriteTo streams every word, one per line, in sorted order.
func (m *MemoryStore) WriteTo(w io.Writer) (int64, error) {
	m.mu.RLock()
	words := make([]string, 0, len(m.words))
	for word := range m.words {
		words = append(words, word)
	}
	m.mu.RUnlock()
	sort.Strings(words)

	bw := bufio.NewWriter(w)
	var written int64
	for _, word := range words {
		n, err := bw.WriteString(word + "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
