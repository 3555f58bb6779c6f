// Package dictionary holds the read-only set of known-weak passwords.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/praetorian-inc/pwmeter/pkg/types"
)

const maxLineSize = 1 << 20

// Source provides a newline-delimited password list.
type Source interface {
	// Name identifies the source in log output.
	Name() string
	// Open returns a reader over the list. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is a case-insensitive membership set. It is safe for concurrent
// use and answers false for every lookup until a load has completed.
type Store struct {
	mu  sync.RWMutex
	set map[string]struct{}
	err error

	ready     chan struct{}
	readyOnce sync.Once
}

// NewStore returns an empty, not-yet-ready store.
func NewStore() *Store {
	return &Store{
		set:   make(map[string]struct{}),
		ready: make(chan struct{}),
	}
}

// NewStoreFromWords returns a ready store containing words.
func NewStoreFromWords(words ...string) *Store {
	s := NewStore()
	s.swap(buildSet(words))
	return s
}

// Load replaces the set with the passwords read from r. Each line is
// trimmed and lowercased; blank lines are skipped. On error the store is
// left unchanged.
func (s *Store) Load(r io.Reader) (int, error) {
	set, err := readSet(r)
	if err != nil {
		return 0, err
	}
	s.swap(set)
	return len(set), nil
}

// LoadString is Load over an in-memory list.
func (s *Store) LoadString(data string) int {
	n, _ := s.Load(strings.NewReader(data))
	return n
}

// LoadAsync loads src in the background. Failures are logged and leave the
// store empty; they are never returned to the caller. Ready is closed when
// the load finishes either way.
func (s *Store) LoadAsync(ctx context.Context, src Source, logger types.DebugLogger) {
	if logger == nil {
		logger = types.NoopLogger{}
	}
	go func() {
		if err := s.LoadSource(ctx, src); err != nil {
			logger.Log("dictionary %s not loaded, skipping dictionary check: %v", src.Name(), err)
			return
		}
		logger.Log("dictionary %s loaded: %d passwords", src.Name(), s.Len())
	}()
}

// LoadSource opens src and loads it synchronously. The store is marked
// ready even when loading fails.
func (s *Store) LoadSource(ctx context.Context, src Source) error {
	defer s.markReady()

	rc, err := src.Open(ctx)
	if err != nil {
		s.setErr(fmt.Errorf("opening %s: %w", src.Name(), err))
		return s.Err()
	}
	defer rc.Close()

	if _, err := s.Load(rc); err != nil {
		s.setErr(fmt.Errorf("reading %s: %w", src.Name(), err))
		return s.Err()
	}
	return nil
}

// Contains reports whether password is a known common password, ignoring case.
func (s *Store) Contains(password string) bool {
	if s == nil {
		return false
	}
	key := strings.ToLower(password)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[key]
	return ok
}

// Len returns the number of distinct passwords loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.set)
}

// Ready is closed once a load has finished, successfully or not.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// IsReady reports whether Ready has been closed.
func (s *Store) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Err returns the error of the last failed source load, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) swap(set map[string]struct{}) {
	s.mu.Lock()
	s.set = set
	s.err = nil
	s.mu.Unlock()
	s.markReady()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

func readSet(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if w := Normalize(sc.Text()); w != "" {
			set[w] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

func buildSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Normalize is the canonical form used for lookups: trimmed and lowercased.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}
