package dictionary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Multi concatenates several sources into one list. A source that fails to
// open is logged and skipped so the remaining lists still load; the load
// fails only when every source fails.
func Multi(logger types.DebugLogger, sources ...Source) Source {
	if len(sources) == 1 {
		return sources[0]
	}
	if logger == nil {
		logger = types.NoopLogger{}
	}
	return &multiSource{sources: sources, logger: logger}
}

type multiSource struct {
	sources []Source
	logger  types.DebugLogger
}

func (m *multiSource) Name() string {
	names := make([]string, len(m.sources))
	for i, s := range m.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

func (m *multiSource) Open(ctx context.Context) (io.ReadCloser, error) {
	readers := make([]io.Reader, 0, len(m.sources)*2)
	closers := make([]io.Closer, 0, len(m.sources))
	var lastErr error
	for _, s := range m.sources {
		rc, err := s.Open(ctx)
		if err != nil {
			m.logger.Log("warning: dictionary %s skipped: %v", s.Name(), err)
			lastErr = fmt.Errorf("%s: %w", s.Name(), err)
			continue
		}
		// A newline between sources keeps a list without a trailing
		// newline from merging with the next one's first line
		readers = append(readers, rc, strings.NewReader("\n"))
		closers = append(closers, rc)
	}
	if len(closers) == 0 {
		return nil, lastErr
	}
	return &multiReadCloser{Reader: io.MultiReader(readers...), closers: closers}, nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
