package types

import (
	"fmt"
	"io"
	"sync"
)

// DebugLogger provides platform-specific logging
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}

// WriterLogger writes one prefixed line per call.
type WriterLogger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewWriterLogger creates a logger writing to w. prefix is prepended to every line.
func NewWriterLogger(w io.Writer, prefix string) *WriterLogger {
	return &WriterLogger{w: w, prefix: prefix}
}

func (l *WriterLogger) Log(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, l.prefix+format+"\n", args...)
}
