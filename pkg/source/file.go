package source

import (
	"context"
	"io"
	"os"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
)

type fileSource struct {
	path string
}

// File reads a local newline-delimited list.
func File(path string) dictionary.Source {
	return &fileSource{path: path}
}

func (f *fileSource) Name() string { return f.path }

func (f *fileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(f.path)
}
