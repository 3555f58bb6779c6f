package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
)

// maxArchiveSize bounds how much of a .7z archive is buffered. 7z needs
// random access, so remote archives are read fully into memory.
const maxArchiveSize = 512 << 20

type decompressor func(io.ReadCloser) (io.ReadCloser, error)

// withArchive wraps src with a decompressor chosen by its name's suffix.
func withArchive(src dictionary.Source) dictionary.Source {
	var d decompressor
	switch archiveExt(src.Name()) {
	case ".gz":
		d = gunzip
	case ".zst":
		d = unzstd
	case ".7z":
		d = un7z
	default:
		return src
	}
	return &archiveSource{Source: src, decompress: d}
}

// archiveExt returns the extension of the last path element, ignoring
// any "@ref" or query suffix.
func archiveExt(name string) string {
	if i := strings.IndexAny(name, "?@"); i >= 0 && strings.Contains(name, "://") {
		name = name[:i]
	}
	for _, ext := range []string{".gz", ".zst", ".7z"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return ext
		}
	}
	return ""
}

type archiveSource struct {
	dictionary.Source
	decompress decompressor
}

func (a *archiveSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := a.Source.Open(ctx)
	if err != nil {
		return nil, err
	}
	out, err := a.decompress(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("decompressing %s: %w", a.Name(), err)
	}
	return out, nil
}

// chainCloser closes the decompressor and then the underlying stream.
type chainCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func gunzip(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &chainCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
}

func unzstd(rc io.ReadCloser) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &chainCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), rc}}, nil
}

// un7z concatenates every regular file in the archive.
func un7z(rc io.ReadCloser) (io.ReadCloser, error) {
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxArchiveSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("archive exceeds %d bytes", maxArchiveSize)
	}

	zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	go func() {
		for _, f := range zr.File {
			if f.FileInfo().IsDir() {
				continue
			}
			if err := copyEntry(pw, f); err != nil {
				pw.CloseWithError(fmt.Errorf("%s: %w", f.Name, err))
				return
			}
		}
		pw.Close()
	}()
	return pr, nil
}

func copyEntry(w io.Writer, f *sevenzip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
