// Package clipboard copies a password to the system clipboard, falling back
// to an OSC 52 terminal escape when no native clipboard is available.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// FailureMessage is shown when every copy mechanism fails.
const FailureMessage = "Copy failed. Please manually select and copy the password."

var (
	// ErrNothingToCopy is returned for an empty password.
	ErrNothingToCopy = errors.New("nothing to copy")

	// ErrCopyFailed is returned when no writer succeeded.
	ErrCopyFailed = errors.New(FailureMessage)
)

// Writer places text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteText(text string) error { return f(text) }

// System writes through the OS clipboard (pbcopy, xclip, wl-copy, Windows API).
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("no system clipboard available")
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal to set its clipboard. It works over SSH but cannot
// report whether the terminal honored the request.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) WriteText(text string) error {
	if o.Out == nil {
		return errors.New("no terminal to write to")
	}
	_, err := osc52.New(text).WriteTo(o.Out)
	return err
}

// Copier tries each writer in order until one succeeds.
type Copier struct {
	writers []Writer
}

// New creates a Copier. With no writers the copier always fails.
func New(writers ...Writer) *Copier {
	return &Copier{writers: writers}
}

// Default uses the system clipboard, then OSC 52 on term.
func Default(term io.Writer) *Copier {
	return New(System{}, OSC52{Out: term})
}

// Copy places password on the clipboard. The returned error wraps
// ErrCopyFailed together with every writer's error.
func (c *Copier) Copy(password string) error {
	if password == "" {
		return ErrNothingToCopy
	}

	var errs []error
	for _, w := range c.writers {
		if err := w.WriteText(password); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCopyFailed, errors.Join(errs...))
}
