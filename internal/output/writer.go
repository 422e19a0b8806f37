// Package output writes rendered aliases as shell definitions.
package output

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/rileyhilliard/kalias/internal/render"
	"github.com/rileyhilliard/kalias/internal/util"
	"golang.org/x/term"
)

//go:embed license_header
var defaultHeader string

// DefaultHeader returns the built-in license header.
func DefaultHeader() string {
	return defaultHeader
}

// Format is a shell alias syntax.
type Format string

const (
	// FormatBash writes alias name='expansion' (bash, zsh, sh).
	FormatBash Format = "bash"
	// FormatFish writes alias name 'expansion'.
	FormatFish Format = "fish"
)

// Formats lists the supported formats.
var Formats = []Format{FormatBash, FormatFish}

// ParseFormat validates a format name. Empty means FormatBash.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatBash, "zsh", "sh":
		return FormatBash, nil
	case FormatFish:
		return FormatFish, nil
	}
	return "", errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown output format '%s'", s),
		"Supported formats: bash, fish")
}

// Line formats one alias definition without a trailing newline.
func (f Format) Line(a render.Alias) string {
	if f == FormatFish {
		return fmt.Sprintf("alias %s %s", a.Name, util.ShellQuote(a.Expansion))
	}
	return fmt.Sprintf("alias %s=%s", a.Name, util.ShellQuote(a.Expansion))
}

// HeaderMode decides when the license header is written.
type HeaderMode int

const (
	// HeaderAuto writes the header only when the destination is not a terminal.
	HeaderAuto HeaderMode = iota
	// HeaderAlways writes the header unconditionally.
	HeaderAlways
	// HeaderNever suppresses the header.
	HeaderNever
)

// Writer emits alias definitions, one per line.
type Writer struct {
	w      io.Writer
	format Format
	header string
	mode   HeaderMode
}

// Option configures a Writer.
type Option func(*Writer)

// WithFormat sets the alias syntax.
func WithFormat(f Format) Option {
	return func(w *Writer) {
		w.format = f
	}
}

// WithHeader replaces the built-in header text.
func WithHeader(text string) Option {
	return func(w *Writer) {
		w.header = text
	}
}

// WithHeaderMode controls when the header is written.
func WithHeaderMode(m HeaderMode) Option {
	return func(w *Writer) {
		w.mode = m
	}
}

// NewWriter creates a writer for w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	out := &Writer{
		w:      w,
		format: FormatBash,
		header: defaultHeader,
	}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// WritesHeader reports whether WriteAll will prepend the header.
func (w *Writer) WritesHeader() bool {
	switch w.mode {
	case HeaderAlways:
		return true
	case HeaderNever:
		return false
	}
	return !IsTerminal(w.w)
}

// WriteAll writes the optional header followed by every alias and returns
// the number of aliases written.
func (w *Writer) WriteAll(aliases iter.Seq[render.Alias]) (int, error) {
	bw := bufio.NewWriter(w.w)

	if w.WritesHeader() && w.header != "" {
		// Blank line between the header and the first alias.
		header := strings.TrimRight(w.header, "\n") + "\n\n"
		if _, err := bw.WriteString(header); err != nil {
			return 0, errors.Wrap(err, "Failed to write license header")
		}
	}

	n := 0
	for a := range aliases {
		if _, err := bw.WriteString(w.format.Line(a) + "\n"); err != nil {
			return n, errors.Wrap(err, "Failed to write aliases")
		}
		n++
	}

	if err := bw.Flush(); err != nil {
		return n, errors.Wrap(err, "Failed to write aliases")
	}
	return n, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// LoadHeader reads header text from path.
func LoadHeader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Can't read license header: "+path,
			"Check the --header path, or drop it to use the built-in header.")
	}
	return string(b), nil
}
