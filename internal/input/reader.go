// Package input provides line-oriented access to audit input sources:
// regular files and standard input. Lines with invalid byte sequences are
// repaired by replacing them with U+FFFD rather than rejected, so a single
// corrupt record never aborts a run.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinName is the source name that selects standard input.
const StdinName = "-"

// maxLineSize bounds a single input line. Credential dumps occasionally
// contain multi-kilobyte garbage lines; 1 MiB is far above any real
// password while still protecting memory.
const maxLineSize = 1 << 20

// Source is one line-oriented input.
type Source struct {
	name   string
	reader io.ReadCloser
	size   int64
}

// Open opens a source by name. StdinName selects standard input.
// A missing or unreadable file is reported with the source name so the
// caller can decide whether to stop the run or continue with the next
// source.
func Open(name string) (*Source, error) {
	if name == StdinName {
		return &Source{name: StdinName, reader: io.NopCloser(os.Stdin), size: -1}, nil
	}

	f, err := os.Open(name) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", name, err)
	}

	size := int64(-1)
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
	}
	return &Source{name: name, reader: f, size: size}, nil
}

// NewSource wraps an arbitrary reader as a Source. Used by tests and by
// callers that already hold an open stream.
func NewSource(name string, r io.Reader) *Source {
	return &Source{name: name, reader: io.NopCloser(r), size: -1}
}

// Name returns the source name as given to Open.
func (s *Source) Name() string {
	return s.name
}

// Size returns the total byte size for regular files, or -1 when unknown
// (stdin, pipes). Progress displays use this to choose between a byte bar
// and a spinner.
func (s *Source) Size() int64 {
	return s.size
}

// Close releases the underlying reader. Closing a stdin source is a no-op.
func (s *Source) Close() error {
	return s.reader.Close()
}

// EachLine reads the source to completion, invoking fn for every line with
// the trailing newline stripped and invalid UTF-8 replaced by U+FFFD.
// Iteration stops early when fn or the context reports an error.
func (s *Source) EachLine(ctx context.Context, fn func(line string) error) error {
	sc := bufio.NewScanner(s.reader)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.ToValidUTF8(sc.Text(), "�")
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read input %s: %w", s.name, err)
	}
	return nil
}
