package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// collectLines reads every line of src into a slice.
func collectLines(t *testing.T, src *Source) []string {
	t.Helper()
	var lines []string
	err := src.EachLine(context.Background(), func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatalf("EachLine returned error: %v", err)
	}
	return lines
}

// TestOpenFile verifies opening a regular file reports its name and size.
func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0600); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer src.Close()

	if src.Name() != path {
		t.Errorf("Name = %q, want %q", src.Name(), path)
	}
	if src.Size() != 8 {
		t.Errorf("Size = %d, want 8", src.Size())
	}

	got := collectLines(t, src)
	if want := []string{"one", "two"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

// TestOpenMissingFile verifies the error includes the source name.
func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := Open(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the source", err)
	}
}

// TestEachLine exercises line splitting and UTF-8 repair.
func TestEachLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trailing newline stripped",
			input: "alpha\nbeta\n",
			want:  []string{"alpha", "beta"},
		},
		{
			name:  "no trailing newline",
			input: "alpha\nbeta",
			want:  []string{"alpha", "beta"},
		},
		{
			name:  "empty lines preserved",
			input: "alpha\n\nbeta\n",
			want:  []string{"alpha", "", "beta"},
		},
		{
			name:  "invalid utf-8 replaced",
			input: "pa\xffss\n",
			want:  []string{"pa�ss"},
		},
		{
			name:  "empty input yields no lines",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := NewSource("test", strings.NewReader(tt.input))
			got := collectLines(t, src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestEachLineCallbackError verifies that fn errors stop iteration.
func TestEachLineCallbackError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("stop")
	src := NewSource("test", strings.NewReader("one\ntwo\nthree\n"))

	count := 0
	err := src.EachLine(context.Background(), func(string) error {
		count++
		if count == 2 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if count != 2 {
		t.Errorf("callback ran %d times, want 2", count)
	}
}

// TestEachLineContextCancel verifies that a cancelled context stops reading.
func TestEachLineContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSource("test", strings.NewReader("one\ntwo\n"))
	err := src.EachLine(ctx, func(string) error {
		t.Error("callback invoked after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
