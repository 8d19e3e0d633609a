package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"passat/internal/model"
)

// sampleReport builds a small but fully populated run report.
func sampleReport() *model.RunReport {
	return &model.RunReport{
		Sources:           []string{"dump.txt"},
		StartedAt:         time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		Duration:          1500 * time.Millisecond,
		LinesRead:         10,
		ValidPasswords:    8,
		FreqEnabled:       true,
		CategoriesEnabled: true,
		Categories: []model.CounterEntry{
			{Key: "seasons", Count: 4},
			{Key: "uncategorized", Count: 4},
		},
		BaseWords: []model.CounterEntry{
			{Key: "summer", Count: 4},
		},
		Lengths: []model.CounterEntry{
			{Key: "10", Count: 5},
			{Key: "6", Count: 3},
		},
		Passwords: []model.CounterEntry{
			{Key: "summer2020", Count: 3},
			{Key: "hunter2", Count: 1},
		},
		Taxonomy: []model.CounterEntry{
			{Key: "Has: All lowercase", Count: 5},
		},
		Patterns: []model.CounterEntry{
			{Key: "aaaaaa1111", Count: 5},
		},
		AlphaChars:  []model.CounterEntry{{Key: "s", Count: 8}, {Key: "u", Count: 4}},
		NumChars:    []model.CounterEntry{{Key: "2", Count: 6}, {Key: "0", Count: 6}},
		SymbolChars: []model.CounterEntry{{Key: "!", Count: 2}},
		Totals:      model.CharTotals{Chars: 26, Alpha: 12, Num: 12, Symbol: 2},
	}
}

// TestSimpleWriter verifies the text report layout: header totals, table
// titles, row percentages, and the per-class bases for character tables.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewSimpleWriter(&buf)

	n, err := w.Write(sampleReport())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, buffer has %d", n, buf.Len())
	}

	out := buf.String()

	t.Run("header totals", func(t *testing.T) {
		t.Parallel()
		for _, want := range []string{
			"Total lines processed: 10",
			"Valid passwords found: 8",
			"Sources: dump.txt",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("table titles", func(t *testing.T) {
		t.Parallel()
		for _, want := range []string{
			"Categories",
			"Password base words:",
			"Password length frequency:",
			"Password values:",
			"Charsets and sequences:",
			"Password patterns:",
			"Most frequent alpha chars:",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing table %q", want)
			}
		}
	})

	t.Run("percentages use lines read as base", func(t *testing.T) {
		t.Parallel()
		// 3 of 10 lines: summer2020.
		if !strings.Contains(out, "30.0%") {
			t.Errorf("expected 30.0%% row, got:\n%s", out)
		}
	})

	t.Run("char tables use per-class totals", func(t *testing.T) {
		t.Parallel()
		// 8 of 12 alpha chars is 66.7%, not 80% of lines read.
		if !strings.Contains(out, "66.7%") {
			t.Errorf("expected 66.7%% alpha row, got:\n%s", out)
		}
	})
}

// TestSimpleWriterEmptyTables verifies the placeholder for empty counters
// and the omission of disabled sections.
func TestSimpleWriterEmptyTables(t *testing.T) {
	t.Parallel()

	report := &model.RunReport{LinesRead: 0, ValidPasswords: 0}

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "---- no data ----") {
		t.Error("empty table placeholder missing")
	}
	if strings.Contains(out, "Categories") {
		t.Error("categories section shown although categorization was disabled")
	}
	if strings.Contains(out, "alpha chars") {
		t.Error("char tables shown although freq mode was disabled")
	}
}

// TestSimpleWriterTopLimit verifies row truncation.
func TestSimpleWriterTopLimit(t *testing.T) {
	t.Parallel()

	report := &model.RunReport{
		LinesRead:      3,
		ValidPasswords: 3,
		Lengths: []model.CounterEntry{
			{Key: "8", Count: 2},
			{Key: "6", Count: 1},
		},
	}

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf, WithTopLimit(1)).Write(report); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "8") {
		t.Error("top row missing")
	}
	if strings.Contains(out, "\n6 ") {
		t.Errorf("row beyond the limit shown:\n%s", out)
	}
}

// TestMultiWriter verifies fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewSimpleWriter(&b))

	n, err := mw.Write(sampleReport())
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if a.String() != b.String() {
		t.Error("writers received different output")
	}
	if n != a.Len()+b.Len() {
		t.Errorf("total = %d, want %d", n, a.Len()+b.Len())
	}
}

// TestTruncateString verifies rune-safe truncation.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{name: "short string unchanged", in: "abc", maxLen: 10, want: "abc"},
		{name: "exact length unchanged", in: "abcde", maxLen: 5, want: "abcde"},
		{name: "long string gets ellipsis", in: "abcdefgh", maxLen: 6, want: "abc..."},
		{name: "tiny limit hard cut", in: "abcdefgh", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
