package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"passat/internal/model"
)

// SimpleWriter outputs human-readable text tables, one per counter, in the
// classic layout: a title with an underline, then one row per key with the
// count and its share of the grand total.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly into
// files and other tools.
type SimpleWriter struct {
	baseWriter

	// limit is the number of rows shown per table.
	limit int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithTopLimit sets the number of rows per table. Values below 1 show all
// rows.
func WithTopLimit(limit int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.limit = limit
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		limit:      10,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)

	if report.CategoriesEnabled {
		w.writeTable(&sb, "Categories", report.Categories, report.LinesRead)
		w.writeTable(&sb, "Password base words:", report.BaseWords, report.LinesRead)
	}
	w.writeTable(&sb, "Password length frequency:", report.Lengths, report.LinesRead)
	w.writeTable(&sb, "Password values:", report.Passwords, report.LinesRead)
	w.writeTable(&sb, "Charsets and sequences:", report.Taxonomy, report.LinesRead)
	w.writeTable(&sb, "Password patterns:", report.Patterns, report.LinesRead)

	if report.FreqEnabled {
		w.writeTable(&sb, "Most frequent alpha chars:", report.AlphaChars, report.Totals.Alpha)
		w.writeTable(&sb, "Most frequent num chars:", report.NumChars, report.Totals.Num)
		w.writeTable(&sb, "Most frequent symbol chars:", report.SymbolChars, report.Totals.Symbol)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the grand totals.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Total lines processed: %d\n", report.LinesRead)
	fmt.Fprintf(sb, "Valid passwords found: %d\n", report.ValidPasswords)
	if len(report.Sources) > 0 {
		fmt.Fprintf(sb, "Sources: %s\n", strings.Join(report.Sources, ", "))
	}
	if report.Duration > 0 {
		fmt.Fprintf(sb, "Elapsed: %s\n", report.Duration.Round(time.Millisecond))
	}
	sb.WriteString("\n")
}

// writeTable writes one frequency table. Percentages are relative to base,
// which is the lines-read grand total for password-level tables and the
// per-class character total for the letter-frequency tables.
func (w *SimpleWriter) writeTable(sb *strings.Builder, title string, entries []model.CounterEntry, base int) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n")

	rows := limitEntries(entries, w.limit)
	if len(rows) == 0 {
		sb.WriteString("---- no data ----\n\n")
		return
	}

	width := 0
	for _, e := range rows {
		if len(e.Key) > width {
			width = len(e.Key)
		}
	}

	for _, e := range rows {
		pct := 0.0
		if base > 0 {
			pct = 100 * float64(e.Count) / float64(base)
		}
		fmt.Fprintf(sb, "%-*s  %6d  %5.1f%%\n", width, e.Key, e.Count, pct)
	}
	sb.WriteString("\n")
}
