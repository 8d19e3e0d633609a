package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"passat/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts and mermaid pie charts
type MarkdownWriter struct {
	baseWriter

	// limit is the number of rows shown per table.
	limit int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownTopLimit sets the number of rows per table.
func WithMarkdownTopLimit(limit int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.limit = limit
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		limit:      10,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)

	if report.CategoriesEnabled {
		w.writePieChart(md, report)
		w.writeTable(md, "Categories", report.Categories, report.LinesRead)
		w.writeTable(md, "Password Base Words", report.BaseWords, report.LinesRead)
	}
	w.writeTable(md, "Password Length Frequency", report.Lengths, report.LinesRead)
	w.writeTable(md, "Most Repeated Passwords", report.Passwords, report.LinesRead)
	w.writeTable(md, "Charsets and Sequences", report.Taxonomy, report.LinesRead)
	w.writeTable(md, "Password Patterns", report.Patterns, report.LinesRead)

	if report.FreqEnabled {
		w.writeTable(md, "Most Frequent Alpha Chars", report.AlphaChars, report.Totals.Alpha)
		w.writeTable(md, "Most Frequent Num Chars", report.NumChars, report.Totals.Num)
		w.writeTable(md, "Most Frequent Symbol Chars", report.SymbolChars, report.Totals.Symbol)
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Password Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Sources", "`" + strings.Join(report.Sources, "`, `") + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Duration.Round(time.Millisecond).String()},
			{"Lines Read", strconv.Itoa(report.LinesRead)},
			{"Valid Passwords", strconv.Itoa(report.ValidPasswords)},
			{"Empty/Skipped Lines", strconv.Itoa(report.EmptyLines())},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert summarizing the most pressing weakness.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	shortShare := w.shortPasswordShare(report)
	topReuse := 0
	if len(report.Passwords) > 0 {
		topReuse = report.Passwords[0].Count
	}

	switch {
	case report.ValidPasswords == 0:
		md.Note("No valid passwords were found in the input.")
	case shortShare > 0.5:
		md.Cautionf(
			"%.0f%% of passwords are shorter than 8 characters. The password policy needs immediate attention.",
			shortShare*100,
		)
	case topReuse > 1 && float64(topReuse)/float64(report.ValidPasswords) > 0.01:
		md.Warningf(
			"The single most common password appears %d times (%.1f%% of all passwords).",
			topReuse, 100*float64(topReuse)/float64(report.ValidPasswords),
		)
	default:
		md.Tip("No dominant weakness detected; review the tables below for details.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Categories) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, e := range limitEntries(report.Categories, w.limit) {
		chart.LabelAndIntValue(e.Key, uint64(e.Count))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeTable writes one frequency table with counts and shares of base.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, title string, entries []model.CounterEntry, base int) {
	md.H2(title)
	md.PlainText("")

	rows := limitEntries(entries, w.limit)
	if len(rows) == 0 {
		md.PlainText("No data.")
		md.PlainText("")
		return
	}

	tableRows := make([][]string, len(rows))
	for i, e := range rows {
		share := "-"
		if base > 0 {
			share = fmt.Sprintf("%.1f%%", 100*float64(e.Count)/float64(base))
		}
		tableRows[i] = []string{
			"`" + truncateString(e.Key, 50) + "`",
			strconv.Itoa(e.Count),
			share,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Value", "Count", "Share"},
		Rows:   tableRows,
	})
	md.PlainText("")
}

// shortPasswordShare returns the fraction of valid passwords shorter than 8
// characters.
func (w *MarkdownWriter) shortPasswordShare(report *model.RunReport) float64 {
	if report.ValidPasswords == 0 {
		return 0
	}
	short := 0
	for _, e := range report.Lengths {
		if n, err := strconv.Atoi(e.Key); err == nil && n < 8 {
			short += e.Count
		}
	}
	return float64(short) / float64(report.ValidPasswords)
}
