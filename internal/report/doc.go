// Package report renders audit run reports.
//
// Three formats are provided:
//   - SimpleWriter: aligned plain-text frequency tables for the terminal
//   - JSONWriter: the full RunReport for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a mermaid
//     pie chart of the category distribution
//
// All writers implement the Writer interface and consume a read-only
// model.RunReport snapshot; nothing here mutates counters.
package report
