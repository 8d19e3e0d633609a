package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"passat/internal/classify"
	"passat/internal/config"
	"passat/internal/database"
	"passat/internal/model"
)

// Constants for audit trend direction.
const (
	trendImproved  = "improved"
	trendWorsened  = "worsened"
	trendUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares audit results with historical runs stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-run-id] [other-run-id]",
		Short: "Compare two saved audit runs",
		Long: `Compare displays differences between two saved audit runs.

Each 'passat audit' run is saved to the stats database (unless --save=false).
This command compares the category, length, and pattern profiles of two runs
so password policy changes can be tracked over time.

Without arguments the two most recent runs are compared. Run IDs can be
listed with --list.

Examples:
  # Compare the two most recent runs
  passat compare

  # Compare specific runs by ID
  passat compare 3 7

  # List saved runs
  passat compare --list

  # Output comparison in JSON format
  passat compare --json 3 7`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved audit runs in the database")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().IntP("top", "n", config.DefaultTopLimit,
		"Number of rows per change table")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the stats database")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open stats database (run 'passat audit' first): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		return listSavedRuns(ctx, db)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	topLimit, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	baseID, otherID, err := resolveRunIDs(ctx, db, args)
	if err != nil {
		return err
	}

	return runComparison(ctx, db, baseID, otherID, topLimit, jsonOutput)
}

// listSavedRuns lists all audit runs stored in the database.
func listSavedRuns(ctx context.Context, db *database.StatsDB) error {
	runs, err := db.ListRuns(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs found in the database.")
		fmt.Println("\nUse 'passat audit <file>' to audit a password list and save the run.")
		return nil
	}

	fmt.Printf("Saved runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %10s  %10s  %s\n", "ID", "Date", "Lines", "Valid", "Sources")
	fmt.Println("  " + strings.Repeat("-", 70))
	for _, run := range runs {
		fmt.Printf("  %-6d  %-20s  %10d  %10d  %s\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.LinesRead,
			run.ValidPasswords,
			strings.Join(run.Sources, ", "),
		)
	}
	fmt.Println("\nUse 'passat compare <base-id> <other-id>' to compare two runs.")

	return nil
}

// resolveRunIDs determines which two runs to compare: both from arguments,
// or the two most recent runs when no arguments were given.
func resolveRunIDs(ctx context.Context, db *database.StatsDB, args []string) (base, other int64, err error) {
	switch len(args) {
	case 0:
		ids, err := db.LatestRunIDs(ctx, 2)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to find recent runs: %w", err)
		}
		if len(ids) < 2 {
			return 0, 0, fmt.Errorf("at least 2 saved runs are required for comparison (found %d)", len(ids))
		}
		// ids are newest first; the older run is the comparison base.
		return ids[1], ids[0], nil
	case 2:
		base, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid run ID %q: %w", args[0], err)
		}
		other, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid run ID %q: %w", args[1], err)
		}
		return base, other, nil
	default:
		return 0, 0, errors.New("provide either no run IDs (latest two) or exactly two")
	}
}

// runComparison loads both runs and outputs their differences.
func runComparison(ctx context.Context, db *database.StatsDB, baseID, otherID int64, topLimit int, jsonOutput bool) error {
	base, err := db.GetRun(ctx, baseID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", baseID, err)
	}
	if base == nil {
		return fmt.Errorf("run %d not found (use --list to see saved runs)", baseID)
	}

	other, err := db.GetRun(ctx, otherID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", otherID, err)
	}
	if other == nil {
		return fmt.Errorf("run %d not found (use --list to see saved runs)", otherID)
	}

	result := compareRuns(baseID, otherID, base, other, topLimit)

	if jsonOutput {
		return outputComparisonJSON(result)
	}
	return outputComparisonText(result)
}

// ComparisonResult holds the result of comparing two audit runs.
type ComparisonResult struct {
	// BaseRun contains metadata about the older run.
	BaseRun RunMetadata `json:"base_run"`

	// OtherRun contains metadata about the newer run.
	OtherRun RunMetadata `json:"other_run"`

	// Trend is "improved", "worsened", or "unchanged", judged by the share
	// of passwords that hit a dictionary category or a repeated value.
	Trend string `json:"trend"`

	// CategoryChanges are the largest per-category share changes.
	CategoryChanges []ShareChange `json:"category_changes,omitempty"`

	// LengthChanges are the largest per-length share changes.
	LengthChanges []ShareChange `json:"length_changes,omitempty"`

	// PatternChanges are the largest shape-pattern share changes.
	PatternChanges []ShareChange `json:"pattern_changes,omitempty"`
}

// RunMetadata contains run metadata for comparison display.
type RunMetadata struct {
	// ID is the database run ID.
	ID int64 `json:"id"`

	// Sources are the audited input names.
	Sources []string `json:"sources"`

	// LinesRead is the lines-read grand total.
	LinesRead int `json:"lines_read"`

	// ValidPasswords is the number of classified passwords.
	ValidPasswords int `json:"valid_passwords"`

	// WeakShare is the fraction of lines whose password resolved to a
	// dictionary category, in [0,1].
	WeakShare float64 `json:"weak_share"`
}

// ShareChange is one key whose share of the run changed between two runs.
type ShareChange struct {
	// Key is the compared value (category, length, or pattern).
	Key string `json:"key"`

	// BaseShare and OtherShare are fractions of each run's lines read.
	BaseShare  float64 `json:"base_share"`
	OtherShare float64 `json:"other_share"`

	// Delta is OtherShare minus BaseShare.
	Delta float64 `json:"delta"`
}

// compareRuns builds the comparison result between two run reports.
func compareRuns(baseID, otherID int64, base, other *model.RunReport, topLimit int) *ComparisonResult {
	result := &ComparisonResult{
		BaseRun:  runMetadata(baseID, base),
		OtherRun: runMetadata(otherID, other),
	}

	result.CategoryChanges = shareChanges(base, other, base.Categories, other.Categories, topLimit)
	result.LengthChanges = shareChanges(base, other, base.Lengths, other.Lengths, topLimit)
	result.PatternChanges = shareChanges(base, other, base.Patterns, other.Patterns, topLimit)

	switch {
	case result.OtherRun.WeakShare < result.BaseRun.WeakShare:
		result.Trend = trendImproved
	case result.OtherRun.WeakShare > result.BaseRun.WeakShare:
		result.Trend = trendWorsened
	default:
		result.Trend = trendUnchanged
	}

	return result
}

// runMetadata extracts display metadata from a run report.
func runMetadata(id int64, report *model.RunReport) RunMetadata {
	meta := RunMetadata{
		ID:             id,
		Sources:        report.Sources,
		LinesRead:      report.LinesRead,
		ValidPasswords: report.ValidPasswords,
	}

	// Weak share counts categorized passwords. The uncategorized sentinel is
	// excluded so a bigger dictionary hit rate reads as weaker passwords.
	weak := 0
	for _, entry := range report.Categories {
		if entry.Key == classify.CategoryUncategorized {
			continue
		}
		weak += entry.Count
	}
	meta.WeakShare = report.Percent(weak)

	return meta
}

// shareChanges computes per-key share deltas between two counter snapshots,
// sorted by absolute delta descending and truncated to limit rows.
func shareChanges(base, other *model.RunReport, baseEntries, otherEntries []model.CounterEntry, limit int) []ShareChange {
	baseShares := make(map[string]float64, len(baseEntries))
	for _, entry := range baseEntries {
		baseShares[entry.Key] = base.Percent(entry.Count)
	}
	otherShares := make(map[string]float64, len(otherEntries))
	for _, entry := range otherEntries {
		otherShares[entry.Key] = other.Percent(entry.Count)
	}

	keys := make(map[string]struct{}, len(baseShares)+len(otherShares))
	for k := range baseShares {
		keys[k] = struct{}{}
	}
	for k := range otherShares {
		keys[k] = struct{}{}
	}

	changes := make([]ShareChange, 0, len(keys))
	for k := range keys {
		b, o := baseShares[k], otherShares[k]
		if b == o {
			continue
		}
		changes = append(changes, ShareChange{
			Key:        k,
			BaseShare:  b,
			OtherShare: o,
			Delta:      o - b,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		di, dj := abs(changes[i].Delta), abs(changes[j].Delta)
		if di != dj {
			return di > dj
		}
		return changes[i].Key < changes[j].Key
	})

	if limit > 0 && len(changes) > limit {
		changes = changes[:limit]
	}
	return changes
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Run Comparison: #%d -> #%d\n", result.BaseRun.ID, result.OtherRun.ID)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nTrend: %s\n", formatTrend(result.Trend))

	fmt.Println("\nRun Summary:")
	fmt.Printf("  %-18s  %12s  %12s\n", "Metric", fmt.Sprintf("Run #%d", result.BaseRun.ID), fmt.Sprintf("Run #%d", result.OtherRun.ID))
	fmt.Println("  " + strings.Repeat("-", 46))
	fmt.Printf("  %-18s  %12d  %12d\n", "Lines read", result.BaseRun.LinesRead, result.OtherRun.LinesRead)
	fmt.Printf("  %-18s  %12d  %12d\n", "Valid passwords", result.BaseRun.ValidPasswords, result.OtherRun.ValidPasswords)
	fmt.Printf("  %-18s  %11.1f%%  %11.1f%%\n", "Categorized", result.BaseRun.WeakShare*100, result.OtherRun.WeakShare*100)

	printShareChanges("Category changes", result.CategoryChanges)
	printShareChanges("Length changes", result.LengthChanges)
	printShareChanges("Pattern changes", result.PatternChanges)

	return nil
}

// printShareChanges prints one change table, skipping empty ones.
func printShareChanges(title string, changes []ShareChange) {
	if len(changes) == 0 {
		return
	}

	fmt.Printf("\n%s:\n", title)
	fmt.Printf("  %-24s  %8s  %8s  %8s\n", "Value", "Before", "After", "Change")
	fmt.Println("  " + strings.Repeat("-", 54))
	for _, change := range changes {
		fmt.Printf("  %-24s  %7.1f%%  %7.1f%%  %+7.1f%%\n",
			change.Key,
			change.BaseShare*100,
			change.OtherShare*100,
			change.Delta*100,
		)
	}
}

// formatTrend formats the trend direction for display.
func formatTrend(trend string) string {
	switch trend {
	case trendImproved:
		return "IMPROVED (fewer dictionary-based passwords)"
	case trendWorsened:
		return "WORSENED (more dictionary-based passwords)"
	default:
		return "UNCHANGED"
	}
}
