package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. Where a default mirrors the classic passat
// script (thresholds, limits, file names), that value is kept so results
// stay comparable across implementations.
const (
	// DefaultDictionaryFile is the category dictionary looked up when the
	// user does not pass an explicit path. A missing default file simply
	// disables fuzzy categorization; a missing explicit file is an error.
	DefaultDictionaryFile = "categories.yaml"

	// DefaultWorkers is the number of concurrent classification workers.
	// Fuzzy matching dominates processing cost (every password is compared
	// against the whole dictionary), so the worker count is the main
	// throughput knob. 8 keeps memory modest while saturating typical
	// desktop CPUs; tune via the --workers flag.
	DefaultWorkers = 8

	// DefaultTopLimit is the number of rows shown per frequency table.
	DefaultTopLimit = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "passat"
)

// DecodePolicy selects what happens when a record carries a malformed
// $HEX[...] payload. There is no silent pass-through: the record either
// aborts the source or is logged and skipped.
type DecodePolicy string

// Supported decode policies.
const (
	// DecodeSkip logs the offending record and continues with the next line.
	DecodeSkip DecodePolicy = "skip"

	// DecodeAbort fails the current source on the first malformed payload.
	DecodeAbort DecodePolicy = "abort"
)

// Config holds all options for an audit run.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FuzzyConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Sources are the input paths, in processing order. "-" means stdin.
	Sources []string

	// DictionaryPath is the category dictionary file (.yaml/.yml/.json).
	DictionaryPath string

	// DictionaryExplicit records whether DictionaryPath was set by the user.
	// Only an explicitly requested dictionary that fails to load is fatal.
	DictionaryExplicit bool

	// NoCategories disables fuzzy categorization entirely. This is the
	// fast path for very large dumps.
	NoCategories bool

	// Freq enables per-character letter-frequency counters.
	Freq bool

	// Workers is the classification worker count. 1 means a plain
	// sequential pass.
	Workers int

	// TopLimit is the number of rows per frequency table in reports.
	TopLimit int

	// OnDecodeError selects the malformed-$HEX policy.
	OnDecodeError DecodePolicy

	// KeepGoing continues with the remaining sources when one source
	// cannot be read. Statistics only reflect sources that completed.
	KeepGoing bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ShowPasswords disables log masking of plaintext passwords.
	// Off by default: audit logs routinely end up in ticket systems.
	ShowPasswords bool

	// JSONReport enables JSON report output instead of the text tables.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables and a
	// category pie chart. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Save persists the run report to the stats database for later
	// comparison with the compare command.
	Save bool

	// DBDir is the directory holding the stats database.
	DBDir string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Sources:        []string{"-"},
		DictionaryPath: DefaultDictionaryFile,
		Workers:        DefaultWorkers,
		TopLimit:       DefaultTopLimit,
		OnDecodeError:  DecodeSkip,
		DBDir:          XDGDataDir(),
	}
}

// Validate checks the configuration for inconsistencies.
// It returns one of the package's sentinel errors so callers can use
// errors.Is for programmatic handling.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.TopLimit < 1 {
		return ErrInvalidTopLimit
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	switch c.OnDecodeError {
	case DecodeSkip, DecodeAbort:
	default:
		return ErrInvalidDecodePolicy
	}
	return nil
}

// XDGDataDir returns the XDG data directory for passat.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/passat
// On macOS: ~/Library/Application Support/passat
// On Windows: %LOCALAPPDATA%\passat
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for passat.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
