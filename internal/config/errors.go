package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidWorkers is returned when the worker count is not positive.
	// Zero workers would mean no classification happens at all.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidTopLimit is returned when the per-table row limit is not
	// positive.
	ErrInvalidTopLimit = errors.New("invalid top limit: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidDecodePolicy is returned when the $HEX decode policy is
	// neither "skip" nor "abort".
	ErrInvalidDecodePolicy = errors.New(`invalid decode policy: must be "skip" or "abort"`)
)
