// Package stats maintains the streaming frequency counters for an audit run.
//
// A single Aggregator owns all counters. Counters are monotonically
// incremented, accumulate across input sources, and are snapshot into a
// model.RunReport for reporting and persistence.
//
// The Aggregator is deliberately not synchronized: the pipeline folds all
// per-line results into it from a single owner goroutine, which keeps the
// hot counter maps free of lock contention.
package stats
