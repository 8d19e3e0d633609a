// Package pipeline wires the classification primitives into a per-password
// pipeline and runs it over input sources.
//
// Each input line flows through normalization and encoding recovery, then
// through the pipeline steps (shape masking, taxonomy matching, fuzzy
// categorization), and the completed result is folded into the shared
// aggregator.
//
// Design decision: We use a pipeline of Steps instead of direct function
// calls because:
//  1. It allows removing steps per run (no-categories mode drops the
//     category step) without branching in core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context
//
// The Runner partitions input lines across an errgroup worker pool (fuzzy
// matching against the full dictionary dominates cost and parallelizes per
// line) while a single owner goroutine folds results into the aggregator,
// keeping the shared counters free of lock contention.
package pipeline
