// Package model defines the core data structures used throughout passat.
//
// This package contains the following main types:
//   - Classification: The per-password result of the classification pipeline
//   - FuzzyMatch: An approximate dictionary match with a similarity score
//   - CounterEntry: A single key/count pair from a frequency table
//   - RunReport: The aggregated statistics for a complete audit run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (classify, pipeline, stats, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
