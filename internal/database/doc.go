// Package database provides SQLite-based storage for passat run history.
//
// The StatsDB stores one row per audit run: summary columns for listing and
// the full RunReport as JSON for detailed comparison. The compare command
// reads this history to show how a password population changes between
// audits.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for run-per-row history
//  4. WAL mode provides good concurrent read performance
package database
