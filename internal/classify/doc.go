// Package classify implements the per-password classification primitives:
// line normalization, $HEX[...] encoding recovery, character-class shape
// masking, taxonomy rule matching, and fuzzy dictionary categorization.
//
// The components are independent given a normalized password. The pipeline
// package wires them together; this package holds only the pure logic so it
// can be tested with alternate symbol sets, taxonomies, and dictionaries.
//
// Design decision: Rule tables and character-translation tables are built by
// constructors (NewTaxonomy, NewMasker) rather than kept as mutable globals.
// The compiled tables are immutable after construction and safe for
// concurrent use.
package classify
