package model

import "time"

// CounterEntry is a single key/count pair from a frequency table,
// ordered by descending count in report snapshots.
type CounterEntry struct {
	// Key is the counted value (category name, base word, shape pattern,
	// stringified length, and so on).
	Key string `json:"key"`

	// Count is the number of occurrences, always positive.
	Count int `json:"count"`
}

// CharTotals holds running character-class totals for letter-frequency mode.
type CharTotals struct {
	// Chars is the total number of characters across all valid passwords.
	Chars int `json:"chars"`

	// Alpha is the number of alphabetic characters.
	Alpha int `json:"alpha"`

	// Num is the number of numeric characters.
	Num int `json:"num"`

	// Symbol is the number of characters that are neither alphabetic nor
	// numeric.
	Symbol int `json:"symbol"`
}

// RunReport is the aggregated result of one audit run. It is a read-only
// snapshot of the aggregator's counters plus run metadata, and is what the
// report writers and the stats database consume.
type RunReport struct {
	// Sources are the input names that completed processing, in order.
	// Stdin is recorded as "-".
	Sources []string `json:"sources"`

	// StartedAt is when processing of the first source began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total processing wall time.
	Duration time.Duration `json:"duration"`

	// LinesRead is the grand total of input lines across all sources,
	// including lines that produced no valid password.
	LinesRead int `json:"lines_read"`

	// ValidPasswords is the number of non-empty passwords classified.
	ValidPasswords int `json:"valid_passwords"`

	// FreqEnabled records whether letter-frequency counters were collected.
	FreqEnabled bool `json:"freq_enabled"`

	// CategoriesEnabled records whether fuzzy categorization ran.
	CategoriesEnabled bool `json:"categories_enabled"`

	// Categories counts how many passwords resolved to each category,
	// including the uncategorized sentinel.
	Categories []CounterEntry `json:"categories,omitempty"`

	// BaseWords counts dictionary base-word hits above the similarity
	// threshold.
	BaseWords []CounterEntry `json:"base_words,omitempty"`

	// Lengths counts passwords per rune length. Keys are decimal lengths.
	Lengths []CounterEntry `json:"lengths"`

	// Passwords counts repeated full password values.
	Passwords []CounterEntry `json:"passwords"`

	// Taxonomy counts matches per taxonomy rule name.
	Taxonomy []CounterEntry `json:"taxonomy"`

	// Patterns counts character-class shape patterns.
	Patterns []CounterEntry `json:"patterns"`

	// AlphaChars, NumChars, and SymbolChars count individual characters by
	// class. Only populated in letter-frequency mode.
	AlphaChars  []CounterEntry `json:"alpha_chars,omitempty"`
	NumChars    []CounterEntry `json:"num_chars,omitempty"`
	SymbolChars []CounterEntry `json:"symbol_chars,omitempty"`

	// Totals holds the character-class totals for letter-frequency mode.
	Totals CharTotals `json:"totals"`
}

// EmptyLines returns the number of lines that did not yield a valid password.
func (r *RunReport) EmptyLines() int {
	return r.LinesRead - r.ValidPasswords
}

// Percent returns count as a fraction of the lines-read grand total,
// in [0,1]. Returns 0 when no lines were read.
//
// The original tool reported all table percentages against lines read, not
// valid passwords, so duplicates and empty lines are part of the base.
func (r *RunReport) Percent(count int) float64 {
	if r.LinesRead == 0 {
		return 0
	}
	return float64(count) / float64(r.LinesRead)
}
