package stats

import (
	"strconv"
	"time"
	"unicode"

	"passat/internal/model"
)

// Aggregator accumulates all frequency counters and grand totals for a run.
//
// It is process-lifetime state: created empty at startup, fed one
// Classification per valid password by the pipeline's fold goroutine, and
// snapshot into a RunReport when all sources have been processed. Repeated
// use across multiple sources accumulates; nothing is ever decremented.
type Aggregator struct {
	categories Counter
	baseWords  Counter
	lengths    Counter
	passwords  Counter
	taxonomy   Counter
	patterns   Counter
	alpha      Counter
	num        Counter
	symbol     Counter

	totals model.CharTotals

	linesRead      int
	validPasswords int

	freq              bool
	categoriesEnabled bool

	sources   []string
	startedAt time.Time
}

// NewAggregator creates an empty Aggregator. freq enables the per-character
// letter counters; categoriesEnabled records whether fuzzy categorization is
// active for this run (it controls report sections, not counting).
func NewAggregator(freq, categoriesEnabled bool) *Aggregator {
	return &Aggregator{
		categories:        NewCounter(),
		baseWords:         NewCounter(),
		lengths:           NewCounter(),
		passwords:         NewCounter(),
		taxonomy:          NewCounter(),
		patterns:          NewCounter(),
		alpha:             NewCounter(),
		num:               NewCounter(),
		symbol:            NewCounter(),
		freq:              freq,
		categoriesEnabled: categoriesEnabled,
		startedAt:         time.Now(),
	}
}

// AddSource records a completed input source name for the report.
func (a *Aggregator) AddSource(name string) {
	a.sources = append(a.sources, name)
}

// RecordLine counts an input line that produced no classified password:
// an empty candidate or a record skipped under the decode policy. Such lines
// count toward lines read but not toward valid passwords.
func (a *Aggregator) RecordLine() {
	a.linesRead++
}

// Record folds one classified password into every counter.
// A password matching three taxonomy rules increments three separate
// taxonomy counters; each resolved category counts once.
func (a *Aggregator) Record(c *model.Classification) {
	a.linesRead++
	a.validPasswords++

	a.lengths.Inc(strconv.Itoa(c.Length))
	a.passwords.Inc(c.Password)
	a.patterns.Inc(c.Shape)

	for _, label := range c.TaxonomyLabels {
		a.taxonomy.Inc(label)
	}
	for _, cat := range c.Categories {
		a.categories.Inc(cat)
	}
	for _, w := range c.BaseWords {
		a.baseWords.Inc(w)
	}

	if a.freq {
		a.recordChars(c.Password)
	}
}

// recordChars classifies every character of the password into the
// alpha/num/symbol tables. Numeric wins over alphabetic, matching the
// classic tool's evaluation order.
func (a *Aggregator) recordChars(password string) {
	for _, r := range password {
		a.totals.Chars++
		switch {
		case unicode.IsNumber(r):
			a.num.Inc(string(r))
			a.totals.Num++
		case unicode.IsLetter(r):
			a.alpha.Inc(string(r))
			a.totals.Alpha++
		default:
			a.symbol.Inc(string(r))
			a.totals.Symbol++
		}
	}
}

// Merge folds another aggregator into this one. The pipeline processes each
// input source into a fresh aggregator and merges it into the run-wide one
// only when the source completes, so failed sources never contaminate the
// reported totals.
func (a *Aggregator) Merge(other *Aggregator) {
	a.categories.Merge(other.categories)
	a.baseWords.Merge(other.baseWords)
	a.lengths.Merge(other.lengths)
	a.passwords.Merge(other.passwords)
	a.taxonomy.Merge(other.taxonomy)
	a.patterns.Merge(other.patterns)
	a.alpha.Merge(other.alpha)
	a.num.Merge(other.num)
	a.symbol.Merge(other.symbol)

	a.totals.Chars += other.totals.Chars
	a.totals.Alpha += other.totals.Alpha
	a.totals.Num += other.totals.Num
	a.totals.Symbol += other.totals.Symbol

	a.linesRead += other.linesRead
	a.validPasswords += other.validPasswords
	a.sources = append(a.sources, other.sources...)
}

// LinesRead returns the grand total of lines read so far.
func (a *Aggregator) LinesRead() int {
	return a.linesRead
}

// ValidPasswords returns the number of classified passwords so far.
func (a *Aggregator) ValidPasswords() int {
	return a.validPasswords
}

// Report snapshots every counter into a RunReport. Counters are copied in
// full, sorted by descending count; report writers apply their own row
// limits.
func (a *Aggregator) Report() *model.RunReport {
	r := &model.RunReport{
		Sources:           append([]string(nil), a.sources...),
		StartedAt:         a.startedAt,
		Duration:          time.Since(a.startedAt),
		LinesRead:         a.linesRead,
		ValidPasswords:    a.validPasswords,
		FreqEnabled:       a.freq,
		CategoriesEnabled: a.categoriesEnabled,
		Categories:        a.categories.Entries(),
		BaseWords:         a.baseWords.Entries(),
		Lengths:           a.lengths.Entries(),
		Passwords:         a.passwords.Entries(),
		Taxonomy:          a.taxonomy.Entries(),
		Patterns:          a.patterns.Entries(),
		Totals:            a.totals,
	}
	if a.freq {
		r.AlphaChars = a.alpha.Entries()
		r.NumChars = a.num.Entries()
		r.SymbolChars = a.symbol.Entries()
	}
	return r
}
