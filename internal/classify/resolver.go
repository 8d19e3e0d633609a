package classify

import (
	"sort"
	"unicode/utf8"
)

// CategoryUncategorized is the sentinel category assigned to passwords for
// which fuzzy resolution ran but no dictionary word cleared the similarity
// threshold. Every categorized password resolves to at least one category,
// so category counts sum to the number of passwords resolved.
const CategoryUncategorized = "uncategorized"

// Resolver defaults. The threshold boundary is exclusive: a score of
// exactly DefaultThreshold is NOT a match.
const (
	// DefaultThreshold is the minimum (exclusive) similarity score for a
	// dictionary word to count as a match.
	DefaultThreshold = 80

	// DefaultMinLength is the minimum password rune length for fuzzy
	// resolution. Shorter passwords produce spurious high-score matches
	// against short dictionary words and are skipped.
	DefaultMinLength = 4

	// DefaultMatchLimit bounds the ranked candidate list considered per
	// password.
	DefaultMatchLimit = 5
)

// Resolver maps passwords to thematic categories by fuzzy-matching them
// against a dictionary of base words and resolving matched words through the
// inverted word-to-categories index.
//
// A Resolver is immutable after construction and safe for concurrent use as
// long as its Scorer is.
type Resolver struct {
	words     []string
	index     map[string][]string
	scorer    Scorer
	threshold int
	minLength int
	limit     int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithScorer replaces the default WRatioScorer.
func WithScorer(s Scorer) ResolverOption {
	return func(r *Resolver) {
		r.scorer = s
	}
}

// WithThreshold sets the exclusive similarity threshold.
func WithThreshold(threshold int) ResolverOption {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithMinLength sets the minimum password rune length for resolution.
func WithMinLength(minLength int) ResolverOption {
	return func(r *Resolver) {
		r.minLength = minLength
	}
}

// WithMatchLimit bounds the ranked candidate list per password.
func WithMatchLimit(limit int) ResolverOption {
	return func(r *Resolver) {
		r.limit = limit
	}
}

// NewResolver creates a Resolver over the given base words and the inverted
// word-to-categories index. Both are read, never modified.
func NewResolver(words []string, index map[string][]string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		words:     words,
		index:     index,
		scorer:    WRatioScorer{},
		threshold: DefaultThreshold,
		minLength: DefaultMinLength,
		limit:     DefaultMatchLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the password's category label set and the base words that
// cleared the threshold. Categories are sorted for determinism.
//
// Both results are nil when the password is shorter than the minimum length
// or the dictionary is empty: that password is skipped, not uncategorized.
func (r *Resolver) Resolve(password string) (categories, baseWords []string) {
	if len(r.words) == 0 || utf8.RuneCountInString(password) < r.minLength {
		return nil, nil
	}

	catSet := make(map[string]struct{})
	for _, m := range Extract(r.scorer, password, r.words, r.limit) {
		if m.Score <= r.threshold {
			continue
		}
		baseWords = append(baseWords, m.Word)
		for _, c := range r.index[m.Word] {
			catSet[c] = struct{}{}
		}
	}

	if len(catSet) == 0 {
		return []string{CategoryUncategorized}, baseWords
	}

	categories = make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, baseWords
}
