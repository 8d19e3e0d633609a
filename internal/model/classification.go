package model

// FuzzyMatch is the result of comparing a password against a single
// dictionary base word. Score is a similarity in [0,100] where 100 means
// an exact match.
type FuzzyMatch struct {
	// Word is the dictionary base word that was compared.
	Word string `json:"word"`

	// Score is the similarity score in [0,100].
	Score int `json:"score"`
}

// Classification holds everything the pipeline derives from a single
// password. Instances are transient: created per input line, folded into the
// aggregator, and discarded.
type Classification struct {
	// Password is the recovered plaintext password. Never empty; empty
	// candidates are dropped before classification.
	Password string `json:"password"`

	// Length is the password length in runes.
	Length int `json:"length"`

	// Shape is the character-class mask of the password. Always the same
	// rune length as Password.
	Shape string `json:"shape"`

	// TaxonomyLabels are the names of all taxonomy rules the password
	// matched. May be empty. Order follows the rule table, but consumers
	// must not depend on it.
	TaxonomyLabels []string `json:"taxonomy_labels,omitempty"`

	// Categories is the resolved category label set. Contains the
	// uncategorized sentinel when fuzzy resolution ran but nothing cleared
	// the threshold, and is nil when resolution was skipped entirely.
	Categories []string `json:"categories,omitempty"`

	// BaseWords are the dictionary words that cleared the similarity
	// threshold, independent of how many categories each maps to.
	BaseWords []string `json:"base_words,omitempty"`
}
