package classify

import "strings"

// DefaultSymbols is the symbol/whitespace character class shared by the
// pattern masker and the taxonomy rule table. The two must agree so that
// shape statistics and taxonomy statistics classify the same characters as
// symbols.
const DefaultSymbols = "~`!@#$%^&*()_-+=}]{[|\\\"':;?/>.<, "

// Mask symbols, one per character class.
const (
	maskLower  = 'a'
	maskUpper  = 'A'
	maskDigit  = '1'
	maskSymbol = '@'
)

// Masker maps every character of a password to a canonical class symbol,
// producing a shape pattern of identical rune length.
//
// ASCII lowercase letters become 'a', ASCII uppercase letters 'A', decimal
// digits '1', and every rune of the configured symbol set '@'. Runes outside
// all four classes (non-ASCII letters and so on) pass through verbatim;
// see the package documentation for the rationale.
type Masker struct {
	table map[rune]rune
}

// NewMasker builds a Masker for the given symbol set.
// The returned Masker is immutable and safe for concurrent use.
func NewMasker(symbols string) *Masker {
	table := make(map[rune]rune, 26*2+10+len(symbols))
	for r := 'a'; r <= 'z'; r++ {
		table[r] = maskLower
	}
	for r := 'A'; r <= 'Z'; r++ {
		table[r] = maskUpper
	}
	for r := '0'; r <= '9'; r++ {
		table[r] = maskDigit
	}
	for _, r := range symbols {
		table[r] = maskSymbol
	}
	return &Masker{table: table}
}

// Shape returns the character-class shape pattern of password.
// It is a pure function: the result depends only on the input and the
// masker's table, and len in runes always equals the input's.
func (m *Masker) Shape(password string) string {
	return strings.Map(func(r rune) rune {
		if mapped, ok := m.table[r]; ok {
			return mapped
		}
		return r
	}, password)
}
