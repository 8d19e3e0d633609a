package classify

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Rule is a named predicate over a password. The pattern is searched as a
// substring unless it is anchored.
type Rule struct {
	// Name is the human-readable rule label used as the counter key.
	Name string

	re *regexp2.Regexp
}

// Taxonomy is a fixed, ordered set of charset, composition, and sequence
// rules. Rules are evaluated independently: a password may match any number
// of them, and evaluation order never affects the result set.
//
// Design decision: The composition rules use lookaheads ("(?=.*[a-z])...")
// which Go's RE2-based regexp cannot express, so the table is compiled with
// github.com/dlclark/regexp2. The table is built once and is immutable and
// safe for concurrent use afterward.
type Taxonomy struct {
	rules []Rule
}

// NewTaxonomy compiles the rule table against the given symbol set.
// The symbol set must be the one the Masker uses so taxonomy and shape
// statistics stay consistent.
func NewTaxonomy(symbols string) *Taxonomy {
	sym := escapeCharClass(symbols)

	specs := []struct {
		name    string
		pattern string
	}{
		{"Contains: 123", `123`},
		{"Contains: 1234", `1234`},
		{"Contains: space", ` `},
		{"Has: All lowercase", `^[a-z]+$`},
		{"Has: All num", `^[\d]+$`},
		{"Has: All uppercase", `^[A-Z]+$`},
		{"Has: First capital, last number", `^[A-Z].*\d$`},
		{"Has: First capital, last symbol", fmt.Sprintf(`^[A-Z].*[%s]$`, sym)},
		{"Has: Four digits at the end", `[^\d]\d\d\d\d$`},
		{"Has: Single digit at the end", `[^\d]\d$`},
		{"Has: Three digits at the end", `[^\d]\d\d\d$`},
		{"Has: Two digits at the end", `[^\d]\d\d$`},
		{"Has: Upper + lower + num + symbol", fmt.Sprintf(`^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[%s]).*$`, sym)},
		{"Has: Lower + num + symbol", fmt.Sprintf(`^(?=.*[a-z])(?=.*\d)(?=.*[%s])[a-z\d%s]*$`, sym, sym)},
		{"Has: Upper + num + symbol", fmt.Sprintf(`^(?=.*[A-Z])(?=.*\d)(?=.*[%s])[A-Z\d%s]*$`, sym, sym)},
		{"Has: Upper + lower + num", `^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)[A-Za-z\d]*$`},
		{"Has: Alpha + num", `^(?=.*[a-zA-Z])(?=.*\d)[A-Za-z\d]*$`},
		{"Has: Alpha + symbol", fmt.Sprintf(`^(?=.*[a-zA-Z])(?=.*[%s])[A-Za-z%s]*$`, sym, sym)},
		{"Has: Upper + lower + symbol", fmt.Sprintf(`^(?=.*[a-z])(?=.*[A-Z])(?=.*[%s])[A-Za-z%s]*$`, sym, sym)},
		{"Has: Upper + lower", `^(?=.*[a-z])(?=.*[A-Z])[A-Za-z]*$`},
		{"Last digit is '0'", `0$`},
		{"Last digits are '020'", `020$`},
		{"Last digits are '19xx'", `19\d\d$`},
		{"Last digits are '20'", `20$`},
		{"Last digits are '2020'", `2020$`},
		{"Last digits are '20xx'", `20\d\d$`},
		{"Seq: 1 upper > lower > num or symbol", fmt.Sprintf(`^[A-Z][a-z]+[\d%s]+$`, sym)},
		{"Seq: 1 upper > lower > num", `^[A-Z][a-z]+[\d]+$`},
		{"Seq: alpha > num > alpha", `^[A-Za-z]+\d+[A-Za-z]+$`},
		{"Seq: alpha > num > symbol", fmt.Sprintf(`^[A-Za-z]+\d+[%s]+$`, sym)},
		{"Seq: alpha > num", `^[A-Za-z]+\d+$`},
		{"Seq: alpha > symbol > num", fmt.Sprintf(`^[A-Za-z]+[%s]+\d+$`, sym)},
	}

	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, Rule{
			Name: s.name,
			re:   regexp2.MustCompile(s.pattern, regexp2.None),
		})
	}
	return &Taxonomy{rules: rules}
}

// DefaultTaxonomy returns the rule table compiled against DefaultSymbols.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(DefaultSymbols)
}

// Match returns the names of all rules the password matches, in table order.
func (t *Taxonomy) Match(password string) []string {
	var labels []string
	for _, r := range t.rules {
		// No match timeout is configured, so MatchString cannot fail.
		ok, err := r.re.MatchString(password)
		if err == nil && ok {
			labels = append(labels, r.Name)
		}
	}
	return labels
}

// Names returns the rule names in their fixed evaluation order.
// The slice is a copy; callers may modify it.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.rules))
	for i, r := range t.rules {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of rules in the table.
func (t *Taxonomy) Len() int {
	return len(t.rules)
}

// escapeCharClass escapes symbols for embedding inside a regexp2 character
// class. Only backslash, the class terminator, caret, hyphen, and the
// opening bracket carry meaning there.
func escapeCharClass(symbols string) string {
	var sb strings.Builder
	for _, r := range symbols {
		switch r {
		case '\\', ']', '^', '-', '[':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
