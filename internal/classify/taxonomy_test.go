package classify

import (
	"reflect"
	"testing"
)

// TestTaxonomyMatch verifies rule evaluation against representative
// passwords. Expected labels are listed in table order.
func TestTaxonomyMatch(t *testing.T) {
	t.Parallel()

	tax := DefaultTaxonomy()

	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "classic complexity-policy password",
			password: "Password1!",
			want: []string{
				"Has: First capital, last symbol",
				"Has: Upper + lower + num + symbol",
				"Seq: 1 upper > lower > num or symbol",
				"Seq: alpha > num > symbol",
			},
		},
		{
			name:     "all lowercase word",
			password: "password",
			want: []string{
				"Has: All lowercase",
			},
		},
		{
			name:     "numeric pin",
			password: "1234",
			want: []string{
				"Contains: 123",
				"Contains: 1234",
				"Has: All num",
			},
		},
		{
			name:     "word with year suffix",
			password: "summer2020",
			want: []string{
				"Has: Four digits at the end",
				"Has: Alpha + num",
				"Last digit is '0'",
				"Last digits are '020'",
				"Last digits are '20'",
				"Last digits are '2020'",
				"Last digits are '20xx'",
				"Seq: alpha > num",
			},
		},
		{
			name:     "capitalized word with two digits",
			password: "Admin99",
			want: []string{
				"Has: First capital, last number",
				"Has: Two digits at the end",
				"Has: Upper + lower + num",
				"Has: Alpha + num",
				"Seq: 1 upper > lower > num or symbol",
				"Seq: 1 upper > lower > num",
				"Seq: alpha > num",
			},
		},
		{
			name:     "password with embedded space",
			password: "pass word",
			want: []string{
				"Contains: space",
				"Has: Alpha + symbol",
			},
		},
		{
			name:     "no rule matches",
			password: "mañana",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tax.Match(tt.password)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

// TestTaxonomyTable verifies the fixed size and naming of the rule table.
func TestTaxonomyTable(t *testing.T) {
	t.Parallel()

	tax := DefaultTaxonomy()

	t.Run("table has 32 rules", func(t *testing.T) {
		t.Parallel()
		if got := tax.Len(); got != 32 {
			t.Errorf("Len() = %d, want 32", got)
		}
	})

	t.Run("names are unique", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]bool)
		for _, name := range tax.Names() {
			if seen[name] {
				t.Errorf("duplicate rule name %q", name)
			}
			seen[name] = true
		}
	})

	t.Run("names returns a copy", func(t *testing.T) {
		t.Parallel()
		names := tax.Names()
		names[0] = "mutated"
		if tax.Names()[0] == "mutated" {
			t.Error("Names() exposed internal state")
		}
	})
}

// TestEscapeCharClass verifies escaping of character-class metacharacters.
func TestEscapeCharClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain symbols unchanged",
			in:   "!@#",
			want: "!@#",
		},
		{
			name: "class terminator escaped",
			in:   "]",
			want: `\]`,
		},
		{
			name: "backslash hyphen caret bracket escaped",
			in:   `\-^[`,
			want: `\\\-\^\[`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := escapeCharClass(tt.in); got != tt.want {
				t.Errorf("escapeCharClass(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
