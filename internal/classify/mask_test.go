package classify

import (
	"testing"
	"unicode/utf8"
)

// TestMaskerShape verifies the character-class shape patterns for each class
// and for runes outside all classes.
func TestMaskerShape(t *testing.T) {
	t.Parallel()

	m := NewMasker(DefaultSymbols)

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "mixed classes",
			password: "Password1!",
			want:     "Aaaaaaaa1@",
		},
		{
			name:     "all lowercase",
			password: "hunter",
			want:     "aaaaaa",
		},
		{
			name:     "all digits",
			password: "123456",
			want:     "111111",
		},
		{
			name:     "all uppercase",
			password: "ADMIN",
			want:     "AAAAA",
		},
		{
			name:     "space counts as symbol",
			password: "pass word",
			want:     "aaaa@aaaa",
		},
		{
			name:     "every configured symbol maps",
			password: "~`!@#$%^&*",
			want:     "@@@@@@@@@@",
		},
		{
			name:     "non-ascii letters pass through verbatim",
			password: "mañana",
			want:     "aañaaa",
		},
		{
			name:     "empty password",
			password: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := m.Shape(tt.password)
			if got != tt.want {
				t.Errorf("Shape(%q) = %q, want %q", tt.password, got, tt.want)
			}
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(tt.password) {
				t.Errorf("Shape(%q) changed rune length: got %d, want %d",
					tt.password, utf8.RuneCountInString(got), utf8.RuneCountInString(tt.password))
			}
		})
	}
}

// TestMaskerCustomSymbols verifies that the symbol class is configurable.
func TestMaskerCustomSymbols(t *testing.T) {
	t.Parallel()

	m := NewMasker("!")

	got := m.Shape("a!#")
	// '#' is not in the custom symbol set so it passes through.
	if want := "a@#"; got != want {
		t.Errorf("Shape(%q) = %q, want %q", "a!#", got, want)
	}
}
