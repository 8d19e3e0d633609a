package classify

import "testing"

// TestRatio verifies the plain indel-distance similarity.
func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "password",
			b:    "password",
			want: 100,
		},
		{
			name: "one substitution",
			a:    "password",
			b:    "passwort",
			want: 88,
		},
		{
			name: "substitutions earn no credit",
			a:    "london",
			b:    "landan",
			want: 67,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 100,
		},
		{
			name: "one empty",
			a:    "abcd",
			b:    "",
			want: 0,
		},
		{
			name: "completely different",
			a:    "abc",
			b:    "xyz",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestPartialRatio verifies best-window substring scoring.
func TestPartialRatio(t *testing.T) {
	t.Parallel()

	t.Run("exact substring scores 100", func(t *testing.T) {
		t.Parallel()
		if got := partialRatio("london", "xxlondon99"); got != 100 {
			t.Errorf("partialRatio = %d, want 100", got)
		}
	})

	t.Run("argument order does not matter", func(t *testing.T) {
		t.Parallel()
		if got := partialRatio("xxlondon99", "london"); got != 100 {
			t.Errorf("partialRatio = %d, want 100", got)
		}
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		t.Parallel()
		if got := partialRatio("", "london"); got != 0 {
			t.Errorf("partialRatio = %d, want 0", got)
		}
	})
}

// TestTokenSortRatio verifies that word order is neutralized.
func TestTokenSortRatio(t *testing.T) {
	t.Parallel()

	if got := tokenSortRatio("world hello", "hello world"); got != 100 {
		t.Errorf("tokenSortRatio = %d, want 100", got)
	}
}

// TestFullProcess verifies scoring preprocessing.
func TestFullProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and strips punctuation",
			in:   "P@ss Word!",
			want: "p ss word",
		},
		{
			name: "digits survive",
			in:   "summer2019",
			want: "summer2019",
		},
		{
			name: "only punctuation becomes empty",
			in:   "!!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fullProcess(tt.in); got != tt.want {
				t.Errorf("fullProcess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestWRatioScorer verifies the composite score on cases that exercise each
// branch of the length-ratio split.
func TestWRatioScorer(t *testing.T) {
	t.Parallel()

	scorer := WRatioScorer{}

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "exact match",
			a:    "password",
			b:    "password",
			want: 100,
		},
		{
			name: "case and punctuation ignored",
			a:    "PASSWORD!",
			b:    "password",
			want: 100,
		},
		{
			name: "year suffix scores via partial ratio",
			a:    "summer2019",
			b:    "summer",
			want: 90,
		},
		{
			name: "empty after processing",
			a:    "!!!",
			b:    "password",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := scorer.Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("unrelated strings stay well below the match threshold", func(t *testing.T) {
		t.Parallel()
		if got := scorer.Score("qwerty", "dragon"); got > 50 {
			t.Errorf("Score(qwerty, dragon) = %d, want <= 50", got)
		}
	})
}

// TestExtract verifies ranking, deterministic tie-breaking, and truncation.
func TestExtract(t *testing.T) {
	t.Parallel()

	scorer := WRatioScorer{}

	t.Run("ranked by descending score", func(t *testing.T) {
		t.Parallel()
		got := Extract(scorer, "summer2019", []string{"winter", "summer"}, 5)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Word != "summer" {
			t.Errorf("best match = %q, want %q", got[0].Word, "summer")
		}
		if got[0].Score <= got[1].Score {
			t.Errorf("results not sorted: %v", got)
		}
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		t.Parallel()
		// "zzz" and "aaa" share no letters with the query and score equal.
		got := Extract(scorer, "summer", []string{"zzz", "aaa"}, 5)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Score != got[1].Score {
			t.Fatalf("expected a tie, got scores %d and %d", got[0].Score, got[1].Score)
		}
		want := []string{"aaa", "zzz"}
		if got[0].Word != want[0] || got[1].Word != want[1] {
			t.Errorf("tie order = [%s %s], want %v", got[0].Word, got[1].Word, want)
		}
	})

	t.Run("limit truncates", func(t *testing.T) {
		t.Parallel()
		got := Extract(scorer, "abc", []string{"a", "b", "c", "d"}, 2)
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("empty word list", func(t *testing.T) {
		t.Parallel()
		if got := Extract(scorer, "abc", nil, 5); len(got) != 0 {
			t.Errorf("Extract on empty list = %v, want empty", got)
		}
	})
}
