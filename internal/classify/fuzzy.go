package classify

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"passat/internal/model"
)

// Scorer computes an approximate similarity between two strings as an
// integer in [0,100], where 100 means an exact match.
//
// The exact scoring function materially changes which dictionary matches
// clear the categorization threshold, so it is kept pluggable behind this
// single contract. WRatioScorer is the default.
type Scorer interface {
	Score(a, b string) int
}

// WRatioScorer is a composite similarity scorer in the style of the
// classic fuzzywuzzy WRatio: it takes the best of the plain indel-distance
// ratio, a scaled token-sort ratio, and (for strings of quite different
// lengths) a scaled best-substring partial ratio. Both inputs are
// case-folded and stripped of non-alphanumeric runes before scoring.
type WRatioScorer struct{}

// Score implements Scorer.
func (WRatioScorer) Score(a, b string) int {
	pa, pb := fullProcess(a), fullProcess(b)
	if pa == "" || pb == "" {
		return 0
	}

	best := ratio(pa, pb)

	la := utf8.RuneCountInString(pa)
	lb := utf8.RuneCountInString(pb)
	longer, shorter := la, lb
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	lenRatio := float64(longer) / float64(shorter)

	const unbaseScale = 0.95
	if lenRatio < 1.5 {
		if s := scaled(tokenSortRatio(pa, pb), unbaseScale); s > best {
			best = s
		}
		return best
	}

	partialScale := 0.9
	if lenRatio > 8 {
		partialScale = 0.6
	}
	if s := scaled(partialRatio(pa, pb), partialScale); s > best {
		best = s
	}
	if s := scaled(tokenSortRatio(pa, pb), unbaseScale*partialScale); s > best {
		best = s
	}
	return best
}

// Extract scores query against every word and returns the matches ranked by
// descending score, truncated to limit. Ties break alphabetically so the
// result is deterministic for a given word set.
func Extract(scorer Scorer, query string, words []string, limit int) []model.FuzzyMatch {
	matches := make([]model.FuzzyMatch, 0, len(words))
	for _, w := range words {
		matches = append(matches, model.FuzzyMatch{Word: w, Score: scorer.Score(query, w)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// ratio is the plain similarity of two strings under indel edit distance
// (substitutions cost 2): 100 * 2*lcs(a,b) / (len(a)+len(b)). Runes only
// earn credit when they match, so disjoint strings score 0 rather than the
// half credit a unit-cost distance would hand out.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * 2 * float64(lcsLen(ra, rb)) / float64(total)))
}

// lcsLen computes the longest common subsequence length with a two-row
// dynamic program, so memory stays linear in the shorter input.
func lcsLen(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// partialRatio slides the shorter string across the longer one and returns
// the best window ratio. This rewards passwords that contain a dictionary
// word surrounded by decoration ("!!london99" vs "london").
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}

	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if s := ratio(string(ra), string(rb[i:i+len(ra)])); s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSortRatio splits both strings into whitespace tokens, sorts them, and
// scores the rejoined forms. This neutralizes word-order differences.
func tokenSortRatio(a, b string) int {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// fullProcess lowercases s and replaces every non-alphanumeric rune with a
// space, trimming the edges. Mirrors the preprocessing fuzzy matchers
// conventionally apply before scoring.
func fullProcess(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

func scaled(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}
