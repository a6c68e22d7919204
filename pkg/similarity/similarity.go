// Package similarity implements the string scores used to rank catalog keys
// against noisy user input.
//
// The scores are normalized indel ratios in the range 0..100. TokenSortRatio
// ignores word order, punctuation and case, so "Research Cancer Centre" and
// "cancer-research centre" score 100.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Process prepares a string for scoring. Accents that decompose are folded
// onto their base letter, the rest of the Latin-1 block (U+0080..U+00FF) is
// removed, letters and digits of any script are lowercased and kept, every
// other rune becomes a space and the result is trimmed.
func Process(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case latin1(r):
			continue
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func latin1(r rune) bool {
	return r >= 0x80 && r <= 0xff
}

// SortTokens splits a processed string on whitespace, sorts the tokens and
// joins them with a single space.
func SortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Ratio returns the normalized indel similarity of a and b, rounded half to
// even. Two empty strings are identical and score 100.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcs(ra, rb)
	return int(math.RoundToEven(100 * (1 - float64(dist)/float64(total))))
}

// TokenSortRatio scores a and b after processing both and sorting their
// tokens. If either side processes to the empty string the score is 0.
func TokenSortRatio(a, b string) int {
	pa, pb := Process(a), Process(b)
	if pa == "" || pb == "" {
		return 0
	}
	return Ratio(SortTokens(pa), SortTokens(pb))
}

// lcs returns the length of the longest common subsequence of a and b.
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
