package rank

import (
	"strings"
	"unicode"
)

// Content fingerprint parameters: 5-character shingles over the first 5000
// normalized characters, Jaccard threshold for near-duplicate collapse.
const (
	shingleSize     = 5
	shingleWindow   = 5000
	duplicateCutoff = 0.92
)

// cleanText lowercases, replaces non-alphanumeric runes with spaces, and
// collapses whitespace. Both sides of a comparison go through the same
// normalization.
func cleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// shingles extracts the set of overlapping fixed-length substrings from the
// normalized head of a document body. Bodies shorter than one shingle yield
// an empty set.
func shingles(body string) map[string]struct{} {
	s := cleanText(body)
	if len(s) > shingleWindow {
		s = s[:shingleWindow]
	}
	if len(s) < shingleSize {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(s)-shingleSize+1)
	for i := 0; i+shingleSize <= len(s); i++ {
		set[s[i:i+shingleSize]] = struct{}{}
	}
	return set
}

// jaccard returns |A∩B| / |A∪B|, or 0 when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for sh := range small {
		if _, ok := large[sh]; ok {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
