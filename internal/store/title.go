package store

import (
	"strings"
	"unicode"
)

// NormalizeTitle canonicalizes a raw title for fuzzy matching: strip
// everything that is neither alphanumeric nor whitespace, lowercase,
// collapse whitespace, then merge runs of single-character tokens so
// abbreviation spacing variants collapse to one form ("R. J. Reynolds"
// and "R.J. Reynolds" both become "rj reynolds").
// Empty input normalizes to "" and is exempt from title deduplication.
func NormalizeTitle(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	merged := make([]string, 0, len(tokens))
	var run []string
	flush := func() {
		if len(run) > 0 {
			merged = append(merged, strings.Join(run, ""))
			run = run[:0]
		}
	}
	for _, tok := range tokens {
		if len([]rune(tok)) == 1 {
			run = append(run, tok)
			continue
		}
		flush()
		merged = append(merged, tok)
	}
	flush()

	return strings.Join(merged, " ")
}
