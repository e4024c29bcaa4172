package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text into the comparable answer form:
// strip every rune that is not an ASCII letter or digit, then upper-case.
//
// Unicode input is NFKD-decomposed first so accented letters degrade to
// their ASCII base ("Café" → "CAFE") instead of disappearing entirely.
//
// Normalize is pure, deterministic, and total. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseSpaces reduces every internal run of whitespace to a single
// space and trims the ends. Used by the item-list parser before clauses
// are split into quantity and name.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
