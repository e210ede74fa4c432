package handle

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newMarkStripper decomposes runes and drops the combining marks, leaving the
// base letters. Chained transformers keep internal state, so each call gets
// its own instance.
func newMarkStripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// Normalize folds diacritics, replaces everything except ASCII letters and
// digits with spaces, collapses whitespace and trims the result.
// The returned string only contains [A-Za-z0-9 ] with single interior spaces,
// or is empty.
func Normalize(raw string) string {
	folded, _, err := transform.String(newMarkStripper(), raw)
	if err != nil {
		// Malformed input still goes through the ASCII filter below.
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))

	gap := false
	for _, r := range folded {
		if !isASCIIAlnum(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte(' ')
		}
		gap = false
		b.WriteRune(r)
	}

	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// keepAlnum drops every rune that is not an ASCII letter or digit.
func keepAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) {
			return r
		}
		return -1
	}, s)
}
