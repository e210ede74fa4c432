package handle

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style selects which base spelling a handle is built from.
type Style int

// Base spellings, in the order the generator cycles through them.
const (
	Compact Style = iota // lunarlabs
	Snake                // lunar_labs
	Hybrid               // lunarLabs
)

var styles = [...]Style{Compact, Snake, Hybrid}

// String returns the style name used in logs and JSON.
func (s Style) String() string {
	switch s {
	case Compact:
		return "compact"
	case Snake:
		return "snake"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Tokens holds the words of a normalized name and the base spellings derived
// from them.
type Tokens struct {
	Words   []string
	Compact string
	Snake   string
	Hybrid  string
}

// Tokenize splits a normalized name into words and derives the base
// spellings. It reports false when there is nothing to build handles from.
func Tokenize(normalized string) (Tokens, bool) {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return Tokens{}, false
	}

	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	var hybrid strings.Builder
	hybrid.WriteString(lower[0])
	for _, w := range words[1:] {
		hybrid.WriteString(capitalize(w))
	}

	return Tokens{
		Words:   words,
		Compact: strings.Join(lower, ""),
		Snake:   strings.Join(lower, "_"),
		Hybrid:  hybrid.String(),
	}, true
}

// Base returns the spelling for the given style. Unknown styles fall back to
// the compact spelling.
func (t Tokens) Base(s Style) string {
	switch s {
	case Snake:
		return t.Snake
	case Hybrid:
		return t.Hybrid
	default:
		return t.Compact
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
