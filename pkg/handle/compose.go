package handle

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLength caps every composed handle.
	MaxLength = 20
	// MinLength is the length below which a candidate gets padded with salt
	// digits. Padding does not re-check the floor.
	MinLength = 4
)

// Compose builds one lowercase candidate from a prefix, the base spelling for
// style and a suffix. Non-alphanumeric characters are stripped from prefix
// and suffix, the result is cut to MaxLength, and a result shorter than
// MinLength gets salt%1000 appended.
func Compose(tokens Tokens, prefix, suffix string, style Style, salt int64) string {
	var b strings.Builder
	b.WriteString(keepAlnum(prefix))
	b.WriteString(tokens.Base(style))
	b.WriteString(keepAlnum(suffix))

	candidate := truncate(strings.ToLower(b.String()), MaxLength)
	if utf8.RuneCountInString(candidate) < MinLength {
		candidate += strconv.FormatInt(salt%1000, 10)
	}

	return candidate
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
