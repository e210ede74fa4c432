package handle

import (
	"strconv"
	"time"
	"unicode/utf16"
)

// Hash folds "input:salt" into a non-negative seed.
//
// Each UTF-16 code unit is mixed into a signed 32-bit accumulator as
// acc = acc*31 + unit, wrapping on overflow, and the absolute value is
// returned widened to int64 (so math.MinInt32 maps to 2147483648). The exact
// arithmetic is part of the contract: changing it reshuffles every
// suggestion set.
func Hash(input string, salt int64) int64 {
	seeded := input + ":" + strconv.FormatInt(salt, 10)

	var acc int32
	for _, unit := range utf16.Encode([]rune(seeded)) {
		acc = acc*31 + int32(unit)
	}

	return absWide(acc)
}

// absWide returns |v| without overflowing at math.MinInt32.
func absWide(v int32) int64 {
	w := int64(v)
	if w < 0 {
		return -w
	}
	return w
}

// SaltAt returns the salt for a generation triggered at t: milliseconds since
// the Unix epoch.
func SaltAt(t time.Time) int64 {
	return t.UnixMilli()
}
