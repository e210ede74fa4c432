// Package handle turns a free-text display name into social-media handle
// suggestions for a fixed set of platforms.
//
// Generation is a pure function of the input name and a numeric salt: the
// same pair always yields the same suggestions, and a different salt
// ("remix") yields a different but equally reproducible set. Nothing in the
// package performs I/O, blocks, or returns an error.
//
// # Pipeline
//
// A name flows through five small steps:
//
//   - Normalize folds diacritics to their base letters (é → e), turns every
//     character that is not an ASCII letter or digit into a space, collapses
//     whitespace runs and trims the result.
//   - Tokenize splits the normalized name into words and derives three base
//     spellings: compact ("lunarlabs"), snake ("lunar_labs") and hybrid
//     ("lunarLabs").
//   - Hash combines a string and the salt into a non-negative seed using a
//     31-multiplier fold over a 32-bit signed accumulator. The arithmetic is
//     fixed so suggestion sets stay stable across releases.
//   - Compose glues a platform prefix, a base spelling and a platform suffix
//     into one lowercase candidate of at most MaxLength characters, padding
//     short results with digits taken from the salt.
//   - Generate walks the platform catalog, seeds each platform separately and
//     composes candidates until TargetCount unique handles are collected or
//     MaxAttempts is reached, then falls back to the bare compact spelling.
//
// # Usage
//
//	import "github.com/dmitrymomot/handlekit/pkg/handle"
//
//	for _, s := range handle.Generate("Lunar Labs", 42) {
//		fmt.Println(s.Platform, s.Handles)
//	}
//
//	// Remix with a fresh salt taken from the clock.
//	suggestions := handle.Generate("Lunar Labs", handle.SaltAt(time.Now()))
//
// A name that normalizes to an empty string (for example "", "   " or "!!")
// produces no suggestions at all.
//
// # Guarantees
//
// Every composed handle is lowercase and never longer than MaxLength. The
// MinLength floor is best-effort: padding with the salt remainder usually
// lifts a short candidate over it, but a very short base combined with a
// small salt can still fall below. Handles inside one Suggestion are unique
// except for the forced fallback candidate, which is added without a
// further retry.
//
// # Thread Safety
//
// The platform catalog is read-only and every call derives its state from
// its arguments, so all functions are safe for concurrent use.
package handle
