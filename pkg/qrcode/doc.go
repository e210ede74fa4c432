// Package qrcode renders QR codes that point at a suggested handle's public
// profile, so a suggestion can be scanned straight from the screen.
//
// It is a thin layer over github.com/skip2/go-qrcode:
//
//   - Generate encodes arbitrary content into a square PNG.
//   - DataURI wraps the PNG in a data URI for inline <img> tags.
//   - Profile resolves the profile URL of a handle on a platform and encodes
//     it.
//
// Sizes are in pixels. Non-positive sizes fall back to DefaultSize and
// anything above MaxSize is clamped.
//
//	png, err := qrcode.Profile(platform, "@lunarlabs", 256)
//	if errors.Is(err, qrcode.ErrEmptyContent) {
//		// nothing to encode
//	}
package qrcode
