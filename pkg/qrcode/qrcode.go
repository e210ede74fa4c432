package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/handlekit/pkg/handle"
)

const (
	// DefaultSize is used when the requested size is not positive.
	DefaultSize = 256
	// MaxSize caps the rendered image edge.
	MaxSize = 1024
)

var (
	// ErrEmptyContent is returned when there is nothing to encode.
	ErrEmptyContent = errors.New("qr code content cannot be empty")
	// ErrFailedToGenerate wraps encoder failures.
	ErrFailedToGenerate = errors.New("failed to generate QR code")
)

// Generate encodes content into a PNG of size×size pixels.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, clampSize(size))
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

// DataURI returns the PNG for content as a base64 data URI.
func DataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Profile encodes the profile URL of h on platform p. The display "@" is
// accepted and ignored.
func Profile(p handle.Platform, h string, size int) ([]byte, error) {
	id := strings.TrimSpace(strings.TrimPrefix(h, handle.DisplayPrefix))
	if id == "" {
		return nil, ErrEmptyContent
	}
	return Generate(p.ProfileURL(id), size)
}

func clampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size > MaxSize:
		return MaxSize
	default:
		return size
	}
}
