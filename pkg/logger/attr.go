package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// RequestID records the request identifier. Empty ids yield an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the subsystem that wrote the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event tags a record with a stable event name for filtering.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Platform records a platform key such as "instagram".
func Platform(key string) slog.Attr {
	return slog.String("platform", key)
}

// Salt records the generation salt.
func Salt(salt int64) slog.Attr {
	return slog.Int64("salt", salt)
}

// Suggestions records how many platform suggestions were produced.
func Suggestions(n int) slog.Attr {
	return slog.Int("suggestions", n)
}
