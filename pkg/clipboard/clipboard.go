package clipboard

import (
	"context"
	"errors"
	"sync"

	atclipboard "github.com/atotto/clipboard"
)

var (
	// ErrUnsupported is returned when the host has no usable clipboard utility.
	ErrUnsupported = errors.New("clipboard is not supported on this system")
	// ErrWriteFailed wraps failures reported by the clipboard backend.
	ErrWriteFailed = errors.New("failed to write to clipboard")
)

// Writer places text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, value string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, value string) error

// WriteText calls f.
func (f WriterFunc) WriteText(ctx context.Context, value string) error {
	return f(ctx, value)
}

type systemWriter struct{}

// System returns a Writer for the operating system clipboard.
func System() Writer {
	return systemWriter{}
}

// WriteText shells out through atotto/clipboard. The backend call cannot be
// interrupted, so a cancelled context only stops the caller from waiting.
func (systemWriter) WriteText(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if atclipboard.Unsupported {
		return ErrUnsupported
	}

	done := make(chan error, 1)
	go func() { done <- atclipboard.WriteAll(value) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return errors.Join(ErrWriteFailed, err)
		}
		return nil
	}
}

// Memory is an in-process clipboard.
type Memory struct {
	mu     sync.RWMutex
	value  string
	writes int
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText stores value, or returns ctx.Err() when ctx is already done.
func (m *Memory) WriteText(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.value = value
	m.writes++
	m.mu.Unlock()
	return nil
}

// Text returns the last written value.
func (m *Memory) Text() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Writes reports how many values were written.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
