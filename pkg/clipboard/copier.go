package clipboard

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DisplayPrefix is the decoration stripped by CopyHandle.
const DisplayPrefix = "@"

// Copier writes values through a Writer and remembers whether the last write
// went through.
type Copier struct {
	writer  Writer
	timeout time.Duration

	mu     sync.RWMutex
	copied bool
	value  string
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithTimeout bounds a single write. Zero or negative disables the bound.
func WithTimeout(d time.Duration) CopierOption {
	return func(c *Copier) { c.timeout = d }
}

// NewCopier returns a Copier writing through w.
// Panics on a nil writer to fail fast during wiring.
func NewCopier(w Writer, opts ...CopierOption) *Copier {
	if w == nil {
		panic("clipboard: nil writer")
	}
	c := &Copier{writer: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes value and reports whether it landed on the clipboard.
// On failure the Copier reverts to "not copied"; the error is dropped.
func (c *Copier) Copy(ctx context.Context, value string) bool {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := c.writer.WriteText(ctx, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.copied = false
		c.value = ""
		return false
	}
	c.copied = true
	c.value = value
	return true
}

// CopyHandle copies a displayed handle without its "@" decoration.
func (c *Copier) CopyHandle(ctx context.Context, display string) bool {
	return c.Copy(ctx, strings.TrimPrefix(display, DisplayPrefix))
}

// Copied reports whether the last copy succeeded.
func (c *Copier) Copied() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copied
}

// Value returns the last successfully copied value, or "" after a failure.
func (c *Copier) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Reset returns the Copier to "not copied".
func (c *Copier) Reset() {
	c.mu.Lock()
	c.copied = false
	c.value = ""
	c.mu.Unlock()
}
