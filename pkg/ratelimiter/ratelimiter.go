package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/handlekit/pkg/validator"
)

var (
	// ErrInvalidConfig is returned by Validate and NewBucket for unusable
	// bucket shapes or a nil store.
	ErrInvalidConfig = errors.New("invalid rate limit configuration")
	// ErrInvalidTokenCount is returned by AllowN for n <= 0.
	ErrInvalidTokenCount = errors.New("invalid token count")
)

// Config is the bucket shape. A zero Capacity disables limiting.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether limiting is switched on.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

// Validate checks an enabled config. Intervals under a millisecond are
// rejected: RedisStore works in whole milliseconds.
func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if err := validator.Apply(
		validator.MinNum("RATE_LIMIT_REFILL_RATE", c.RefillRate, 1),
		validator.MinNum("RATE_LIMIT_REFILL_INTERVAL", c.RefillInterval, time.Millisecond),
	); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// Result describes a bucket after a draw.
type Result struct {
	Limit     int
	Remaining int // negative when the draw was refused
	ResetAt   time.Time
}

// Allowed reports whether the draw succeeded.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the next refill, or zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Store persists bucket state.
type Store interface {
	// Take removes n tokens (n may be zero to only refill) and returns what
	// is left; a negative remainder means the draw is refused.
	Take(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Bucket applies one Config over a Store.
type Bucket struct {
	store Store
	cfg   Config
}

// NewBucket validates cfg. Disabled configs are rejected: callers skip the
// limiter instead.
func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow draws one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN draws n tokens for key, all or nothing. A refused draw leaves the
// bucket untouched and reports a negative Remaining.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.take(ctx, key, n)
}

// Status reports the bucket without drawing from it.
func (b *Bucket) Status(ctx context.Context, key string) (Result, error) {
	return b.take(ctx, key, 0)
}

// Reset forgets key; its next draw starts from a full bucket.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) take(ctx context.Context, key string, n int) (Result, error) {
	remaining, resetAt, err := b.store.Take(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}
