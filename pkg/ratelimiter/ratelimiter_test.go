package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/handlekit/pkg/ratelimiter"
	"github.com/dmitrymomot/handlekit/pkg/validator"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, clock
}

func TestNewBucket_Validation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{name: "disabled", cfg: ratelimiter.Config{}},
		{name: "no refill", cfg: ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{name: "no interval", cfg: ratelimiter.Config{Capacity: 1, RefillRate: 1}},
		{name: "sub-millisecond interval", cfg: ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 500 * time.Microsecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(store, tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	_, err := ratelimiter.NewBucket(nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, ratelimiter.Config{}.Enabled())
	assert.NoError(t, ratelimiter.Config{}.Validate())
	assert.ErrorIs(t, ratelimiter.Config{Capacity: 5}.Validate(), ratelimiter.ErrInvalidConfig)
}

func TestBucket_AllowAndRefill(t *testing.T) {
	t.Parallel()

	b, clock := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	for want := 1; want >= 0; want-- {
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 2, res.Limit)
	}

	res, err := b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, time.Second, res.RetryAfter(clock.Now()))

	other, err := b.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")

	clock.Advance(time.Second)
	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	clock.Advance(time.Hour)
	res, err = b.Status(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")
}

func TestBucket_IdleDoesNotBankTokens(t *testing.T) {
	t.Parallel()

	b, clock := newBucket(t, ratelimiter.Config{Capacity: 10, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	_, err := b.Allow(ctx, "ip")
	require.NoError(t, err)

	clock.Advance(time.Hour)

	allowed := 0
	for range 1000 {
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		if res.Allowed() {
			allowed++
		}
		assert.True(t, res.ResetAt.After(clock.Now()), "reset time must lie ahead")
	}
	assert.Equal(t, 10, allowed)

	clock.Advance(time.Second)
	res, err := b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining, "one interval refills one token")
}

func TestBucket_PartialRefillKeepsPhase(t *testing.T) {
	t.Parallel()

	b, clock := newBucket(t, ratelimiter.Config{Capacity: 5, RefillRate: 2, RefillInterval: time.Second})
	ctx := context.Background()
	start := clock.Now()

	_, err := b.AllowN(ctx, "ip", 5)
	require.NoError(t, err)

	clock.Advance(1500 * time.Millisecond)
	res, err := b.Status(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
	assert.True(t, start.Add(2*time.Second).Equal(res.ResetAt))

	clock.Advance(2 * time.Second)
	res, err = b.Status(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Remaining, "refill caps at capacity")
}

func TestConfig_ValidateNamesFields(t *testing.T) {
	t.Parallel()

	err := ratelimiter.Config{Capacity: 1, RefillRate: 0, RefillInterval: time.Microsecond}.Validate()
	require.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	verrs := validator.ExtractValidationErrors(err)
	require.NotNil(t, verrs)
	assert.Equal(t, []string{"RATE_LIMIT_REFILL_RATE", "RATE_LIMIT_REFILL_INTERVAL"}, verrs.Fields())
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute})
	ctx := context.Background()

	_, err := b.AllowN(ctx, "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(ctx, "k", 5)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	res, err = b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining, "refused draws do not consume")

	require.NoError(t, b.Reset(ctx, "k"))
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	_, _, err := store.Take(context.Background(), "a", 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	clock.Advance(2 * time.Hour)
	store.Sweep()
	assert.Equal(t, 0, store.Len())

	store.Close()
	store.Close()
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

type failingStore struct{}

func (failingStore) Take(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	byHeader := func(r *http.Request) string { return r.Header.Get("X-Client") }

	t.Run("limits and sets headers", func(t *testing.T) {
		t.Parallel()

		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		h := ratelimiter.Middleware(b, byHeader, nil)(ok)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Client", "a")

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		w = httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("custom limit handler", func(t *testing.T) {
		t.Parallel()

		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		teapot := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		h := ratelimiter.Middleware(b, byHeader, teapot)(ok)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		h.ServeHTTP(httptest.NewRecorder(), r)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("store failure lets requests through", func(t *testing.T) {
		t.Parallel()

		b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		ratelimiter.Middleware(b, byHeader, nil)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
