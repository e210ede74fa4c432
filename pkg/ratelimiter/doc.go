// Package ratelimiter throttles clients with a token bucket.
//
// A Bucket draws tokens from a Store keyed by client. Each request costs one
// token; RefillRate tokens come back every RefillInterval up to Capacity.
// MemoryStore keeps buckets in process and evicts idle ones.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.With(ratelimiter.Middleware(bucket, byIP, nil)).Get("/qr/{platform}/{handle}", qr)
package ratelimiter
