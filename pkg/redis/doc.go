// Package redis connects to Redis with retries and exposes a readiness
// check. handlekit uses it to share rate limit buckets between instances.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
