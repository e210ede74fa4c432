package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis: empty connection URL")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	ErrNotReady   = errors.New("redis: server did not answer in time")
	ErrPingFailed = errors.New("redis: ping failed")
)
