package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache abstracts the key/value and capped-list operations the services need.
// The Redis adapter implements it; tests substitute mocks.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error

	// Capped-list operations backing the recent-activity feed.
	PushCapped(ctx context.Context, key string, value string, maxLen int64) error
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)
}
