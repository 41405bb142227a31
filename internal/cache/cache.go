// Package cache stores upstream response bodies for a short TTL so repeated
// ticker requests do not hammer the FPL and standings APIs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache. A miss is (nil, false, nil); err is reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
