package backend

import (
	"context"
	"time"
)

// Backend defines the interface for cache storage operations.
// External packages should use this interface, not the concrete implementations.
//
// All implementations must be safe for concurrent use by multiple goroutines
// on the same instance. Expired entries are detected lazily: a Get that finds
// an expired entry purges it and reports a miss; there is no background sweeper.
//
// TTL semantics: Set stores an entry that never expires. SetWithTTL stores an
// entry that expires after ttl; a ttl <= 0 behaves as Delete and must not
// leave any stored artifact behind.
//
// Error policy: write failures (Set, SetWithTTL) are surfaced to the caller.
// Read failures other than a genuine miss degrade to models.ErrCacheMiss, and
// Delete/Clear are best-effort and swallow I/O failures.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
