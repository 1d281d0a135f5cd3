package cache

import (
	"context"
	"time"
)

// MemoizeOptions controls key derivation and error handling for Memoize
type MemoizeOptions struct {
	// TTL applied to memoized results; 0 uses the cache's default TTL.
	TTL time.Duration
	// KeyPrefix is prepended to every derived key.
	KeyPrefix string
	// KeyFunc overrides the default key derivation when set.
	KeyFunc func(args ...any) (string, error)
	// OnSetError is invoked when storing a computed result fails. The
	// result is still returned to the caller; when nil the failure is
	// dropped (cache-aside).
	OnSetError func(key string, err error)
}

// MemoizedFunc is the shape of a function wrapped by Memoize
type MemoizedFunc[R any] func(ctx context.Context, args ...any) (R, error)

// Memoize wraps fn so its results are cached in c under keys derived from
// name and the call's arguments. The cache must be supplied explicitly;
// there is no ambient default instance.
//
// A cached value is returned without invoking fn. Lookup failures other
// than a decode against a stale shape degrade to a recomputation; errors
// returned by fn are never cached.
func Memoize[R any](c *Cache, name string, fn MemoizedFunc[R], opts MemoizeOptions) MemoizedFunc[R] {
	return func(ctx context.Context, args ...any) (R, error) {
		var zero R

		key, err := memoKey(name, opts, args)
		if err != nil {
			return zero, err
		}

		var cached R
		if err := c.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}

		result, err := fn(ctx, args...)
		if err != nil {
			return zero, err
		}

		if err := c.Set(ctx, key, result, opts.TTL); err != nil && opts.OnSetError != nil {
			opts.OnSetError(key, err)
		}
		return result, nil
	}
}

func memoKey(name string, opts MemoizeOptions, args []any) (string, error) {
	if opts.KeyFunc != nil {
		return opts.KeyFunc(args...)
	}
	return DeriveKey(opts.KeyPrefix, name, args...)
}
