package cache

import (
	"context"
	"time"

	"pocketcache/internal/backend"
	"pocketcache/internal/serializer"
)

// DefaultTTL is the expiration applied by Set when the cache was constructed
// without an explicit default.
const DefaultTTL = 5 * time.Minute

// Cache binds a storage backend, a value serializer and a default TTL into a
// typed facade. It is safe for concurrent use whenever its backend is.
type Cache struct {
	backend    backend.Backend
	serializer serializer.Serializer
	defaultTTL time.Duration
}

// New creates a cache over the given backend and serializer.
// A nil backend defaults to the in-memory backend, a nil serializer to JSON,
// and a defaultTTL <= 0 to DefaultTTL.
func New(b backend.Backend, s serializer.Serializer, defaultTTL time.Duration) *Cache {
	if b == nil {
		b = backend.NewMemory()
	}
	if s == nil {
		s = serializer.NewJSON()
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		backend:    b,
		serializer: s,
		defaultTTL: defaultTTL,
	}
}

// Get retrieves the value stored under key and deserializes it into dest,
// which must be a pointer. Returns models.ErrCacheMiss when the key is
// absent or expired, and a *models.SerializationError when the stored bytes
// cannot be decoded into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	return c.serializer.Deserialize(data, dest)
}

// Set serializes value and stores it under key.
// A ttl of 0 applies the cache's default TTL; a negative ttl removes the key
// instead of storing anything.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if ttl < 0 {
		return c.backend.Delete(ctx, key)
	}

	data, err := c.serializer.Serialize(value)
	if err != nil {
		return err
	}
	return c.backend.SetWithTTL(ctx, key, data, ttl)
}

// SetForever serializes value and stores it under key without expiration
func (c *Cache) SetForever(ctx context.Context, key string, value any) error {
	data, err := c.serializer.Serialize(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, data)
}

// Delete removes the value stored under key
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// Clear removes all values from the cache
func (c *Cache) Clear(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

// Close releases the backend's resources
func (c *Cache) Close() error {
	return c.backend.Close()
}
