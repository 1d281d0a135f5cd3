package backend

import (
	"context"
	"sync"
	"time"

	"pocketcache/internal/models"
)

// MemoryBackend implements Backend using in-memory storage
type MemoryBackend struct {
	data  map[string]*memoryEntry
	mutex sync.Mutex
}

// memoryEntry represents a single cache entry with optional expiration
type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero value means the entry never expires
}

// expired reports whether the entry's expiry has passed at time now.
func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemory creates a new in-memory cache backend
func NewMemory() Backend {
	return newMemory()
}

// newMemory creates the concrete implementation
func newMemory() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string]*memoryEntry),
	}
}

// Get retrieves the stored bytes for the given key.
// An expired entry is removed under the same lock as the lookup, so two
// concurrent readers can never observe an entry past its expiry.
func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.data[key]
	if !exists {
		return nil, models.ErrCacheMiss
	}

	if entry.expired(time.Now()) {
		delete(m.data, key)
		return nil, models.ErrCacheMiss
	}

	// Copy so callers cannot mutate the stored bytes.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores a value without expiration
func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	return m.store(key, value, time.Time{})
}

// SetWithTTL stores a value that expires after ttl.
// A ttl <= 0 behaves as Delete: the entry must not persist.
func (m *MemoryBackend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return m.Delete(ctx, key)
	}
	return m.store(key, value, time.Now().Add(ttl))
}

func (m *MemoryBackend) store(key string, value []byte, expiresAt time.Time) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = &memoryEntry{
		value:     stored,
		expiresAt: expiresAt,
	}
	return nil
}

// Delete removes an entry from the cache.
// Deleting a key that does not exist is not an error.
func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.data, key)
	return nil
}

// Clear removes all entries from the cache
func (m *MemoryBackend) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data = make(map[string]*memoryEntry)
	return nil
}

// Close is a no-op: the backend holds no external resource and remains
// usable after Close returns.
func (m *MemoryBackend) Close() error {
	return nil
}

// Size returns the current number of cached entries (for monitoring)
func (m *MemoryBackend) Size() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.data)
}
