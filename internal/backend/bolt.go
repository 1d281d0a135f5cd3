package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"pocketcache/internal/models"
)

// boltBucket is the name of the bbolt bucket holding cache entries.
const boltBucket = "pocketcache"

// BoltBackend implements Backend using bbolt, an embedded key-value store.
// Entries use the same record layout as the filesystem backend; corrupt
// records degrade to a miss rather than an error. Unlike the in-process
// backends, Close releases a real resource (the database handle), so
// operations after Close return models.ErrBackendClosed.
type BoltBackend struct {
	db     *bbolt.DB
	mu     sync.RWMutex
	closed bool
}

// NewBolt creates a new bbolt-backed cache at the given database path.
// A zero fileMode defaults to 0600.
func NewBolt(path string, fileMode os.FileMode) (Backend, error) {
	return newBolt(path, fileMode)
}

// newBolt creates the concrete implementation
func newBolt(path string, fileMode os.FileMode) (*BoltBackend, error) {
	if fileMode == 0 {
		fileMode = defaultFileMode
	}

	db, err := bbolt.Open(path, fileMode, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return createErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

// Get retrieves the stored bytes for the given key.
// Corrupt records are treated as a miss; expired records are removed
// best-effort before the miss is reported.
func (b *BoltBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, models.ErrBackendClosed
	}

	var (
		value   []byte
		expired bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if data == nil {
			return models.ErrCacheMiss
		}

		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return models.ErrCacheMiss
		}

		if rec.expired(time.Now()) {
			expired = true
			return models.ErrCacheMiss
		}

		value = rec.Value
		return nil
	})
	if expired {
		// Lazy purge; failure to remove only delays the next miss.
		_ = b.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket([]byte(boltBucket)).Delete([]byte(key))
		})
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value without expiration
func (b *BoltBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.put(key, value, 0)
}

// SetWithTTL stores a value that expires after ttl.
// A ttl <= 0 behaves as Delete: the entry must not persist.
func (b *BoltBackend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return b.Delete(ctx, key)
	}
	return b.put(key, value, ttl)
}

func (b *BoltBackend) put(key string, value []byte, ttl time.Duration) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return models.ErrBackendClosed
	}

	data, err := json.Marshal(newRecord(value, time.Now(), ttl))
	if err != nil {
		return models.NewSerializationError("serialize", err)
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), data)
	})
}

// Delete removes the entry for the given key.
// Deleting a key that does not exist is not an error.
func (b *BoltBackend) Delete(ctx context.Context, key string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return models.ErrBackendClosed
	}

	// bbolt's Delete on an absent key is already a no-op.
	_ = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(key))
	})
	return nil
}

// Clear removes all entries from the cache, best-effort
func (b *BoltBackend) Clear(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return models.ErrBackendClosed
	}

	_ = b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boltBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(boltBucket))
		return err
	})
	return nil
}

// Close closes the underlying database.
// This method is idempotent - calling Close multiple times is safe.
func (b *BoltBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	return b.db.Close()
}
