package backend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketcache/internal/models"
)

func TestMemoryBackend_SetAndGet(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	err := m.Set(ctx, "test-key", []byte("test-value"))
	require.NoError(t, err)

	value, err := m.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("test-value"), value)
}

func TestMemoryBackend_Get_NotFound(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	value, err := m.Get(ctx, "non-existent")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryBackend_Get_Expired(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	err := m.SetWithTTL(ctx, "expiring-key", []byte("expiring-value"), 100*time.Millisecond)
	require.NoError(t, err)

	// Still present before expiry
	value, err := m.Get(ctx, "expiring-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("expiring-value"), value)

	time.Sleep(200 * time.Millisecond)

	value, err = m.Get(ctx, "expiring-key")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)

	// Lazy expiry removed the entry, not just hid it
	assert.Equal(t, 0, m.Size())
}

func TestMemoryBackend_SetWithTTL_NonPositive(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{"zero TTL", 0},
		{"negative TTL", -1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemory()
			ctx := context.Background()

			// Pre-existing entry must be removed, not overwritten
			require.NoError(t, m.Set(ctx, "key", []byte("old")))

			err := m.SetWithTTL(ctx, "key", []byte("new"), tt.ttl)
			require.NoError(t, err)

			value, err := m.Get(ctx, "key")
			assert.Nil(t, value)
			assert.ErrorIs(t, err, models.ErrCacheMiss)
			assert.Equal(t, 0, m.Size())
		})
	}
}

func TestMemoryBackend_Set_Overwrite(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	err := m.Set(ctx, "key", []byte("value1"))
	require.NoError(t, err)

	err = m.Set(ctx, "key", []byte("value2"))
	require.NoError(t, err)

	value, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value2"), value)
}

func TestMemoryBackend_NeverExpires(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	err := m.Set(ctx, "forever", []byte("v"))
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	value, err := m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestMemoryBackend_Delete(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	err := m.Set(ctx, "test-key", []byte("test-value"))
	require.NoError(t, err)

	err = m.Delete(ctx, "test-key")
	require.NoError(t, err)

	value, err := m.Get(ctx, "test-key")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryBackend_Delete_Idempotent(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	// Deleting an absent key twice must not error or change state
	assert.NoError(t, m.Delete(ctx, "non-existent"))
	assert.NoError(t, m.Delete(ctx, "non-existent"))
	assert.Equal(t, 0, m.Size())
}

func TestMemoryBackend_Clear(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	require.NoError(t, m.SetWithTTL(ctx, "c", []byte("3"), time.Hour))

	err := m.Clear(ctx)
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		_, err := m.Get(ctx, key)
		assert.ErrorIs(t, err, models.ErrCacheMiss)
	}
	assert.Equal(t, 0, m.Size())
}

func TestMemoryBackend_Close_NoOp(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	// Backend remains usable after Close
	err := m.Set(ctx, "key", []byte("value"))
	require.NoError(t, err)

	value, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryBackend_ValueIsolation(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, m.Set(ctx, "key", original))

	// Mutating the caller's slice must not affect the stored entry
	original[0] = 'X'

	value, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), value)

	// Mutating a returned slice must not affect later reads
	value[0] = 'Y'
	again, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryBackend_ConcurrentAccess(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.SetWithTTL(ctx, "shared", []byte("payload-of-fixed-length"), time.Hour)
			if value, err := m.Get(ctx, "shared"); err == nil {
				// Whatever racer wrote it, the read must never be torn
				assert.Equal(t, []byte("payload-of-fixed-length"), value)
			}
			_ = m.Delete(ctx, "shared")
		}()
	}
	wg.Wait()
}

func TestMemoryBackend_Scenario_ShortTTL(t *testing.T) {
	m := newMemory()
	ctx := context.Background()

	require.NoError(t, m.SetWithTTL(ctx, "k", []byte("v1"), 1*time.Second))

	value, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	time.Sleep(1100 * time.Millisecond)

	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}
