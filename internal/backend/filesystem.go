package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pocketcache/internal/models"
)

const (
	// cacheFileSuffix marks a file as belonging to this backend's managed
	// set; Clear only ever touches files carrying it.
	cacheFileSuffix = ".cache"

	defaultCacheDir = ".cache"
	defaultDirMode  = os.FileMode(0o700)
	defaultFileMode = os.FileMode(0o600)
)

// FilesystemConfig holds the configuration surface of the filesystem backend
type FilesystemConfig struct {
	// Dir is the directory cache files are stored under. Defaults to ".cache".
	Dir string
	// CreateDir controls whether a missing Dir is created at construction
	// time. When false, a missing directory is a configuration error.
	CreateDir bool
	// DirMode is the permission mode for a created cache directory. Defaults to 0700.
	DirMode os.FileMode
	// FileMode is the permission mode for cache files. Defaults to 0600.
	FileMode os.FileMode
}

// FilesystemBackend implements Backend by persisting each entry as an
// independent file under a configured directory. Writes go through a
// uniquely named temporary file followed by an atomic rename, so a reader
// never observes a partially written record. There is no in-process locking:
// the rename is the sole synchronization point between concurrent writers.
type FilesystemBackend struct {
	dir      string
	fileMode os.FileMode
}

// NewFilesystem creates a new filesystem cache backend.
// Returns models.ErrCacheDirNotFound if the directory is missing and
// cfg.CreateDir is false.
func NewFilesystem(cfg FilesystemConfig) (Backend, error) {
	return newFilesystem(cfg)
}

// newFilesystem creates the concrete implementation
func newFilesystem(cfg FilesystemConfig) (*FilesystemBackend, error) {
	if cfg.Dir == "" {
		cfg.Dir = defaultCacheDir
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = defaultDirMode
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = defaultFileMode
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory %q: %w", cfg.Dir, err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if !cfg.CreateDir {
			return nil, fmt.Errorf("%w: %s", models.ErrCacheDirNotFound, dir)
		}
		if err := os.MkdirAll(dir, cfg.DirMode); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %q: %w", dir, err)
		}
	}

	return &FilesystemBackend{
		dir:      dir,
		fileMode: cfg.FileMode,
	}, nil
}

// path derives the file path for a cache key. The name is a stable
// cryptographic hash of the key, so the mapping is a pure function of the
// key across processes, and filesystem-unsafe key characters never reach
// the filesystem.
func (f *FilesystemBackend) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+cacheFileSuffix)
}

// Get retrieves the stored bytes for the given key.
// A missing, unreadable, or corrupt record is uniformly a miss; an expired
// record is removed best-effort before the miss is reported.
func (f *FilesystemBackend) Get(ctx context.Context, key string) ([]byte, error) {
	path := f.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.ErrCacheMiss
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, models.ErrCacheMiss
	}

	if rec.expired(time.Now()) {
		removeFile(path)
		return nil, models.ErrCacheMiss
	}

	return rec.Value, nil
}

// Set stores a value without expiration
func (f *FilesystemBackend) Set(ctx context.Context, key string, value []byte) error {
	return f.writeRecord(f.path(key), value, 0)
}

// SetWithTTL stores a value that expires after ttl.
// A ttl <= 0 performs no write at all: the key is removed instead, and no
// artifact may be left under the cache directory.
func (f *FilesystemBackend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return f.Delete(ctx, key)
	}
	return f.writeRecord(f.path(key), value, ttl)
}

// writeRecord persists a record at path via a temporary file and an atomic
// rename. On any failure the temporary file is removed and the error is
// surfaced; the final path is left holding its previous content, if any.
func (f *FilesystemBackend) writeRecord(path string, value []byte, ttl time.Duration) error {
	data, err := json.Marshal(newRecord(value, time.Now(), ttl))
	if err != nil {
		return models.NewSerializationError("serialize", err)
	}

	// Unique per writer so concurrent sets of the same key never share a
	// temporary path.
	tmpPath := path + "." + uuid.New().String() + ".tmp"

	if err := os.WriteFile(tmpPath, data, f.fileMode); err != nil {
		removeFile(tmpPath)
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	// WriteFile's mode is filtered through the umask; enforce the configured
	// bits explicitly.
	if err := os.Chmod(tmpPath, f.fileMode); err != nil {
		removeFile(tmpPath)
		return fmt.Errorf("failed to set cache file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		removeFile(tmpPath)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}

// Delete removes the entry for the given key.
// A missing file or a failing removal is not an error.
func (f *FilesystemBackend) Delete(ctx context.Context, key string) error {
	removeFile(f.path(key))
	return nil
}

// Clear removes every cache file under the directory, best-effort.
// Files without the cache suffix are left untouched; enumeration or removal
// failures are swallowed.
func (f *FilesystemBackend) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), cacheFileSuffix) {
			continue
		}
		removeFile(filepath.Join(f.dir, entry.Name()))
	}
	return nil
}

// Close is a no-op: the backend holds no resource beyond the filesystem
// itself and remains usable after Close returns.
func (f *FilesystemBackend) Close() error {
	return nil
}

// removeFile deletes a file, ignoring failure
func removeFile(path string) {
	_ = os.Remove(path)
}
