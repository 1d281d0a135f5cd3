package models

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss indicates that a key is not present in the backend,
	// either never stored or already expired
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrCacheDirNotFound indicates that the filesystem backend's cache
	// directory does not exist and auto-creation was disabled
	ErrCacheDirNotFound = errors.New("cache directory does not exist")

	// ErrBackendClosed indicates that an operation was attempted on a
	// backend whose Close already released its resources
	ErrBackendClosed = errors.New("cache backend is closed")
)

// SerializationError represents a failure to convert a value to or from
// its stored byte representation
type SerializationError struct {
	Op  string // "serialize" or "deserialize"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to %s cache value: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// NewSerializationError creates a new serialization error for the given operation
func NewSerializationError(op string, err error) *SerializationError {
	return &SerializationError{
		Op:  op,
		Err: err,
	}
}
