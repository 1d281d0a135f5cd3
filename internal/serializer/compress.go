package serializer

import (
	"github.com/minio/minlz"

	"pocketcache/internal/models"
)

// CompressedSerializer wraps another Serializer and compresses its output
// with minlz block compression. Useful for large values on the persistent
// backends, where payload size translates directly into I/O.
type CompressedSerializer struct {
	inner Serializer
	level int
}

// NewCompressed creates a serializer that compresses inner's encoding.
// A nil inner defaults to the JSON serializer.
func NewCompressed(inner Serializer) Serializer {
	if inner == nil {
		inner = NewJSON()
	}
	return &CompressedSerializer{
		inner: inner,
		level: minlz.LevelBalanced,
	}
}

// Serialize encodes the value with the inner serializer and compresses the result
func (c *CompressedSerializer) Serialize(value any) ([]byte, error) {
	data, err := c.inner.Serialize(value)
	if err != nil {
		return nil, err
	}

	compressed, err := minlz.Encode(nil, data, c.level)
	if err != nil {
		return nil, models.NewSerializationError("serialize", err)
	}
	return compressed, nil
}

// Deserialize decompresses the data and decodes it with the inner serializer
func (c *CompressedSerializer) Deserialize(data []byte, dest any) error {
	decompressed, err := minlz.Decode(nil, data)
	if err != nil {
		return models.NewSerializationError("deserialize", err)
	}
	return c.inner.Deserialize(decompressed, dest)
}
