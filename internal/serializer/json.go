package serializer

import (
	"encoding/json"

	"pocketcache/internal/models"
)

// JSONSerializer implements Serializer using encoding/json.
// Only JSON-encodable values are supported.
type JSONSerializer struct{}

// NewJSON creates a new JSON serializer
func NewJSON() Serializer {
	return JSONSerializer{}
}

// Serialize encodes a value as JSON bytes
func (JSONSerializer) Serialize(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, models.NewSerializationError("serialize", err)
	}
	return data, nil
}

// Deserialize decodes JSON bytes into dest
func (JSONSerializer) Deserialize(data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return models.NewSerializationError("deserialize", err)
	}
	return nil
}
