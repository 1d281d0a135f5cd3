package serializer

// Serializer defines the interface for converting values to and from the
// byte representation handed to a cache backend.
// External packages should use this interface, not the concrete implementations.
type Serializer interface {
	// Serialize encodes a value into bytes.
	// Returns a *models.SerializationError if the value cannot be encoded.
	Serialize(value any) ([]byte, error)

	// Deserialize decodes bytes into dest, which must be a pointer.
	// Returns a *models.SerializationError if the bytes cannot be decoded.
	Deserialize(data []byte, dest any) error
}
