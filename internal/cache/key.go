package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"pocketcache/internal/models"
)

// maxKeyLength is the longest derived key kept verbatim; anything longer
// collapses to its sha256 digest.
const maxKeyLength = 250

// DeriveKey builds a deterministic cache key from a prefix, a function name
// and its arguments. Arguments are canonically JSON-encoded rather than
// stringified, so argument shapes that print identically (say, the int 1 and
// the string "1") still derive distinct keys. Keys longer than maxKeyLength
// are replaced by their sha256 hex digest.
func DeriveKey(prefix, name string, args ...any) (string, error) {
	parts := []string{prefix, name}

	if len(args) > 0 {
		encoded, err := json.Marshal(args)
		if err != nil {
			return "", models.NewSerializationError("serialize", err)
		}
		parts = append(parts, string(encoded))
	}

	key := strings.Join(parts, ":")
	if len(key) > maxKeyLength {
		sum := sha256.Sum256([]byte(key))
		key = hex.EncodeToString(sum[:])
	}
	return key, nil
}
