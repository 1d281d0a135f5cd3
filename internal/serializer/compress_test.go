package serializer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketcache/internal/models"
)

func TestCompressedSerializer_RoundTrip(t *testing.T) {
	type payload struct {
		Body string `json:"body"`
	}

	s := NewCompressed(nil)
	original := payload{Body: strings.Repeat("compressible content ", 200)}

	data, err := s.Serialize(original)
	require.NoError(t, err)

	var restored payload
	err = s.Deserialize(data, &restored)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestCompressedSerializer_ShrinksRepetitiveData(t *testing.T) {
	s := NewCompressed(nil)
	plain := NewJSON()

	value := strings.Repeat("abcdefgh", 1000)

	compressed, err := s.Serialize(value)
	require.NoError(t, err)
	uncompressed, err := plain.Serialize(value)
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(uncompressed))
}

func TestCompressedSerializer_Deserialize_Garbage(t *testing.T) {
	s := NewCompressed(nil)

	var dest string
	err := s.Deserialize([]byte("definitely not a minlz block"), &dest)

	var serErr *models.SerializationError
	require.ErrorAs(t, err, &serErr)
	assert.Equal(t, "deserialize", serErr.Op)
}

func TestCompressedSerializer_Serialize_InnerError(t *testing.T) {
	s := NewCompressed(NewJSON())

	data, err := s.Serialize(make(chan int))
	assert.Nil(t, data)

	var serErr *models.SerializationError
	assert.ErrorAs(t, err, &serErr)
}
