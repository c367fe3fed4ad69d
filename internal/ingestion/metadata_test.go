package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("test content")
	hash3 := computeHash("different content")

	assert.Equal(t, hash1, hash2)
	assert.NotEqual(t, hash1, hash3)
	assert.Len(t, hash1, 64)
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("hello", "resume.txt", FormatText)

	assert.Equal(t, "resume.txt", metadata.Source)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, computeHash("hello"), metadata.Hash)
	assert.Equal(t, 5, metadata.Chars)
}
