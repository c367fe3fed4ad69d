package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Metadata describes an ingested document
type Metadata struct {
	Source string `json:"source,omitempty"`
	Format Format `json:"format"`
	Hash   string `json:"hash"` // SHA256 hex digest of the normalized text
	Chars  int    `json:"chars"`
}

// NewMetadata creates a new Metadata instance for content
func NewMetadata(content string, source string, format Format) *Metadata {
	return &Metadata{
		Source: source,
		Format: format,
		Hash:   computeHash(content),
		Chars:  len(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
