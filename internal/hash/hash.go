// Package hash provides content hashing for persisted layout data.
//
// zoned uses SHA-256 digests to verify that a backup copy of the layouts
// file matches its source before a destructive operation proceeds.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes digests of file contents.
type Hasher interface {
	// Sum returns the hex digest of data.
	Sum(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Sum returns the hex-encoded SHA-256 digest of data.
func (h *SHA256Hasher) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
