package utils

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// GenerateID returns a random document id, optionally prefixed.
func GenerateID(prefix string) string {
	id := uuid.NewString()
	if prefix != "" {
		return fmt.Sprintf("%s-%s", prefix, id)
	}
	return id
}

// ContentETag is a strong ETag for served media bytes.
func ContentETag(data []byte) string {
	sum := blake2b.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// HashClientKey fingerprints a client scope so raw addresses are not persisted.
func HashClientKey(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
