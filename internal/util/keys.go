package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// StorageKey returns the provider key for one cache instance.
// The instance id is hashed so keys stay short and fixed-length.
func StorageKey(namespace, instanceID string) string {
	sum := sha256.Sum256([]byte(instanceID))
	return "flight:" + namespace + ":" + hex.EncodeToString(sum[:8])
}
