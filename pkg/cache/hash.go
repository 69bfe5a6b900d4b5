package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a stage-prefixed cache key by hashing the components.
// The key format is: stage:hash(parts...)
func hashKey(stage string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) so bulletin and geometry hashes never collide
	return fmt.Sprintf("%s:%s", stage, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data, typically a serialized
// bulletin, balanced operation list, or plan.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
