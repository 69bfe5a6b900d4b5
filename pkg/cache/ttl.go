package cache

import "time"

// Default TTLs per pipeline stage.
//
// Balancing results change whenever the bulletin or demand changes, and
// both are hashed into the key, so entries never go stale in content
// terms. The TTLs just bound disk/backend growth.
const (
	// TTLBalance is the default TTL for balanced operation lists.
	TTLBalance = 7 * 24 * time.Hour

	// TTLLayout is the default TTL for placed floor plans.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the default TTL for rendered artifacts.
	TTLArtifact = 24 * time.Hour
)
