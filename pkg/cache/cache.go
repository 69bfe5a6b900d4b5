// Package cache provides caching for the planning pipeline.
//
// The pipeline runs three expensive-ish stages (balance, placement,
// artifact rendering) and each stage result is cacheable independently.
// This package defines the storage interface plus backends:
//   - file: directory-backed cache for CLI usage
//   - redis: shared cache for multi-instance API deployments
//   - mongo: document-backed cache when layouts already live in MongoDB
//   - null: disables caching
//
// # Keys
//
// Keys are generated through the Keyer interface so that every consumer
// hashes stage inputs the same way:
//
//	keyer := cache.NewDefaultKeyer()
//	key := cache.LayoutKeyFor(keyer, balanceHash, geometryHash)
//
// A ScopedKeyer prepends a namespace prefix, which keeps concurrent
// planning contexts (per style, per user) from colliding in a shared
// backend.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache storage backends.
// All methods are safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BalanceKeyOpts captures the inputs that change a balancing result.
type BalanceKeyOpts struct {
	TargetPerDay   float64 `json:"target_per_day"`
	WorkingMinutes float64 `json:"working_minutes"`
}

// LayoutKeyOpts captures the inputs that change a placement result.
type LayoutKeyOpts struct {
	GeometryHash string `json:"geometry_hash"`
}

// ArtifactKeyOpts captures the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // "svg", "png", "dot"
	Style  string `json:"style"`
}

// Keyer generates cache keys for pipeline stages.
// Implementations must be deterministic: the same inputs always produce
// the same key.
type Keyer interface {
	// BalanceKey generates a key for a balanced operation list.
	// bulletinHash is the content hash of the parsed operation bulletin.
	BalanceKey(bulletinHash string, opts BalanceKeyOpts) string

	// LayoutKey generates a key for a placed floor plan.
	// balanceHash is the content hash of the balancing result.
	LayoutKey(balanceHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// layoutHash is the content hash of the floor plan.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
// Keys embed a stage prefix plus a SHA-256 hash of all inputs, so two
// runs with identical inputs share cache entries across processes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BalanceKey generates a key for a balanced operation list.
func (k *DefaultKeyer) BalanceKey(bulletinHash string, opts BalanceKeyOpts) string {
	return hashKey("balance", bulletinHash, opts)
}

// LayoutKey generates a key for a placed floor plan.
func (k *DefaultKeyer) LayoutKey(balanceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", balanceHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
