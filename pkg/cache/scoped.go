package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Shared backends (Redis, MongoDB) serving several planning contexts
// need separate key namespaces so that one context's entries never
// shadow another's.
//
// Example usage:
//
//	// Style-specific keys when several product styles share one Redis
//	styleKeyer := NewScopedKeyer(NewDefaultKeyer(), "style:MS-104:")
//
//	// Plain keys for a single-tenant CLI cache
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// BalanceKey generates a prefixed key for balancing results.
func (k *ScopedKeyer) BalanceKey(bulletinHash string, opts BalanceKeyOpts) string {
	return k.prefix + k.inner.BalanceKey(bulletinHash, opts)
}

// LayoutKey generates a prefixed key for floor plan caching.
func (k *ScopedKeyer) LayoutKey(balanceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(balanceHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
