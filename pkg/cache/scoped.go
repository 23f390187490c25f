package cache

// ScopedKeyer wraps a Keyer with a prefix so that several serve-mode
// deployments can share one backend without key collisions.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DocumentKey generates a prefixed key for a rendered document.
func (k *ScopedKeyer) DocumentKey(oldHash, newHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(oldHash, newHash, opts)
}
