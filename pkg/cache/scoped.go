package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis database without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "qrsvg:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) MatrixKey(text, level string) string {
	return k.prefix + k.inner.MatrixKey(text, level)
}

func (k *ScopedKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(gridHash, opts)
}
