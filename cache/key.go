package cache

// KeySeparator joins constructor identity and tag in derived keys.
const KeySeparator = "::"

// Keyer derives cache keys for subtrees.
//
// Contract:
// - Determinism: same inputs must produce the same key.
// - An explicit key always wins over derived keys.
type Keyer interface {
	// Key returns the cache key for a subtree with the given explicit key,
	// constructor identity and declared tag.
	Key(explicit, ctorID, tag string) Key
}

// DefaultKeyer derives keys as the explicit key when present, otherwise as
// <ctorID>::<tag>, or just <ctorID> when there is no tag.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key derives a cache key. The same constructor may be registered under
// several local tags, so the tag is part of the derived key.
func (k *DefaultKeyer) Key(explicit, ctorID, tag string) Key {
	return DeriveKey(explicit, ctorID, tag)
}

// DeriveKey implements the DefaultKeyer rule.
func DeriveKey(explicit, ctorID, tag string) Key {
	if explicit != "" {
		return explicit
	}
	if tag != "" {
		return ctorID + KeySeparator + tag
	}
	return ctorID
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
