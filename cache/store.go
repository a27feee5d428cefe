package cache

import (
	"fmt"
	"slices"
)

// Store maps cache keys to entries and keeps the keys ordered by recency.
//
// The head of the recency order is the least recently used key and the tail
// the most recently used. When a positive max is set the store never holds
// more than max entries after an insertion returns.
//
// A Store is not safe for concurrent use.
type Store[V any] struct {
	entries map[Key]*Entry[V]
	recency []Key
	max     int
}

// NewStore creates an empty store. A max of zero or less means unbounded.
func NewStore[V any](max int) *Store[V] {
	if max < 0 {
		max = 0
	}
	return &Store[V]{
		entries: make(map[Key]*Entry[V]),
		max:     max,
	}
}

// Get returns the entry for key without touching its recency.
func (s *Store[V]) Get(key Key) (*Entry[V], bool) {
	entry, ok := s.entries[key]
	if !ok || entry == nil {
		return nil, false
	}
	return entry, true
}

// Promote marks key as most recently used. It is a no-op for unknown keys.
func (s *Store[V]) Promote(key Key) {
	i := slices.Index(s.recency, key)
	if i < 0 {
		return
	}
	s.recency = append(slices.Delete(s.recency, i, i+1), key)
}

// Insert stores entry under key. An existing key is overwritten in place and
// keeps its recency position; a new key becomes most recently used. If the
// store then exceeds its bound the least recently used entry is removed,
// sparing the instance whose tag equals currentTag from disposal.
func (s *Store[V]) Insert(key Key, entry Entry[V], dispose Disposer[V], currentTag string) []Removal[V] {
	if _, ok := s.entries[key]; !ok {
		s.recency = append(s.recency, key)
	}
	e := entry
	s.entries[key] = &e

	return s.trim(dispose, currentTag)
}

// Remove drops key from the store. The entry's instance is disposed unless
// currentTag is non-empty and equal to the entry's tag; the entry is dropped
// either way.
func (s *Store[V]) Remove(key Key, dispose Disposer[V], currentTag string) (Removal[V], bool) {
	entry, ok := s.entries[key]
	if !ok {
		return Removal[V]{}, false
	}

	removal := Removal[V]{Key: key}
	if entry != nil {
		removal.Entry = *entry
		if dispose != nil && (currentTag == "" || entry.Tag != currentTag) {
			dispose(entry.Instance)
			removal.Disposed = true
		}
	}

	delete(s.entries, key)
	if i := slices.Index(s.recency, key); i >= 0 {
		s.recency = slices.Delete(s.recency, i, i+1)
	}

	return removal, true
}

// PruneWhere removes every named entry whose name fails keep. Entries
// without a name are never pruned.
func (s *Store[V]) PruneWhere(keep func(name string) bool, dispose Disposer[V], currentTag string) []Removal[V] {
	var removed []Removal[V]
	for _, key := range slices.Clone(s.recency) {
		entry := s.entries[key]
		if entry == nil || entry.Name == "" || keep(entry.Name) {
			continue
		}
		if r, ok := s.Remove(key, dispose, currentTag); ok {
			removed = append(removed, r)
		}
	}
	return removed
}

// Clear removes every entry, disposing all of them.
func (s *Store[V]) Clear(dispose Disposer[V]) []Removal[V] {
	removed := make([]Removal[V], 0, len(s.recency))
	for _, key := range slices.Clone(s.recency) {
		if r, ok := s.Remove(key, dispose, ""); ok {
			removed = append(removed, r)
		}
	}
	return removed
}

// SetMax changes the bound and evicts least recently used entries until the
// store fits. A max of zero or less removes the bound.
func (s *Store[V]) SetMax(max int, dispose Disposer[V], currentTag string) []Removal[V] {
	if max < 0 {
		max = 0
	}
	s.max = max
	return s.trim(dispose, currentTag)
}

func (s *Store[V]) trim(dispose Disposer[V], currentTag string) []Removal[V] {
	var removed []Removal[V]
	for s.max > 0 && len(s.recency) > s.max {
		r, ok := s.Remove(s.recency[0], dispose, currentTag)
		if !ok {
			// Orphaned head key; drop it so the loop terminates.
			s.recency = s.recency[1:]
			continue
		}
		removed = append(removed, r)
	}
	return removed
}

// Len returns the number of cached entries.
func (s *Store[V]) Len() int {
	return len(s.recency)
}

// Max returns the bound, or zero when unbounded.
func (s *Store[V]) Max() int {
	return s.max
}

// Keys returns the cached keys from least to most recently used.
func (s *Store[V]) Keys() []Key {
	return slices.Clone(s.recency)
}

// Verify checks the store's structural invariants.
func (s *Store[V]) Verify() error {
	if len(s.entries) != len(s.recency) {
		return fmt.Errorf("%w: %d entries but %d recency keys", ErrInvariant, len(s.entries), len(s.recency))
	}

	seen := make(map[Key]struct{}, len(s.recency))
	for _, key := range s.recency {
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate recency key %q", ErrInvariant, key)
		}
		seen[key] = struct{}{}

		if s.entries[key] == nil {
			return fmt.Errorf("%w: recency key %q has no entry", ErrInvariant, key)
		}
	}

	if s.max > 0 && len(s.recency) > s.max {
		return fmt.Errorf("%w: %d entries exceed max %d", ErrInvariant, len(s.recency), s.max)
	}

	return nil
}
