package cache

import (
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
	ErrInvariant  = errors.New("cache: store invariant violated")
)

// Key uniquely identifies a cached subtree.
type Key = string

// Entry is a cached subtree.
//
// Name is the declared identity used for pattern matching. Tag is used only
// to recognise the subtree currently displayed during disposal.
type Entry[V any] struct {
	Name     string
	Tag      string
	Instance V
}

// Disposer frees a materialized instance. A nil Disposer disposes nothing.
//
// Disposers run synchronously and must not call back into the Store.
type Disposer[V any] func(instance V)

// Removal describes an entry dropped from a Store.
type Removal[V any] struct {
	Key   Key
	Entry Entry[V]
	// Disposed is false when the entry was guarded as the displayed
	// subtree or no Disposer was supplied.
	Disposed bool
}

// ValidateKey checks if a key is usable as a cache key.
func ValidateKey(key Key) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}

	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}

	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}

	return nil
}
