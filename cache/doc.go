// Package cache provides the bounded, recency-ordered store behind the
// keep-alive controller.
//
// It provides a generic Store with LRU eviction, cache key derivation that
// disambiguates components sharing one constructor, and parsing of the
// user-facing max bound. Removal issues a disposal request unless the entry
// belongs to the subtree currently on screen.
package cache
