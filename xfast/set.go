package xfast

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/psearch/levelsearch"
)

// XFastSet is an ordered set of fixed-width unsigned integer keys,
// built on top of XFastMap[K, struct{}].
type XFastSet[K levelsearch.Uint] struct {
	m *XFastMap[K, struct{}]
}

// NewSet returns an empty set.
func NewSet[K levelsearch.Uint]() *XFastSet[K] {
	return &XFastSet[K]{m: New[K, struct{}]()}
}

// Len reports the number of keys stored.
func (s *XFastSet[K]) Len() int { return s.m.Len() }

// IsEmpty reports whether the set holds no keys.
func (s *XFastSet[K]) IsEmpty() bool { return s.m.IsEmpty() }

// Clear removes every key.
func (s *XFastSet[K]) Clear() { s.m.Clear() }

// Contains reports whether key is a member of the set.
func (s *XFastSet[K]) Contains(key K) bool { return s.m.ContainsKey(key) }

// Insert adds key to the set, reporting whether it was newly added.
func (s *XFastSet[K]) Insert(key K) bool {
	_, existed := s.m.Insert(key, struct{}{})
	return !existed
}

// Remove deletes key from the set, reporting whether it was present.
func (s *XFastSet[K]) Remove(key K) bool {
	_, existed := s.m.Remove(key)
	return existed
}

// Predecessor returns the greatest stored key less than or equal to key.
func (s *XFastSet[K]) Predecessor(key K) (K, bool) {
	k, _, ok := s.m.Predecessor(key)
	return k, ok
}

// Successor returns the smallest stored key greater than or equal to key.
func (s *XFastSet[K]) Successor(key K) (K, bool) {
	k, _, ok := s.m.Successor(key)
	return k, ok
}

// Iter walks every key in ascending order.
func (s *XFastSet[K]) Iter(yield func(K) bool) {
	s.m.Iter(func(k K, _ struct{}) bool { return yield(k) })
}

// Range walks keys between lo and hi, in ascending order, honoring the
// requested inclusivity at each bound.
func (s *XFastSet[K]) Range(lo, hi K, loInclusive, hiInclusive bool, yield func(K) bool) {
	s.m.Range(lo, hi, loInclusive, hiInclusive, func(k K, _ struct{}) bool { return yield(k) })
}

// Keys returns the set of every key currently stored.
func (s *XFastSet[K]) Keys() *set3.Set3[K] {
	return s.m.Keys()
}
