package yfast

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/psearch/levelsearch"
)

// YFastSet is an ordered set of fixed-width unsigned integer keys, built
// on top of YFastMap[K, struct{}].
type YFastSet[K levelsearch.Uint] struct {
	m *YFastMap[K, struct{}]
}

// NewSet returns an empty set.
func NewSet[K levelsearch.Uint]() *YFastSet[K] {
	return &YFastSet[K]{m: New[K, struct{}]()}
}

// Len reports the number of keys stored.
func (s *YFastSet[K]) Len() int { return s.m.Len() }

// IsEmpty reports whether the set holds no keys.
func (s *YFastSet[K]) IsEmpty() bool { return s.m.IsEmpty() }

// Clear removes every key.
func (s *YFastSet[K]) Clear() { s.m.Clear() }

// Contains reports whether key is a member of the set.
func (s *YFastSet[K]) Contains(key K) bool { return s.m.ContainsKey(key) }

// Insert adds key to the set, reporting whether it was newly added.
func (s *YFastSet[K]) Insert(key K) bool {
	_, existed := s.m.Insert(key, struct{}{})
	return !existed
}

// Remove deletes key from the set, reporting whether it was present.
func (s *YFastSet[K]) Remove(key K) bool {
	_, existed := s.m.Remove(key)
	return existed
}

// Predecessor returns the greatest stored key less than or equal to key.
func (s *YFastSet[K]) Predecessor(key K) (K, bool) {
	k, _, ok := s.m.Predecessor(key)
	return k, ok
}

// Successor returns the smallest stored key greater than or equal to key.
func (s *YFastSet[K]) Successor(key K) (K, bool) {
	k, _, ok := s.m.Successor(key)
	return k, ok
}

// Iter walks every key in ascending order.
func (s *YFastSet[K]) Iter(yield func(K) bool) {
	s.m.Iter(func(k K, _ struct{}) bool { return yield(k) })
}

// Keys returns the set of every key currently stored.
func (s *YFastSet[K]) Keys() *set3.Set3[K] {
	return s.m.Keys()
}
