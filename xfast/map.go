// Package xfast implements an x-fast trie style ordered map over
// fixed-width unsigned integer keys: an exact-match hash index paired with
// a levelsearch.LSS that answers predecessor/successor queries by
// descending the key's byte representation to its longest existing
// prefix.
package xfast

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/psearch/levelsearch"
)

// XFastMap is an ordered map from fixed-width unsigned integer keys to
// values of type V, supporting exact lookup as well as predecessor and
// successor queries.
type XFastMap[K levelsearch.Uint, V any] struct {
	lss *levelsearch.LSS[K, V]
	idx map[K]*levelsearch.LNode[K, V]
}

// New returns an empty map.
func New[K levelsearch.Uint, V any]() *XFastMap[K, V] {
	return &XFastMap[K, V]{
		lss: levelsearch.New[K, V](),
		idx: make(map[K]*levelsearch.LNode[K, V]),
	}
}

// Len reports the number of keys stored.
func (m *XFastMap[K, V]) Len() int { return len(m.idx) }

// IsEmpty reports whether the map holds no keys.
func (m *XFastMap[K, V]) IsEmpty() bool { return len(m.idx) == 0 }

// Clear removes every key and value.
func (m *XFastMap[K, V]) Clear() {
	m.lss.Clear()
	m.idx = make(map[K]*levelsearch.LNode[K, V])
}

// Get returns the value stored for key, if any.
func (m *XFastMap[K, V]) Get(key K) (V, bool) {
	node, ok := m.idx[key]
	if !ok {
		var zero V
		return zero, false
	}
	return node.Value, true
}

// ContainsKey reports whether key has an associated value.
func (m *XFastMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.idx[key]
	return ok
}

// Insert associates value with key, returning the previous value if key
// was already present.
func (m *XFastMap[K, V]) Insert(key K, value V) (V, bool) {
	if node, ok := m.idx[key]; ok {
		old := node.Value
		node.Value = value
		return old, true
	}
	node := levelsearch.NewLNode(key, value)
	m.lss.Insert(node)
	m.idx[key] = node
	var zero V
	return zero, false
}

// Remove deletes key, returning its value if it was present.
func (m *XFastMap[K, V]) Remove(key K) (V, bool) {
	node, ok := m.idx[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.idx, key)
	m.lss.Remove(node)
	return node.Value, true
}

// Predecessor returns the greatest stored key less than or equal to key.
func (m *XFastMap[K, V]) Predecessor(key K) (K, V, bool) {
	node := m.lss.Predecessor(key)
	if node == nil {
		var zero V
		return 0, zero, false
	}
	return node.Key, node.Value, true
}

// Successor returns the smallest stored key greater than or equal to key.
func (m *XFastMap[K, V]) Successor(key K) (K, V, bool) {
	node := m.lss.Successor(key)
	if node == nil {
		var zero V
		return 0, zero, false
	}
	return node.Key, node.Value, true
}

// Iter walks every key/value pair in ascending key order.
func (m *XFastMap[K, V]) Iter(yield func(K, V) bool) {
	for node := m.lss.Min(); node != nil; node = node.Next() {
		if !yield(node.Key, node.Value) {
			return
		}
	}
}

// Range walks key/value pairs between lo and hi, in ascending order,
// honoring the requested inclusivity at each bound.
func (m *XFastMap[K, V]) Range(lo, hi K, loInclusive, hiInclusive bool, yield func(K, V) bool) {
	var node *levelsearch.LNode[K, V]
	if loInclusive {
		node = m.lss.Successor(lo)
	} else if lo == ^K(0) {
		node = nil
	} else {
		node = m.lss.Successor(lo + 1)
	}

	for node != nil {
		within := false
		switch {
		case hiInclusive:
			within = node.Key <= hi
		default:
			within = node.Key < hi
		}
		if !within {
			return
		}
		if !yield(node.Key, node.Value) {
			return
		}
		node = node.Next()
	}
}

// Keys returns the set of every key currently stored.
func (m *XFastMap[K, V]) Keys() *set3.Set3[K] {
	out := set3.EmptyWithCapacity[K](uint32(len(m.idx)))
	for k := range m.idx {
		out.Add(k)
	}
	return out
}
