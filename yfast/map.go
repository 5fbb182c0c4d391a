// Package yfast implements a y-fast trie style ordered map: a
// levelsearch.LSS indexes buckets of up to 2*w key/value pairs (w being
// the key width in bits), so
// predecessor/successor lookups cost one level-search descent plus a
// bounded scan inside a bucket, instead of x-fast's one-node-per-key
// overhead.
package yfast

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/psearch/levelsearch"
)

type node[K levelsearch.Uint, V any] = levelsearch.LNode[K, *bucket[K, V]]

// YFastMap is an ordered map from fixed-width unsigned integer keys to
// values of type V.
type YFastMap[K levelsearch.Uint, V any] struct {
	lss *levelsearch.LSS[K, *bucket[K, V]]
	idx map[K]*node[K, V]
	len int
}

// New returns an empty map.
func New[K levelsearch.Uint, V any]() *YFastMap[K, V] {
	return &YFastMap[K, V]{
		lss: levelsearch.New[K, *bucket[K, V]](),
		idx: make(map[K]*node[K, V]),
	}
}

// Len reports the number of keys stored.
func (m *YFastMap[K, V]) Len() int { return m.len }

// IsEmpty reports whether the map holds no keys.
func (m *YFastMap[K, V]) IsEmpty() bool { return m.len == 0 }

// Clear removes every key and value.
func (m *YFastMap[K, V]) Clear() {
	m.lss.Clear()
	m.idx = make(map[K]*node[K, V])
	m.len = 0
}

func isFull[K levelsearch.Uint, V any](n *node[K, V]) bool {
	return n.Value.len() >= 2*8*levelsearch.WidthOf[K]()
}

// insertLSS registers a freshly split-off bucket node as its own entry,
// keyed by its representative key. A representative key collision (only
// possible if two bucket splits land on the same median, which the
// bucket invariants prevent) replaces the index entry without touching
// the level search structure.
func (m *YFastMap[K, V]) insertLSS(n *node[K, V]) {
	if _, exists := m.idx[n.Key]; exists {
		m.idx[n.Key] = n
		return
	}
	m.lss.Insert(n)
	m.idx[n.Key] = n
}

func (m *YFastMap[K, V]) splitIfFull(n *node[K, V]) {
	if !isFull(n) {
		return
	}
	mid := n.Value.len() / 2
	median := n.Value.keys[mid]

	var fresh *node[K, V]
	if n.Key < median {
		right := &bucket[K, V]{
			keys:   append([]K(nil), n.Value.keys[mid:]...),
			values: append([]V(nil), n.Value.values[mid:]...),
		}
		n.Value.keys = n.Value.keys[:mid]
		n.Value.values = n.Value.values[:mid]
		fresh = levelsearch.NewLNode(median, right)
	} else {
		low := &bucket[K, V]{
			keys:   append([]K(nil), n.Value.keys[:mid]...),
			values: append([]V(nil), n.Value.values[:mid]...),
		}
		high := &bucket[K, V]{
			keys:   append([]K(nil), n.Value.keys[mid:]...),
			values: append([]V(nil), n.Value.values[mid:]...),
		}
		n.Value = high
		fresh = levelsearch.NewLNode(median, low)
	}
	m.insertLSS(fresh)
}

// Get returns the value stored for key, if any.
func (m *YFastMap[K, V]) Get(key K) (V, bool) {
	b, desc := m.lss.LongestDescendant(key)

	if pred := desc.Predecessor(b); pred != nil {
		if v, ok := pred.Value.get(key); ok {
			return v, true
		}
		if next := pred.Next(); next != nil {
			return next.Value.get(key)
		}
		var zero V
		return zero, false
	}
	if succ := desc.Successor(b); succ != nil {
		if v, ok := succ.Value.get(key); ok {
			return v, true
		}
		if prev := succ.Prev(); prev != nil {
			return prev.Value.get(key)
		}
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key has an associated value.
func (m *YFastMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert associates value with key, returning the previous value if key
// was already present.
func (m *YFastMap[K, V]) Insert(key K, value V) (V, bool) {
	b, desc := m.lss.LongestDescendant(key)

	if succ := desc.Successor(b); succ != nil {
		min := succ.Value.min()
		if min <= key || succ.Prev() == nil || succ.Key == key {
			out, existed := succ.Value.insert(key, value)
			m.splitIfFull(succ)
			m.bumpLen(existed)
			return out, existed
		}
		prev := succ.Prev()
		out, existed := prev.Value.insert(key, value)
		m.splitIfFull(prev)
		m.bumpLen(existed)
		return out, existed
	}

	if pred := desc.Predecessor(b); pred != nil {
		max := pred.Value.max()
		if max >= key || pred.Next() == nil || pred.Key == key {
			out, existed := pred.Value.insert(key, value)
			m.splitIfFull(pred)
			m.bumpLen(existed)
			return out, existed
		}
		next := pred.Next()
		out, existed := next.Value.insert(key, value)
		m.splitIfFull(next)
		m.bumpLen(existed)
		return out, existed
	}

	fresh := levelsearch.NewLNode(key, newBucket[K, V]())
	fresh.Value.insert(key, value)
	m.insertLSS(fresh)
	m.len++

	var zero V
	return zero, false
}

func (m *YFastMap[K, V]) bumpLen(existed bool) {
	if !existed {
		m.len++
	}
}

func isSmall[K levelsearch.Uint, V any](n *node[K, V]) bool {
	return n.Value.len() <= 8*levelsearch.WidthOf[K]()/2 && (n.Next() != nil || n.Prev() != nil)
}

// Remove deletes key, returning its value if it was present.
func (m *YFastMap[K, V]) Remove(key K) (V, bool) {
	b, desc := m.lss.LongestDescendant(key)

	var holder *node[K, V]
	if pred := desc.Predecessor(b); pred != nil {
		if pred.Value.containsKey(key) {
			holder = pred
		} else if next := pred.Next(); next != nil && next.Value.containsKey(key) {
			holder = next
		}
	} else if succ := desc.Successor(b); succ != nil {
		if succ.Value.containsKey(key) {
			holder = succ
		} else if prev := succ.Prev(); prev != nil && prev.Value.containsKey(key) {
			holder = prev
		}
	}

	if holder == nil {
		var zero V
		return zero, false
	}

	out, _ := holder.Value.remove(key)
	m.len--

	if isSmall(holder) {
		m.absorbSmall(holder)
	}
	return out, true
}

// absorbSmall merges an underfull bucket node into a neighbor, matching
// the original's "merge into next, else into prev" policy.
func (m *YFastMap[K, V]) absorbSmall(n *node[K, V]) {
	if next := n.Next(); next != nil {
		next.Value.merge(n.Value)
	} else if prev := n.Prev(); prev != nil {
		prev.Value.merge(n.Value)
	} else {
		return
	}
	delete(m.idx, n.Key)
	m.lss.Remove(n)
}

// Predecessor returns the greatest stored key less than or equal to key.
func (m *YFastMap[K, V]) Predecessor(key K) (K, V, bool) {
	b, desc := m.lss.LongestDescendant(key)

	if pred := desc.Predecessor(b); pred != nil {
		if next := pred.Next(); next != nil {
			if k, v, ok := next.Value.predecessor(key); ok {
				return k, v, ok
			}
		}
		return pred.Value.predecessor(key)
	}
	if succ := desc.Successor(b); succ != nil {
		if k, v, ok := succ.Value.predecessor(key); ok {
			return k, v, ok
		}
		if prev := succ.Prev(); prev != nil {
			return prev.Value.predecessor(key)
		}
	}
	var zero V
	return 0, zero, false
}

// Successor returns the smallest stored key greater than or equal to key.
func (m *YFastMap[K, V]) Successor(key K) (K, V, bool) {
	b, desc := m.lss.LongestDescendant(key)

	if pred := desc.Predecessor(b); pred != nil {
		if k, v, ok := pred.Value.successor(key); ok {
			return k, v, ok
		}
		if next := pred.Next(); next != nil {
			return next.Value.successor(key)
		}
	} else if succ := desc.Successor(b); succ != nil {
		if prev := succ.Prev(); prev != nil {
			if k, v, ok := prev.Value.successor(key); ok {
				return k, v, ok
			}
		}
		return succ.Value.successor(key)
	}
	var zero V
	return 0, zero, false
}

// Iter walks every key/value pair in ascending key order.
func (m *YFastMap[K, V]) Iter(yield func(K, V) bool) {
	n := m.lss.Min()
	for n != nil {
		for i, k := range n.Value.keys {
			if !yield(k, n.Value.values[i]) {
				return
			}
		}
		n = n.Next()
	}
}

// Keys returns the set of every key currently stored.
func (m *YFastMap[K, V]) Keys() *set3.Set3[K] {
	out := set3.EmptyWithCapacity[K](uint32(m.len))
	m.Iter(func(k K, _ V) bool {
		out.Add(k)
		return true
	})
	return out
}
