// Package slouds implements a static succinct trie: an immutable,
// byte-keyed lookup structure built once from a finished key set (sorted
// input, or a frozen dynamic louds.Trie) and then queried with no further
// mutation. Because it never grows, its topology lives in an SBitVec
// rather than the dynamic BitVec the growable trie needs, trading
// insertion for a flatter three-level rank/select directory and plain
// slices for the byte and value columns instead of B-trees.
package slouds

import (
	"sort"

	"github.com/TomTonic/psearch/bitvec"
)

// cursor mirrors louds.cursor: bitPos addresses a node in the trie bit
// vector, nodePos is its rank in breadth-first node order.
type cursor struct {
	bitPos  int
	nodePos int
}

func cursorFromBitPos(trie *bitvec.SBitVec, pos int) cursor {
	return cursor{bitPos: pos, nodePos: trie.Rank0(pos)}
}

// Entry is one key/value pair to seed a Trie with.
type Entry[V any] struct {
	Key   []byte
	Value V
}

// Trie is a static LOUDS trie, built once and read many times.
type Trie[V any] struct {
	trie     *bitvec.SBitVec
	hasValue *bitvec.SBitVec
	bytes    []byte
	values   []V
}

// From builds a Trie from an arbitrary, not-necessarily-sorted slice of
// entries. Duplicate keys keep the last value seen, matching a dynamic
// trie's overwrite-on-reinsert behavior.
func From[V any](entries []Entry[V]) *Trie[V] {
	root := newBadTrieNode[V]()
	for _, e := range entries {
		root.insert(e.Key, e.Value)
	}
	return fromBadTrie(root)
}

// badTrieNode is a throwaway, pointer-linked trie used only to compute
// the breadth-first layout a static Trie freezes into. It exists purely
// as scaffolding during construction; nothing about it survives into the
// built Trie.
type badTrieNode[V any] struct {
	children map[byte]*badTrieNode[V]
	value    V
	hasValue bool
}

func newBadTrieNode[V any]() *badTrieNode[V] {
	return &badTrieNode[V]{children: make(map[byte]*badTrieNode[V])}
}

func (n *badTrieNode[V]) insert(key []byte, value V) {
	node := n
	for i := 0; i < len(key); i++ {
		k := key[i]
		child, ok := node.children[k]
		if !ok {
			child = newBadTrieNode[V]()
			node.children[k] = child
		}
		node = child
	}
	node.value = value
	node.hasValue = true
}

func (n *badTrieNode[V]) sortedKeys() []byte {
	keys := make([]byte, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	return keys
}

func fromBadTrie[V any](root *badTrieNode[V]) *Trie[V] {
	var trieBits, hasValueBits []bool
	var bytes []byte
	var values []V

	queue := []*badTrieNode[V]{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		keys := current.sortedKeys()
		for range keys {
			trieBits = append(trieBits, true)
		}
		trieBits = append(trieBits, false)

		bytes = append(bytes, keys...)
		if current.hasValue {
			values = append(values, current.value)
			hasValueBits = append(hasValueBits, true)
		} else {
			hasValueBits = append(hasValueBits, false)
		}

		for _, k := range keys {
			queue = append(queue, current.children[k])
		}
	}

	return &Trie[V]{
		trie:     bitvec.NewSBitVec(trieBits),
		hasValue: bitvec.NewSBitVec(hasValueBits),
		bytes:    bytes,
		values:   values,
	}
}

// Get looks up key, reporting whether a value was stored for it.
func (t *Trie[V]) Get(key []byte) (V, bool) {
	cur := cursor{bitPos: 0, nodePos: 0}

	for _, b := range key {
		if t.isLeaf(cur.bitPos) {
			var zero V
			return zero, false
		}

		byteBegin := t.child(cur.bitPos, 0).nodePos - 1
		degree := t.degree(cur.bitPos)
		slice := t.bytes[byteBegin : byteBegin+degree]
		idx := sort.Search(len(slice), func(i int) bool { return slice[i] >= b })
		if idx >= len(slice) || slice[idx] != b {
			var zero V
			return zero, false
		}
		cur = t.child(cur.bitPos, idx)
	}

	if t.hasValue.GetBit(cur.nodePos) {
		valuePos := t.hasValue.Rank1(cur.nodePos)
		return t.values[valuePos], true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key has a stored value.
func (t *Trie[V]) ContainsKey(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

func (t *Trie[V]) child(bitPos, i int) cursor {
	return cursorFromBitPos(t.trie, t.trie.SelectZero(t.trie.Rank1(bitPos+i))+1)
}

func (t *Trie[V]) isLeaf(bitPos int) bool {
	return !t.trie.GetBit(bitPos)
}

func (t *Trie[V]) degree(bitPos int) int {
	if t.isLeaf(bitPos) {
		return 0
	}
	next := t.trie.SelectZero(t.trie.Rank0(bitPos))
	return next - bitPos
}
