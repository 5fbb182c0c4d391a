// Package louds implements a dynamic LOUDS (level-order unary degree
// sequence) trie: a byte-keyed associative array whose topology lives in
// a single succinct bit vector instead of a pointer-linked node graph.
//
// The trie bit vector encodes the tree shape as one bit per child plus a
// terminating zero per node, written in breadth-first order. A node's
// bit position doubles as its address: its children sit immediately
// after the matching zero found via select0/rank1, and its own position
// in level order is recovered from rank0. A parallel hasValue bit vector
// marks which nodes carry a stored value, and two side trees (one
// holding the edge-label bytes, one holding the values) are indexed by
// rank against the trie and hasValue vectors respectively.
package louds

import (
	"github.com/TomTonic/psearch/bitvec"
	"github.com/TomTonic/psearch/tree"
)

// cursor names a trie node two ways at once: bitPos is its position in
// the trie bit vector (the zero that terminates its children sits
// somewhere after it), nodePos is its rank in breadth-first node order,
// used to index hasValue.
type cursor struct {
	bitPos  int
	nodePos int
}

func cursorFromBitPos(trie *bitvec.BitVec, pos int) cursor {
	return cursor{bitPos: pos, nodePos: trie.Rank0(pos)}
}

// Trie is a dynamic LOUDS trie mapping byte-slice keys to values of
// type V.
type Trie[V any] struct {
	trie     *bitvec.BitVec
	hasValue *bitvec.BitVec
	bytes    *tree.Tree[byte]
	values   *tree.Tree[V]
}

// New returns an empty trie, already seeded with a root node.
func New[V any]() *Trie[V] {
	t := &Trie[V]{
		trie:     bitvec.New(),
		hasValue: bitvec.New(),
		bytes:    tree.New[byte](),
		values:   tree.New[V](),
	}
	t.trie.Insert(0, false)
	t.hasValue.Insert(0, false)
	return t
}

func newByteLeaf(v byte) tree.Leaf[byte] { return tree.NewByteLeaf(v) }

// Insert stores value under key, returning the value it replaces and
// whether one existed.
func (t *Trie[V]) Insert(key []byte, value V) (V, bool) {
	cur := cursor{bitPos: 0, nodePos: 0}

	for _, b := range key {
		if t.isLeaf(cur.bitPos) {
			child := t.trie.SelectZero(t.trie.Rank1(cur.bitPos))
			t.trie.Insert(child, false)
			t.trie.Insert(cur.bitPos, true)
			byteBegin := t.child(cur.bitPos, 0).nodePos - 1
			t.bytes.Insert(byteBegin, b, newByteLeaf)

			cur = t.child(cur.bitPos, 0)
			t.hasValue.Insert(cur.nodePos, false)
			continue
		}

		byteBegin := t.child(cur.bitPos, 0).nodePos - 1
		degree := t.degree(cur.bitPos)
		number, found := t.childNumber(byteBegin, degree, b)
		if !found {
			child := t.trie.SelectZero(t.trie.Rank1(cur.bitPos + number))
			t.trie.Insert(child, false)
			t.trie.Insert(cur.bitPos, true)
			t.bytes.Insert(byteBegin+number, b, newByteLeaf)

			cur = t.child(cur.bitPos, number)
			t.hasValue.Insert(cur.nodePos, false)
		} else {
			cur = t.child(cur.bitPos, number)
		}
	}

	valueIndex := t.hasValue.Rank1(cur.nodePos)
	if t.hasValue.GetBit(cur.nodePos) {
		old := t.values.Set(valueIndex, value)
		return old, true
	}
	t.hasValue.SetBit(cur.nodePos, true)
	t.values.Insert(valueIndex, value, func(v V) tree.Leaf[V] { return tree.NewValueLeaf(v) })
	var zero V
	return zero, false
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
		number, found := t.childNumber(byteBegin, degree, b)
		if !found {
			var zero V
			return zero, false
		}
		cur = t.child(cur.bitPos, number)
	}

	if t.hasValue.GetBit(cur.nodePos) {
		valuePos := t.hasValue.Rank1(cur.nodePos)
		return t.values.At(valuePos), true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key has a stored value.
func (t *Trie[V]) ContainsKey(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

// childNumber finds needle's rank among the degree bytes that label
// cursor's children, starting at byteBegin in the byte tree.
func (t *Trie[V]) childNumber(byteBegin, degree int, needle byte) (int, bool) {
	leaf, offset := t.bytes.GetLeaf(byteBegin)
	bl := leaf.(*tree.ByteLeaf)
	return bl.ChildNumber(offset, degree, needle)
}

// child returns cursor's i-th child.
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

// Entry is one stored key/value pair.
type Entry[V any] struct {
	Key   []byte
	Value V
}

// Entries walks every stored key in lexicographic order, the traversal a
// static trie builder needs to freeze a dynamic one.
func (t *Trie[V]) Entries() []Entry[V] {
	var out []Entry[V]
	var walk func(cur cursor, path []byte)
	walk = func(cur cursor, path []byte) {
		if t.hasValue.GetBit(cur.nodePos) {
			valuePos := t.hasValue.Rank1(cur.nodePos)
			key := append([]byte(nil), path...)
			out = append(out, Entry[V]{Key: key, Value: t.values.At(valuePos)})
		}

		degree := t.degree(cur.bitPos)
		if degree == 0 {
			return
		}
		byteBegin := t.child(cur.bitPos, 0).nodePos - 1
		for i := 0; i < degree; i++ {
			b := t.bytes.At(byteBegin + i)
			child := t.child(cur.bitPos, i)
			walk(child, append(path, b))
		}
	}
	walk(cursor{bitPos: 0, nodePos: 0}, nil)
	return out
}
