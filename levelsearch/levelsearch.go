// Package levelsearch implements the level-ancestor search structure
// shared by the x-fast and y-fast maps: a stack of per-prefix "descendant"
// records, one level for every byte of the key except the last, each
// tracking the minimum and maximum leaf below it so that a predecessor or
// successor query can be answered by locating the longest matching prefix
// and then following at most one pointer.
package levelsearch

import "github.com/TomTonic/psearch/bytemap"

// Uint is the set of key widths the level search supports.
type Uint interface {
	~uint32 | ~uint64
}

// WidthOf returns the width in bytes of key type K (4 for uint32-based
// keys, 8 for uint64-based keys).
func WidthOf[K Uint]() int {
	if uint64(^K(0)) == uint64(^uint32(0)) {
		return 4
	}
	return 8
}

func toBytes[K Uint](k K) []byte {
	w := WidthOf[K]()
	out := make([]byte, w)
	v := uint64(k)
	for i := w - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// LNode is a leaf of the level search tree: one entry for every key stored
// in the owning x-fast/y-fast map, threaded into a doubly linked list in
// key order so predecessor/successor queries are O(1) once the longest
// matching descendant is found.
type LNode[K Uint, V any] struct {
	Key   K
	Value V

	prev *LNode[K, V]
	next *LNode[K, V]
}

// NewLNode returns a detached node for key/value, unlinked from any list.
func NewLNode[K Uint, V any](key K, value V) *LNode[K, V] {
	return &LNode[K, V]{Key: key, Value: value}
}

// Next returns the node's successor in key order, or nil at the end.
func (n *LNode[K, V]) Next() *LNode[K, V] { return n.next }

// Prev returns the node's predecessor in key order, or nil at the start.
func (n *LNode[K, V]) Prev() *LNode[K, V] { return n.prev }

func (n *LNode[K, V]) setPrev(other *LNode[K, V]) {
	n.prev = other
	n.next = other.next
	other.next = n
	if n.next != nil {
		n.next.prev = n
	}
}

func (n *LNode[K, V]) setNext(other *LNode[K, V]) {
	n.next = other
	n.prev = other.prev
	other.prev = n
	if n.prev != nil {
		n.prev.next = n
	}
}

// Descendant tracks, for a single prefix, the minimum and maximum key
// stored below it, keyed by the next byte of the key so a predecessor or
// successor within this prefix's subtree can be found with one ByteMap
// lookup.
type Descendant[K Uint, V any] struct {
	minByte byte
	min     *LNode[K, V]
	maxes   *bytemap.ByteMap[*LNode[K, V]]
}

func newDescendant[K Uint, V any]() *Descendant[K, V] {
	return &Descendant[K, V]{maxes: bytemap.New[*LNode[K, V]]()}
}

func (d *Descendant[K, V]) isEmpty() bool { return d.maxes.IsEmpty() }

// Predecessor finds the predecessor of byte, assuming byte has at most
// one child within this descendant's subtree.
func (d *Descendant[K, V]) Predecessor(b byte) *LNode[K, V] {
	_, max, ok := d.maxes.Predecessor(b)
	if !ok {
		return nil
	}
	return max
}

// Successor finds the successor of byte, assuming byte has at most one
// child within this descendant's subtree.
func (d *Descendant[K, V]) Successor(b byte) *LNode[K, V] {
	if d.min == nil {
		return nil
	}
	if b <= d.minByte {
		return d.min
	}
	pred := d.Predecessor(b)
	if pred == nil {
		return nil
	}
	return pred.next
}

// setLinks inserts node into the doubly linked list if this is the lowest
// descendant matching the key's prefix so far.
func (d *Descendant[K, V]) setLinks(b byte, node *LNode[K, V]) {
	if next := d.Successor(b); next != nil {
		node.setNext(next)
	} else if prev := d.Predecessor(b); prev != nil {
		node.setPrev(prev)
	}
}

// merge inserts (byte, node) and reports whether it changed this
// descendant's min or max, meaning the insertion must keep propagating to
// shallower levels.
func (d *Descendant[K, V]) merge(b byte, node *LNode[K, V]) bool {
	entry := d.maxes.EntryFor(b)
	if !entry.Occupied() {
		entry.Insert(node)
		if d.min == nil || node.Key < d.min.Key {
			d.minByte = b
			d.min = node
		}
		return true
	}

	max := entry.GetMut()
	switch {
	case node.Key < d.min.Key:
		d.minByte = b
		d.min = node
		return true
	case node.Key > (*max).Key:
		*max = node
		return true
	default:
		return false
	}
}

// remove deletes the (byte, node) pair from this descendant, where b is
// the key's byte at index depth.
func (d *Descendant[K, V]) remove(depth int, b byte, node *LNode[K, V]) {
	entry := d.maxes.EntryFor(b)
	if !entry.Occupied() {
		panic("levelsearch: remove on an absent descendant byte")
	}
	max := entry.GetMut()

	switch {
	case d.min == node:
		if *max == node {
			entry.Remove()
			d.min = nil
			if node.next != nil {
				if nb, _, ok := d.maxes.Successor(b); ok {
					d.minByte = nb
					d.min = node.next
				}
			}
		} else {
			d.min = node.next
		}
	case *max == node:
		// node.prev takes over only if it lies under the same byte.
		shift := 8 * uint(WidthOf[K]()-1-depth)
		if node.prev.Key>>shift == node.Key>>shift {
			*max = node.prev
		} else {
			entry.Remove()
		}
	}
}

// LSS is the level search structure for one x-fast/y-fast map: one
// Descendant per level of the key's byte representation, plus a root
// descendant covering the whole key space.
type LSS[K Uint, V any] struct {
	l0     *Descendant[K, V]
	levels []map[string]*Descendant[K, V]
}

// New returns an empty level search structure for keys of width K.
func New[K Uint, V any]() *LSS[K, V] {
	w := WidthOf[K]()
	lss := &LSS[K, V]{
		l0:     newDescendant[K, V](),
		levels: make([]map[string]*Descendant[K, V], w),
	}
	for i := 1; i < w; i++ {
		lss.levels[i] = make(map[string]*Descendant[K, V])
	}
	return lss
}

// Clear empties the structure.
func (l *LSS[K, V]) Clear() {
	w := WidthOf[K]()
	l.l0 = newDescendant[K, V]()
	for i := 1; i < w; i++ {
		l.levels[i] = make(map[string]*Descendant[K, V])
	}
}

// Insert adds node to every level of the structure.
func (l *LSS[K, V]) Insert(node *LNode[K, V]) {
	bytes := toBytes(node.Key)
	w := len(bytes)

	found := false
	for lvl := w - 1; lvl >= 1; lvl-- {
		if desc, ok := l.levels[lvl][string(bytes[:lvl])]; ok {
			desc.setLinks(bytes[lvl], node)
			found = true
			break
		}
	}
	if !found {
		l.l0.setLinks(bytes[0], node)
	}

	for lvl := w - 1; lvl >= 1; lvl-- {
		key := string(bytes[:lvl])
		desc, ok := l.levels[lvl][key]
		if !ok {
			desc = newDescendant[K, V]()
			desc.minByte = bytes[lvl]
			desc.min = node
			desc.maxes.Insert(bytes[lvl], node)
			l.levels[lvl][key] = desc
			continue
		}
		if !desc.merge(bytes[lvl], node) {
			return
		}
	}
	l.l0.merge(bytes[0], node)
}

// Remove deletes node from every level of the structure and unlinks it
// from the key-ordered list.
func (l *LSS[K, V]) Remove(node *LNode[K, V]) {
	bytes := toBytes(node.Key)
	w := len(bytes)

	l.l0.remove(0, bytes[0], node)
	for lvl := 1; lvl < w; lvl++ {
		key := string(bytes[:lvl])
		desc, ok := l.levels[lvl][key]
		if !ok {
			continue
		}
		desc.remove(lvl, bytes[lvl], node)
		if desc.isEmpty() {
			delete(l.levels[lvl], key)
		}
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	node.prev, node.next = nil, nil
}

// LongestDescendant returns the descendant covering the deepest prefix of
// key present in the structure, along with the byte at which that
// descendant discriminates its children.
func (l *LSS[K, V]) LongestDescendant(key K) (byte, *Descendant[K, V]) {
	bytes := toBytes(key)
	for lvl := len(bytes) - 1; lvl >= 1; lvl-- {
		if desc, ok := l.levels[lvl][string(bytes[:lvl])]; ok {
			return bytes[lvl], desc
		}
	}
	return bytes[0], l.l0
}

// Min returns the node with the smallest key stored, or nil if empty.
func (l *LSS[K, V]) Min() *LNode[K, V] {
	_, desc := l.LongestDescendant(K(0))
	return desc.Successor(0)
}

// Predecessor returns the node with the greatest key less than or equal
// to key, or nil if none exists.
func (l *LSS[K, V]) Predecessor(key K) *LNode[K, V] {
	b, desc := l.LongestDescendant(key)
	if pred := desc.Predecessor(b); pred != nil {
		return pred
	}
	if succ := desc.Successor(b); succ != nil {
		return succ.prev
	}
	return nil
}

// Successor returns the node with the smallest key greater than or equal
// to key, or nil if none exists.
func (l *LSS[K, V]) Successor(key K) *LNode[K, V] {
	b, desc := l.LongestDescendant(key)
	if succ := desc.Successor(b); succ != nil {
		return succ
	}
	if pred := desc.Predecessor(b); pred != nil {
		return pred.next
	}
	return nil
}
