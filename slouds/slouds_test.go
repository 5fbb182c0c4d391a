package slouds

import (
	"encoding/binary"
	"testing"
)

// We are encoding the following tree:
//
//	              *
//	           /  |    \
//	        b     c      d
//	       / \    |   / / \ \
//	      e   f   g  h i   j k
//	     /|\         |    / \
//	    l m n        o   p   q
var sloudsKeys = [11][]byte{
	[]byte("bel"), []byte("bem"), []byte("ben"), []byte("bf"), []byte("cg"),
	[]byte("dho"), []byte("di"), []byte("djp"), []byte("djq"), []byte("dk"),
	[]byte("b"),
}

func buildSloudsTestTrie(withLastByteValue bool) *Trie[byte] {
	entries := make([]Entry[byte], len(sloudsKeys))
	for i, k := range sloudsKeys {
		v := k[len(k)-1]
		if !withLastByteValue {
			v = k[0]
		}
		entries[i] = Entry[byte]{Key: k, Value: v}
	}
	return From(entries)
}

func TestSloudsFromEntries(t *testing.T) {
	entries := make([]Entry[struct{}], len(sloudsKeys))
	for i, k := range sloudsKeys {
		entries[i] = Entry[struct{}]{Key: k}
	}
	trie := From(entries)

	wantTrie := []bool{
		true, true, true, false, // root
		true, true, false, // b
		true, false, // c
		true, true, true, true, false, // d
		true, true, true, false, // e
		false, false, // f and g
		true, false, // h
		false, // i
		true, true, false, // j
		false, false, false, false, // k, l, m, n
		false, false, false, // o, p, q
	}
	if got := sbitToSlice(trie.trie); !boolSlicesEqual(got, wantTrie) {
		t.Fatalf("trie = %v, want %v", got, wantTrie)
	}

	wantHasValue := []bool{
		false, true, false, false, false, true, true, false, true,
		false, true, true, true, true, true, true, true,
	}
	if got := sbitToSlice(trie.hasValue); !boolSlicesEqual(got, wantHasValue) {
		t.Fatalf("hasValue = %v, want %v", got, wantHasValue)
	}

	wantBytes := []byte{
		'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k',
		'l', 'm', 'n', 'o', 'p', 'q',
	}
	if !byteSlicesEqual(trie.bytes, wantBytes) {
		t.Fatalf("bytes = %v, want %v", trie.bytes, wantBytes)
	}

	if len(trie.values) != 11 {
		t.Fatalf("values length = %d, want 11", len(trie.values))
	}
}

func TestSloudsTraverse(t *testing.T) {
	trie := buildSloudsTestTrie(false)

	root := cursor{bitPos: 0, nodePos: 0}
	if d := trie.degree(root.bitPos); d != 3 {
		t.Fatalf("degree(root) = %d, want 3", d)
	}

	b := trie.child(root.bitPos, 0)
	if b != (cursor{bitPos: 4, nodePos: 1}) {
		t.Fatalf("child(root,0) = %+v, want {4 1}", b)
	}
	if d := trie.degree(b.bitPos); d != 2 {
		t.Fatalf("degree(b) = %d, want 2", d)
	}

	c := trie.child(root.bitPos, 1)
	if c != (cursor{bitPos: 7, nodePos: 2}) {
		t.Fatalf("child(root,1) = %+v, want {7 2}", c)
	}
	if d := trie.degree(c.bitPos); d != 1 {
		t.Fatalf("degree(c) = %d, want 1", d)
	}

	d := trie.child(root.bitPos, 2)
	if d != (cursor{bitPos: 9, nodePos: 3}) {
		t.Fatalf("child(root,2) = %+v, want {9 3}", d)
	}
	if deg := trie.degree(d.bitPos); deg != 4 {
		t.Fatalf("degree(d) = %d, want 4", deg)
	}

	e := trie.child(b.bitPos, 0)
	if e != (cursor{bitPos: 14, nodePos: 4}) {
		t.Fatalf("child(b,0) = %+v, want {14 4}", e)
	}
	if deg := trie.degree(e.bitPos); deg != 3 {
		t.Fatalf("degree(e) = %d, want 3", deg)
	}

	f := trie.child(b.bitPos, 1)
	if f != (cursor{bitPos: 18, nodePos: 5}) {
		t.Fatalf("child(b,1) = %+v, want {18 5}", f)
	}
	if deg := trie.degree(f.bitPos); deg != 0 {
		t.Fatalf("degree(f) = %d, want 0", deg)
	}

	g := trie.child(c.bitPos, 0)
	if g != (cursor{bitPos: 19, nodePos: 6}) {
		t.Fatalf("child(c,0) = %+v, want {19 6}", g)
	}

	h := trie.child(d.bitPos, 0)
	if h != (cursor{bitPos: 20, nodePos: 7}) {
		t.Fatalf("child(d,0) = %+v, want {20 7}", h)
	}
	if deg := trie.degree(h.bitPos); deg != 1 {
		t.Fatalf("degree(h) = %d, want 1", deg)
	}

	i := trie.child(d.bitPos, 1)
	if i != (cursor{bitPos: 22, nodePos: 8}) {
		t.Fatalf("child(d,1) = %+v, want {22 8}", i)
	}

	j := trie.child(d.bitPos, 2)
	if j != (cursor{bitPos: 23, nodePos: 9}) {
		t.Fatalf("child(d,2) = %+v, want {23 9}", j)
	}
	if deg := trie.degree(j.bitPos); deg != 2 {
		t.Fatalf("degree(j) = %d, want 2", deg)
	}

	k := trie.child(d.bitPos, 3)
	if k != (cursor{bitPos: 26, nodePos: 10}) {
		t.Fatalf("child(d,3) = %+v, want {26 10}", k)
	}

	l := trie.child(e.bitPos, 0)
	if l != (cursor{bitPos: 27, nodePos: 11}) {
		t.Fatalf("child(e,0) = %+v, want {27 11}", l)
	}

	m := trie.child(e.bitPos, 1)
	if m != (cursor{bitPos: 28, nodePos: 12}) {
		t.Fatalf("child(e,1) = %+v, want {28 12}", m)
	}

	n := trie.child(e.bitPos, 2)
	if n != (cursor{bitPos: 29, nodePos: 13}) {
		t.Fatalf("child(e,2) = %+v, want {29 13}", n)
	}

	o := trie.child(h.bitPos, 0)
	if o != (cursor{bitPos: 30, nodePos: 14}) {
		t.Fatalf("child(h,0) = %+v, want {30 14}", o)
	}

	p := trie.child(j.bitPos, 0)
	if p != (cursor{bitPos: 31, nodePos: 15}) {
		t.Fatalf("child(j,0) = %+v, want {31 15}", p)
	}

	q := trie.child(j.bitPos, 1)
	if q != (cursor{bitPos: 32, nodePos: 16}) {
		t.Fatalf("child(j,1) = %+v, want {32 16}", q)
	}
}

func TestSloudsGet(t *testing.T) {
	trie := buildSloudsTestTrie(false)

	for _, k := range sloudsKeys {
		v, ok := trie.Get(k)
		if !ok || v != k[0] {
			t.Fatalf("Get(%q) = %d,%v, want %d,true", k, v, ok, k[0])
		}
	}

	if _, ok := trie.Get([]byte("belarus")); ok {
		t.Fatalf("Get(belarus) found a value, want none")
	}
	if _, ok := trie.Get([]byte("dh")); ok {
		t.Fatalf("Get(dh) found a value, want none")
	}
	if _, ok := trie.Get([]byte("dj")); ok {
		t.Fatalf("Get(dj) found a value, want none")
	}
}

func TestSloudsGetNumbers(t *testing.T) {
	numbers := [25]uint16{
		9424, 12398, 54780, 51835, 63026, 8401, 63521, 49588, 14290, 60102,
		12443, 35584, 11924, 55247, 770, 20443, 1862, 11155, 25753, 7685,
		1900, 7743, 43659, 63103, 3614,
	}

	entries := make([]Entry[uint16], len(numbers))
	for i, k := range numbers {
		var key [2]byte
		binary.BigEndian.PutUint16(key[:], k)
		entries[i] = Entry[uint16]{Key: append([]byte(nil), key[:]...), Value: k}
	}
	trie := From(entries)

	for _, k := range numbers {
		var key [2]byte
		binary.BigEndian.PutUint16(key[:], k)
		v, ok := trie.Get(key[:])
		if !ok || v != k {
			t.Fatalf("Get(%d) = %d,%v, want %d,true", k, v, ok, k)
		}
	}
}

func TestSloudsFromSingleEmptyKey(t *testing.T) {
	trie := From([]Entry[int]{{Key: nil, Value: 0}})

	if got := sbitToSlice(trie.trie); !boolSlicesEqual(got, []bool{false}) {
		t.Fatalf("trie = %v, want [false]", got)
	}
	if got := sbitToSlice(trie.hasValue); !boolSlicesEqual(got, []bool{true}) {
		t.Fatalf("hasValue = %v, want [true]", got)
	}
	if len(trie.bytes) != 0 {
		t.Fatalf("bytes = %v, want empty", trie.bytes)
	}
	if len(trie.values) != 1 || trie.values[0] != 0 {
		t.Fatalf("values = %v, want [0]", trie.values)
	}

	v, ok := trie.Get(nil)
	if !ok || v != 0 {
		t.Fatalf("Get(\"\") = %d,%v, want 0,true", v, ok)
	}
}

func sbitToSlice[T interface {
	Len() int
	GetBit(int) bool
}](bv T) []bool {
	out := make([]bool, bv.Len())
	for i := range out {
		out[i] = bv.GetBit(i)
	}
	return out
}

func boolSlicesEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func byteSlicesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
