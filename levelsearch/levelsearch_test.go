package levelsearch

import "testing"

func TestLSSInsertSingleKey(t *testing.T) {
	lss := New[uint32, struct{}]()
	node := NewLNode[uint32](0xdeadbeef, struct{}{})
	lss.Insert(node)

	b, desc := lss.LongestDescendant(0xdeadbeef)
	if b != 0xef {
		t.Fatalf("LongestDescendant discriminating byte = %#x, want 0xef", b)
	}
	if got := desc.Successor(0); got != node {
		t.Fatalf("successor(0) did not return the inserted node")
	}
	if got := lss.Predecessor(0xdeadbeef); got != node {
		t.Fatalf("Predecessor(key) did not return the inserted node")
	}
	if got := lss.Successor(0xdeadbeef); got != node {
		t.Fatalf("Successor(key) did not return the inserted node")
	}
}

func TestLSSPredecessorSuccessorAcrossKeys(t *testing.T) {
	lss := New[uint32, int]()
	keys := []uint32{10, 5000, 70000, 1 << 20, 1 << 28, 0xffffffff}
	nodes := make(map[uint32]*LNode[uint32, int])
	for i, k := range keys {
		n := NewLNode(k, i)
		nodes[k] = n
		lss.Insert(n)
	}

	for i, k := range keys {
		if got := lss.Predecessor(k); got == nil || got.Key != k {
			t.Fatalf("Predecessor(%d) = %v, want exact key match", k, got)
		}
		if got := lss.Successor(k); got == nil || got.Key != k {
			t.Fatalf("Successor(%d) = %v, want exact key match", k, got)
		}
		_ = i
	}

	if got := lss.Predecessor(9); got != nil {
		t.Fatalf("Predecessor(9) = %v, want nil (below minimum)", got)
	}
	if got := lss.Predecessor(11); got == nil || got.Key != 10 {
		t.Fatalf("Predecessor(11) = %v, want key 10", got)
	}
	if got := lss.Successor(11); got == nil || got.Key != 5000 {
		t.Fatalf("Successor(11) = %v, want key 5000", got)
	}
	if got := lss.Successor(0xffffffff + 1 - 1); got == nil {
		t.Fatalf("Successor(max) unexpectedly nil")
	}

	min := lss.Min()
	if min == nil || min.Key != 10 {
		t.Fatalf("Min() = %v, want key 10", min)
	}
}

func TestLSSRemove(t *testing.T) {
	lss := New[uint64, int]()
	keys := []uint64{1, 2, 1000, 1 << 40, 1 << 63}
	nodes := make([]*LNode[uint64, int], len(keys))
	for i, k := range keys {
		n := NewLNode(k, i)
		nodes[i] = n
		lss.Insert(n)
	}

	lss.Remove(nodes[2]) // removes key 1000

	if got := lss.Predecessor(1000); got == nil || got.Key != 2 {
		t.Fatalf("Predecessor(1000) after removal = %v, want key 2", got)
	}
	if got := lss.Successor(1000); got == nil || got.Key != (1<<40) {
		t.Fatalf("Successor(1000) after removal = %v, want key 1<<40", got)
	}

	lss.Remove(nodes[0])
	lss.Remove(nodes[1])
	if got := lss.Predecessor(500); got != nil {
		t.Fatalf("Predecessor(500) after removing all keys below it = %v, want nil", got)
	}

	min := lss.Min()
	if min == nil || min.Key != (1<<40) {
		t.Fatalf("Min() after removals = %v, want key 1<<40", min)
	}
}
