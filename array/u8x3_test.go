package array

import "testing"

func TestU8x3Rank(t *testing.T) {
	u := NewU8x3([3]uint8{10, 40, 80})

	for i := 0; i <= 10; i++ {
		if got := u.Rank(i); got != 0 {
			t.Fatalf("Rank(%d) = %d, want 0", i, got)
		}
	}
	for i := 11; i <= 40; i++ {
		if got := u.Rank(i); got != 1 {
			t.Fatalf("Rank(%d) = %d, want 1", i, got)
		}
	}
	for i := 41; i <= 80; i++ {
		if got := u.Rank(i); got != 2 {
			t.Fatalf("Rank(%d) = %d, want 2", i, got)
		}
	}
	for i := 81; i <= 256; i++ {
		if got := u.Rank(i); got != 3 {
			t.Fatalf("Rank(%d) = %d, want 3", i, got)
		}
	}
}
