package array

// U16x16 and U32x16 model the 16-wide counter arrays that would, on a
// platform with real SIMD, be compared against a needle in a single
// instruction. This module ships scalar-only: the rank contract (smallest
// index i with haystack[i] >= needle, or length if none match) is what
// matters to callers, not the instruction count it takes to compute it.

// U16x16Rank returns the smallest i such that haystack[i] >= needle, or
// len(haystack) if no such index exists. haystack is assumed sorted
// ascending, as it holds cumulative counts.
func U16x16Rank(haystack []uint16, needle uint16) int {
	for i, v := range haystack {
		if v >= needle {
			return i
		}
	}
	return len(haystack)
}

// U16x16Increment adds delta to every element of haystack from index start
// onward (inclusive), in place. Used to shift cumulative counters right of
// an insertion point in a B-tree internal node.
func U16x16Increment(haystack []uint16, start int, delta uint16) {
	for i := start; i < len(haystack); i++ {
		haystack[i] += delta
	}
}

// U16x16Decrement subtracts delta from every element of haystack from index
// start onward (inclusive), in place.
func U16x16Decrement(haystack []uint16, start int, delta uint16) {
	for i := start; i < len(haystack); i++ {
		haystack[i] -= delta
	}
}

// U32x16Rank is the 32-bit-counter analogue of U16x16Rank, used where
// cumulative lengths can exceed 65535 (the dynamic LOUDS byte leaves, whose
// B-tree can hold far more than 2^16 bits across a full tree).
func U32x16Rank(haystack []uint32, needle uint32) int {
	for i, v := range haystack {
		if v >= needle {
			return i
		}
	}
	return len(haystack)
}

// U32x16Split subtracts base from every element of haystack from index start
// onward (inclusive), in place, modeling the counter adjustment that happens when a
// B-tree node is split in half and the right half's counters need to be
// rebased relative to their own start.
func U32x16Split(haystack []uint32, start int, base uint32) {
	for i := start; i < len(haystack); i++ {
		haystack[i] -= base
	}
}
