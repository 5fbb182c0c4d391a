// Package bits512 implements the fixed-size bit block used as the leaf of
// the dynamic succinct bit-vector: 512 bits with a packed running popcount
// per 64-bit word, so rank and select within the block cost a handful of
// word ops instead of a linear scan.
package bits512

import (
	"math/bits"

	"github.com/TomTonic/psearch/array"
)

// increment holds, for each of the 8 words in a block, the u9x7 stripe that
// must be added (for a set bit) or subtracted (for a cleared bit) to keep
// the running one-count fields for words >= that index in sync. Word 7 has
// no field tracking it (n_ones only carries the running totals for words
// 0..6, since num_ones adds bits[7]'s live popcount), hence the trailing 0.
var increment = [8]uint64{
	1 | (1 << 9) | (1 << 18) | (1 << 27) | (1 << 36) | (1 << 45) | (1 << 54),
	(1 << 9) | (1 << 18) | (1 << 27) | (1 << 36) | (1 << 45) | (1 << 54),
	(1 << 18) | (1 << 27) | (1 << 36) | (1 << 45) | (1 << 54),
	(1 << 27) | (1 << 36) | (1 << 45) | (1 << 54),
	(1 << 36) | (1 << 45) | (1 << 54),
	(1 << 45) | (1 << 54),
	(1 << 54),
	0,
}

// Block is a 512-bit vector with O(1) rank/select support via a packed
// prefix-sum of per-word popcounts.
type Block struct {
	nOnes array.U9x7
	len   int
	bits  [8]uint64
}

// New returns an empty block.
func New() *Block {
	return &Block{}
}

// FromBit returns a one-bit block holding bit.
func FromBit(bit bool) *Block {
	v := uint16(0)
	if bit {
		v = 1
	}
	return &Block{
		nOnes: array.NewU9x7([7]uint16{v, v, v, v, v, v, v}),
		bits:  [8]uint64{boolToWord(bit), 0, 0, 0, 0, 0, 0, 0},
		len:   1,
	}
}

func boolToWord(bit bool) uint64 {
	if bit {
		return 1
	}
	return 0
}

// Len returns the number of bits currently stored.
func (b *Block) Len() int { return b.len }

// IsEmpty reports whether the block holds no bits.
func (b *Block) IsEmpty() bool { return b.len == 0 }

// IsFull reports whether the block has reached its 512-bit capacity.
func (b *Block) IsFull() bool { return b.len == 512 }

// NumOnes returns the count of set bits in the block.
func (b *Block) NumOnes() uint32 {
	return uint32(b.nOnes.Get(6)) + uint32(bits.OnesCount64(b.bits[7]))
}

// NumZeros returns the count of cleared bits in the block.
func (b *Block) NumZeros() uint32 {
	return uint32(b.len) - b.NumOnes()
}

// Insert adds bit at position index, shifting every bit at index and beyond
// one place to the right. index may equal the current length (append). The
// caller must ensure the block is not already full.
func (b *Block) Insert(index int, bit bool) {
	if b.IsFull() {
		panic("bits512: Insert on a full block")
	}
	if index > b.len {
		panic("bits512: Insert index out of range")
	}

	upper := index / 64
	lower := index % 64

	last := b.bits[upper] >> 63
	if bit {
		b.nOnes = b.nOnes.AddRaw(increment[upper])
	}
	if last != 0 {
		b.nOnes = b.nOnes.SubRaw(increment[upper])
	}

	lowMask := uint64(1)<<uint(lower) - 1
	word := b.bits[upper]
	shifted := (word & lowMask) | (word&^lowMask)<<1
	if bit {
		shifted |= uint64(1) << uint(lower)
	}
	b.bits[upper] = shifted

	for u := upper + 1; u <= b.len/64; u++ {
		old := last
		last = b.bits[u] >> 63

		if old != 0 {
			b.nOnes = b.nOnes.AddRaw(increment[u])
		}
		if last != 0 {
			b.nOnes = b.nOnes.SubRaw(increment[u])
		}

		b.bits[u] = (b.bits[u] << 1) | old
	}

	b.len++
}

// SetBit overwrites the bit at index in place.
func (b *Block) SetBit(index int, bit bool) {
	if index >= b.len {
		panic("bits512: SetBit index out of range")
	}
	upper := index / 64
	lower := index % 64

	prev := b.bits[upper]&(uint64(1)<<uint(lower)) != 0
	if prev == bit {
		return
	}
	if bit {
		b.bits[upper] |= uint64(1) << uint(lower)
		b.nOnes = b.nOnes.AddRaw(increment[upper])
	} else {
		b.bits[upper] &^= uint64(1) << uint(lower)
		b.nOnes = b.nOnes.SubRaw(increment[upper])
	}
}

// GetBit returns the bit at index.
func (b *Block) GetBit(index int) bool {
	if index >= 512 {
		panic("bits512: GetBit index out of range")
	}
	upper := index / 64
	lower := index % 64
	return b.bits[upper]&(uint64(1)<<uint(lower)) != 0
}

// Split removes the upper half (bits 256..512) of a full block and returns
// it as a new block, halving this block's length to 256.
func (b *Block) Split() *Block {
	if !b.IsFull() {
		panic("bits512: Split on a non-full block")
	}

	mid := uint64(b.nOnes.Get(3))

	value := (uint64(b.nOnes) >> (4 * 9)) +
		uint64(b.NumOnes())*((1<<27)|(1<<36)|(1<<45)|(1<<54)) -
		mid*(1|(1<<9)|(1<<18)|(1<<27)|(1<<36)|(1<<45)|(1<<54))

	second := &Block{
		bits: [8]uint64{b.bits[4], b.bits[5], b.bits[6], b.bits[7], 0, 0, 0, 0},
		len:  256,
		nOnes: array.U9x7(value),
	}

	b.len = 256
	b.bits[4] = 0
	b.bits[5] = 0
	b.bits[6] = 0
	b.bits[7] = 0

	clearUpper := uint64(b.nOnes) & (uint64(1)<<36 - 1)
	b.nOnes = array.U9x7(clearUpper + mid*((1<<36)|(1<<45)|(1<<54)))

	return second
}

// Iter returns the block's bits in order, low index first.
func (b *Block) Iter() []bool {
	out := make([]bool, b.len)
	for i := range out {
		upper := i / 64
		lower := i % 64
		out[i] = b.bits[upper]&(uint64(1)<<uint(lower)) != 0
	}
	return out
}

// Rank0 returns the number of cleared bits before position index.
func (b *Block) Rank0(index int) int {
	return index - b.Rank1(index)
}

// Rank1 returns the number of set bits before position index.
func (b *Block) Rank1(index int) int {
	upper := index / 64
	lower := index % 64

	var bitsRank int
	if lower != 0 {
		bitsRank = wordRank1(b.bits[upper], lower)
	}

	var wordsRank int
	if upper != 0 {
		wordsRank = int(b.nOnes.Get(upper - 1))
	}

	return wordsRank + bitsRank
}

// SelectZero returns the position of the index-th cleared bit (0-indexed).
func (b *Block) SelectZero(index int) int {
	if index >= b.len {
		panic("bits512: SelectZero index out of range")
	}
	rank := b.nOnes.RankZero(index + 1)
	if rank != 0 {
		index -= 64*rank - int(b.nOnes.Get(rank-1))
	}
	return rank*64 + wordSelect0(b.bits[rank], index)
}

// SelectOne returns the position of the index-th set bit (0-indexed).
func (b *Block) SelectOne(index int) int {
	if index >= b.len {
		panic("bits512: SelectOne index out of range")
	}
	rank := b.nOnes.Rank(uint16(index + 1))
	if rank != 0 {
		index -= int(b.nOnes.Get(rank - 1))
	}
	return rank*64 + wordSelect1(b.bits[rank], index)
}

// wordRank1 returns the number of set bits in the low `count` bits of w.
func wordRank1(w uint64, count int) int {
	return bits.OnesCount64(w << uint(64-count))
}

// wordSelect0 returns the position of the index-th cleared bit in w.
func wordSelect0(w uint64, index int) int {
	return wordSelect1(^w, index)
}

// wordSelect1 returns the position of the index-th set bit in w, by
// repeatedly clearing the lowest set bit. This is the portable stand-in
// for the pdep-based trick the bit-manipulation original uses, which has no
// equivalent Go intrinsic without assembly.
func wordSelect1(w uint64, index int) int {
	for i := 0; i < index; i++ {
		w &= w - 1
	}
	return bits.TrailingZeros64(w)
}
