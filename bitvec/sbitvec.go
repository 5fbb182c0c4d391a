package bitvec

import (
	"sort"

	"github.com/TomTonic/psearch/array"
	"github.com/TomTonic/psearch/bits512"
)

// groupSize is the number of 512-bit blocks a level-2 directory entry
// summarizes before a level-3 entry takes over; 33 blocks span roughly
// 16896 bits, keeping level-2's 32-wide uint32 array one entry short of
// covering the whole group (the 33rd block's contribution lives only in
// the next group's level-3 running total).
const groupSize = 33

// SBitVec is an immutable bit vector with a three-level rank/select
// directory, built once from a finished sequence of bits. It trades
// BitVec's ability to grow for flatter, denser storage: level 1 is each
// block's own packed popcount (bits512.Block already carries this),
// level 2 is a per-group array of running one-counts over up to 32 blocks,
// and level 3 is the running one-count before each group.
type SBitVec struct {
	len    int
	blocks []*bits512.Block

	index2 [][32]uint32 // per group: running one-count over blocks 0..31
	index3 []uint32     // per group: total ones before the group

	zeros2 [][32]uint32 // per group: running zero-count over blocks 0..31
	zeros3 []uint32     // per group: total zeros before the group

	totalOnes  int
	totalZeros int
}

// NewSBitVec builds an SBitVec from a finished sequence of bits.
func NewSBitVec(bits []bool) *SBitVec {
	sb := &SBitVec{len: len(bits)}

	for start := 0; start < len(bits); start += 512 {
		end := start + 512
		if end > len(bits) {
			end = len(bits)
		}
		blk := bits512.New()
		for _, bit := range bits[start:end] {
			blk.Insert(blk.Len(), bit)
		}
		sb.blocks = append(sb.blocks, blk)
	}
	if len(sb.blocks) == 0 {
		sb.blocks = append(sb.blocks, bits512.New())
	}

	runningOnes, runningZeros := uint32(0), uint32(0)
	for start := 0; start < len(sb.blocks); start += groupSize {
		inGroup := groupSize
		if start+groupSize > len(sb.blocks) {
			inGroup = len(sb.blocks) - start
		}

		var idx2, z2 [32]uint32
		sumOnes, sumZeros := uint32(0), uint32(0)
		for s := 0; s < 32; s++ {
			if s < inGroup {
				b := sb.blocks[start+s]
				sumOnes += b.NumOnes()
				sumZeros += b.NumZeros()
			}
			idx2[s] = sumOnes
			z2[s] = sumZeros
		}
		sb.index2 = append(sb.index2, idx2)
		sb.zeros2 = append(sb.zeros2, z2)
		sb.index3 = append(sb.index3, runningOnes)
		sb.zeros3 = append(sb.zeros3, runningZeros)

		groupOnes, groupZeros := sumOnes, sumZeros
		if inGroup > 32 {
			b := sb.blocks[start+32]
			groupOnes += b.NumOnes()
			groupZeros += b.NumZeros()
		}
		runningOnes += groupOnes
		runningZeros += groupZeros
	}

	sb.totalOnes = int(runningOnes)
	sb.totalZeros = int(runningZeros)
	return sb
}

// Len returns the number of bits stored.
func (sb *SBitVec) Len() int { return sb.len }

// NumOnes returns the total count of set bits.
func (sb *SBitVec) NumOnes() int { return sb.totalOnes }

// NumZeros returns the total count of cleared bits.
func (sb *SBitVec) NumZeros() int { return sb.totalZeros }

// GetBit returns the bit at index i.
func (sb *SBitVec) GetBit(i int) bool {
	blockIdx, offset := i/512, i%512
	return sb.blocks[blockIdx].GetBit(offset)
}

// Rank1 returns the number of set bits before position i.
func (sb *SBitVec) Rank1(i int) int {
	blockIdx, offset := i/512, i%512
	g, s := blockIdx/groupSize, blockIdx%groupSize

	total := int(sb.index3[g])
	if s > 0 {
		total += int(sb.index2[g][s-1])
	}
	total += sb.blocks[blockIdx].Rank1(offset)
	return total
}

// Rank0 returns the number of cleared bits before position i.
func (sb *SBitVec) Rank0(i int) int {
	blockIdx, offset := i/512, i%512
	g, s := blockIdx/groupSize, blockIdx%groupSize

	total := int(sb.zeros3[g])
	if s > 0 {
		total += int(sb.zeros2[g][s-1])
	}
	total += sb.blocks[blockIdx].Rank0(offset)
	return total
}

// SelectOne returns the position of the index-th set bit (0-indexed).
func (sb *SBitVec) SelectOne(index int) int {
	if index < 0 || index >= sb.totalOnes {
		panic("bitvec: SelectOne index out of range")
	}
	g := sort.Search(len(sb.index3), func(k int) bool {
		return int(sb.index3[k]) > index
	}) - 1
	remaining := index - int(sb.index3[g])
	s := array.U32x16Rank(sb.index2[g][:], uint32(remaining+1))
	before := 0
	if s > 0 {
		before = int(sb.index2[g][s-1])
	}
	blockIdx := g*groupSize + s
	return blockIdx*512 + sb.blocks[blockIdx].SelectOne(remaining-before)
}

// SelectZero returns the position of the index-th cleared bit (0-indexed).
func (sb *SBitVec) SelectZero(index int) int {
	if index < 0 || index >= sb.totalZeros {
		panic("bitvec: SelectZero index out of range")
	}
	g := sort.Search(len(sb.zeros3), func(k int) bool {
		return int(sb.zeros3[k]) > index
	}) - 1
	remaining := index - int(sb.zeros3[g])
	s := array.U32x16Rank(sb.zeros2[g][:], uint32(remaining+1))
	before := 0
	if s > 0 {
		before = int(sb.zeros2[g][s-1])
	}
	blockIdx := g*groupSize + s
	return blockIdx*512 + sb.blocks[blockIdx].SelectZero(remaining-before)
}
