package array

// U8x3 packs three 8-bit counters into a uint32, laid out with a 2-bit gap
// above each field so that the BitWeaving comparison trick below cannot
// carry across lanes. Layout: 0000 cccc cccc 00bb bbbb bb00 aaaa aaaa.
type U8x3 uint32

const (
	u8x3Shift = 1 | (1 << 10) | (1 << 20)
	u8x3Mask  = (1 << 9) | (1 << 19) | (1 << 29)
)

// NewU8x3 packs three byte values into a single word.
func NewU8x3(data [3]uint8) U8x3 {
	a := uint32(data[0])
	b := uint32(data[1])
	c := uint32(data[2])
	return U8x3(a | (b << 10) | (c << 20))
}

// Rank returns the number of fields strictly less than needle, for needle in
// 0..=256. This is the BitWeaving comparison from "BitWeaving: Fast Scans
// for Main Memory Data Processing": for k-bit lanes x and y,
//
//	x < y  <=>  2^k <= y + (x ^ 0b0111...1)
//
// which for 2^k the lane's sign bit reduces to a single masked add.
func (u U8x3) Rank(needle int) int {
	if needle < 0 {
		needle = 0
	}
	if needle > 256 {
		needle = 256
	}
	n := uint32(needle) * u8x3Shift
	result := (n + (uint32(u) ^ ^uint32(u8x3Mask))) & u8x3Mask
	return int((result * u8x3Shift) >> 29)
}
