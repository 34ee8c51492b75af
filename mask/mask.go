// Package mask provides operations to extract and manipulate ranges of bits
// from a byte.
//
// Functions taking a byteIndex use 1-indexed, MSB-first positions, and their
// ranges are inclusive. Bit and IsBitSet instead take a bit number n,
// 0-indexed from the LSB.

package mask

import (
	_bits "math/bits"
)

// A byteIndex provides compile-time safety when indexing into a byte.
type byteIndex byte

const (
	I1 byteIndex = iota + 1
	I2
	I3
	I4
	I5
	I6
	I7
	I8
)

// https://pkg.go.dev/golang.org/x/text/internal/gen/bitfield
// https://cs.opensource.google/go/x/text/+/refs/tags/v0.18.0:internal/gen/bitfield/bitfield_test.go;l=16

// func checkByteIndex(n byteIndex) {
// 	// https://github.com/golang/go/issues/29649#issuecomment-454585328
// 	// https://github.com/golang/go/issues/29649#issuecomment-454820179
// 	//
// 	// Go does not allow us to model a constrained int with a type, hence
// 	// this helper func
// 	if n < 1 || n > 8 {
// 		panic("Invalid byte index provided -- must fall in the range [1,8].")
// 	}
// }

func checkByteRange(start byteIndex, end byteIndex) {
	if start > end {
		panic("Invalid range provided -- start must <= end.")
	}
}

// Last extracts the last n bits of b.
func Last(b byte, n byteIndex) byte {
	// this and lastLoop are about 0.0000015 ns/op, in the worst case

	// https://stackoverflow.com/a/15255834
	return b & ((1 << n) - 1)
}

func lastLoop(b byte, n byteIndex) byte {
	var last byte
	for bit := range n {
		last += (1 << bit)
	}
	return b & last
}

// First extracts the first n bits of b.
func First(b byte, n byteIndex) byte {
	// push the bits down, then apply the mask as usual
	return Last(b>>(8-n), n)
	// var first byte
	// for bit := range n {
	// 	first += (1 << bit)
	// }
	// return (b >> (8 - n)) & (first)
}

// Range extracts the inclusive range of bits [start:end] from b. Both start
// and end are 1-indexed.
func Range(b byte, start byteIndex, end byteIndex) byte {
	checkByteRange(start, end)
	// 0b1101_1000, 4, 5
	//      L_LLLL
	//      F_F
	tail := Last(b, 8-(start-1))
	return First(tail, end)
}

// IsSet reports whether the bit at pos is 1.
func IsSet(b byte, pos byteIndex) bool {
	return b&(1<<(8-pos)) != 0
}

// Set ORs the new bits into b, placing the highest 1 bit of bits at pos
// (1-indexed). Bits already set in b stay set.
//
// If the new bits are zero, b is returned unchanged; Unset should be used to
// clear bits.
//
// If the new bits cannot fit at the desired pos, the new bits will be
// truncated.
func Set(b byte, pos byteIndex, bits byte) byte {
	if bits == 0 {
		return b
	}
	bitlen := byte(_bits.LeadingZeros8(bits))
	bits <<= bitlen
	bits >>= pos - 1
	return b | bits
}

// Unset clears the existing bits of b in the inclusive range [start:end].
func Unset(b byte, start byteIndex, end byteIndex) byte {
	checkByteRange(start, end)
	for ; start <= end; start++ {
		// hole := byte(math.MaxUint8 - 1<<(8-start))
		hole := byte(^(1 << byte(8-start))) // a full byte, with 1 bit unset
		b &= hole
	}
	return b
}

// Flip flips the existing bits of b in the inclusive range [start:end].
func Flip(b byte, start byteIndex, end byteIndex) byte {
	checkByteRange(start, end)
	for ; start <= end; start++ {
		b ^= (1 << (8 - start))
	}
	return b
}

// SetBit sets the single bit at pos (1-indexed, MSB-first) to 1.
func SetBit(b byte, pos byteIndex) byte {
	return Set(b, pos, 1)
}

// ClearBit sets the single bit at pos (1-indexed, MSB-first) to 0.
func ClearBit(b byte, pos byteIndex) byte {
	return Unset(b, pos, pos)
}

// PutBit sets the single bit at pos to 1 if v is true, 0 otherwise.
func PutBit(b byte, pos byteIndex, v bool) byte {
	if v {
		return SetBit(b, pos)
	}
	return ClearBit(b, pos)
}

// Bit returns bit n (0-indexed from the LSB) of b, isolated: either 0 or
// 1<<n.
func Bit(b byte, n uint) byte {
	return b & (1 << n)
}

// IsBitSet reports whether bit n (0-indexed from the LSB) of b is 1.
func IsBitSet(b byte, n uint) bool {
	return Bit(b, n) != 0
}

// IsNegative reports whether b's sign bit (bit 7) is set, i.e. whether b
// would be negative if interpreted as a two's-complement int8.
func IsNegative(b byte) bool {
	return IsBitSet(b, 7)
}

// Word packs lo and hi into a little-endian 16-bit value: lo occupies the
// low byte, hi the high byte.
func Word(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

// Bytes unpacks a little-endian 16-bit value into its low and high bytes.
func Bytes(v uint16) (lo, hi byte) {
	return byte(v), byte(v >> 8)
}

// SignExtend sign-extends a two's-complement byte to a signed 16-bit value,
// as used by the Relative addressing mode to compute a branch offset.
func SignExtend(b byte) int16 {
	return int16(int8(b))
}
