package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, Last(0b0000_1111, I1), byte(0b0000_0001))
	assert.Equal(t, Last(0b0000_1111, I2), byte(0b0000_0011))
	assert.Equal(t, Last(0b0000_1111, I3), byte(0b0000_0111))
	assert.Equal(t, Last(0b0000_1111, I4), byte(0b0000_1111))

	assert.Equal(t, Last(0b1000_1111, I1), byte(0b0000_0001))
	assert.Equal(t, Last(0b1000_1111, I2), byte(0b0000_0011))
	assert.Equal(t, Last(0b1000_1111, I3), byte(0b0000_0111))
	assert.Equal(t, Last(0b1000_1111, I4), byte(0b0000_1111))

	assert.Equal(t, Last(0b0000_1010, I1), byte(0b0000_0000))
	assert.Equal(t, Last(0b0000_1010, I2), byte(0b0000_0010))
	assert.Equal(t, Last(0b0000_1010, I3), byte(0b0000_0010))
	assert.Equal(t, Last(0b0000_1010, I4), byte(0b0000_1010))

	assert.Equal(t, First(0b1111_1111, 1), byte(0b0000_0001))
	assert.Equal(t, First(0b1010_1111, 4), byte(0b0000_1010))

	assert.Equal(t, Range(0b1101_1000, I1, I2), byte(0b0000_0011))
	assert.Equal(t, Range(0b1101_1000, I2, I4), byte(0b0000_0101))
	assert.Equal(t, Range(0b1101_1000, I4, I5), byte(0b0000_0011))
	assert.Equal(t, Range(0b1101_1000, I5, I8), byte(0b0000_1000))

	assert.True(t, IsSet(0b1101_1000, 1))
	assert.True(t, IsSet(0b1101_1000, 2))
	assert.False(t, IsSet(0b1101_1000, 3))
	assert.True(t, IsSet(0b1101_1000, 4))

	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0010), byte(0b1000_0000))
	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0101), byte(0b1010_0000))
	assert.Equal(t, Set(0b0000_0000, 1, 0b0000_0111), byte(0b1110_0000))
	assert.Equal(t, Set(0b0000_0000, 2, 0b0000_0011), byte(0b0110_0000))
	assert.Equal(t, Set(0b0000_0000, 2, 0b0000_0111), byte(0b0111_0000))
	assert.Equal(t, Set(0b0000_0000, 5, 0b0000_1111), byte(0b0000_1111))
	assert.Equal(t, Set(0b0000_0000, 7, 0b0000_1000), byte(0b0000_0010))
	assert.Equal(t, Set(0b0000_0000, 7, 0b0000_1111), byte(0b0000_0011))
	assert.Equal(t, Set(0b1111_1111, 1, 0), byte(0b1111_1111))

	assert.Equal(t, Unset(0b1111_0000, 5, 8), byte(0b1111_0000))
	assert.Equal(t, Unset(0b1111_1111, 5, 8), byte(0b1111_0000))

	assert.Equal(t, Flip(0b1111_0000, 5, 5), byte(0b1111_1000))
	assert.Equal(t, Flip(0b1111_0000, 5, 8), byte(0b1111_1111))
	assert.Equal(t, Flip(0b1111_0000, 8, 8), byte(0b1111_0001))
	assert.Equal(t, Flip(0b1111_1111, 5, 8), byte(0b1111_0000))

	// assert.Panics(t, func() { _ = Last(byte(0), 10) })
	// assert.Panics(t, func() { _ = Range(byte(0), 0, 9) })
}

func BenchmarkLast(b *testing.B) {
	Last(0b1000_1111, 4)
}

func BenchmarkLastLoop(b *testing.B) {
	lastLoop(0b1000_1111, 4)
}

func BenchmarkFirst(b *testing.B) {
	First(0b1000_1111, 4)
}

func TestSetBitClearBitPutBit(t *testing.T) {
	assert.Equal(t, SetBit(0b0000_0000, I1), byte(0b1000_0000))
	assert.Equal(t, SetBit(0b0000_0000, I8), byte(0b0000_0001))
	assert.Equal(t, ClearBit(0b1111_1111, I1), byte(0b0111_1111))
	assert.Equal(t, ClearBit(0b1111_1111, I8), byte(0b1111_1110))
	assert.Equal(t, PutBit(0, I1, true), byte(0b1000_0000))
	assert.Equal(t, PutBit(0xff, I1, false), byte(0b0111_1111))
}

func TestBitPrimitives(t *testing.T) {
	for n := uint(0); n < 8; n++ {
		assert.Equal(t, Bit(0xff, n), byte(1<<n))
		assert.Equal(t, Bit(0x00, n), byte(0))
		assert.True(t, IsBitSet(0xff, n))
		assert.False(t, IsBitSet(0x00, n))
	}

	assert.True(t, IsNegative(0x80))
	assert.True(t, IsNegative(0xff))
	assert.False(t, IsNegative(0x7f))
	assert.False(t, IsNegative(0x00))
}

func TestWordAndBytes(t *testing.T) {
	assert.Equal(t, Word(0x34, 0x12), uint16(0x1234))
	lo, hi := Bytes(0x1234)
	assert.Equal(t, lo, byte(0x34))
	assert.Equal(t, hi, byte(0x12))

	for _, v := range []uint16{0x0000, 0x00ff, 0xff00, 0xffff, 0x8001} {
		lo, hi := Bytes(v)
		assert.Equal(t, Word(lo, hi), v)
	}
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, SignExtend(0x00), int16(0))
	assert.Equal(t, SignExtend(0x7f), int16(127))
	assert.Equal(t, SignExtend(0x80), int16(-128))
	assert.Equal(t, SignExtend(0xff), int16(-1))
	assert.Equal(t, SignExtend(0x10), int16(16))
}
