package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMPlain(t *testing.T) {
	r := NewRAM(0x800)
	r.Write(0x10, 0x42)
	assert.Equal(t, byte(0x42), r.Read(0x10))
}

func TestRAMMirrored(t *testing.T) {
	r := NewMirroredRAM(0x800, 0x800)
	r.Write(0x0010, 0xAA)
	assert.Equal(t, byte(0xAA), r.Read(0x0810)) // mirrors 0x0800 later
	assert.Equal(t, byte(0xAA), r.Read(0x1810))
}

func TestRegisterBankRoundTrip(t *testing.T) {
	b := NewPPURegisters()
	b.Write(0x2000, 0x80)
	assert.Equal(t, byte(0x80), b.Read(0x2000))
	// mirrored every 8 bytes through 0x3FFF
	assert.Equal(t, byte(0x80), b.Read(0x2008))
	assert.Equal(t, byte(0x80), b.Read(0x3FF8))
}

func TestRegisterBankHooks(t *testing.T) {
	b := NewAPURegisters()
	var lastReg uint16
	var lastVal byte
	b.OnWrite(func(reg uint16, v byte) { lastReg, lastVal = reg, v })
	b.Write(0x4015, 0x0F)
	assert.Equal(t, uint16(0x15), lastReg)
	assert.Equal(t, byte(0x0F), lastVal)

	b.OnRead(func(reg uint16) (byte, bool) {
		if reg == 0x15 {
			return 0xFF, true
		}
		return 0, false
	})
	assert.Equal(t, byte(0xFF), b.Read(0x4015))
}

func TestROMReadOnly(t *testing.T) {
	r := NewROM([]byte{0xAA, 0xBB, 0xCC})
	assert.Equal(t, byte(0xAA), r.Read(0))
	assert.Equal(t, byte(0xBB), r.Read(1))
	r.Write(0, 0xFF)
	assert.Equal(t, byte(0xAA), r.Read(0)) // write ignored

	// mirrors when window is larger than the image
	assert.Equal(t, byte(0xAA), r.Read(3))
}

func TestROMEmpty(t *testing.T) {
	r := NewROM(nil)
	assert.Equal(t, byte(0), r.Read(0x1234))
}
