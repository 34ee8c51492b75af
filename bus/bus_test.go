package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatRAM struct {
	data [0x10000]byte
}

func (r *flatRAM) Read(addr uint16) byte     { return r.data[addr] }
func (r *flatRAM) Write(addr uint16, v byte) { r.data[addr] = v }

func newFullBus() (*Bus, *flatRAM) {
	ram := &flatRAM{}
	b := New()
	b.Connect("ram", 0x0000, 0xFFFF, ram)
	return b, ram
}

func TestReadWriteRoundTrip(t *testing.T) {
	b, _ := newFullBus()
	for _, addr := range []uint16{0x0000, 0x00FF, 0x0100, 0x4020, 0xFFFF} {
		assert.NoError(t, b.Write(addr, 0x42))
		v, err := b.Read(addr)
		assert.NoError(t, err)
		assert.Equal(t, byte(0x42), v)
	}
}

func TestDeviceNotFound(t *testing.T) {
	b := New()
	_, err := b.Read(0x1234)
	var dnf *DeviceNotFoundError
	assert.True(t, errors.As(err, &dnf))

	err = b.Write(0x1234, 1)
	assert.True(t, errors.As(err, &dnf))
}

func TestConnectOverlapPanics(t *testing.T) {
	b := New()
	b.Connect("a", 0x0000, 0x00FF, &flatRAM{})
	assert.Panics(t, func() {
		b.Connect("b", 0x00F0, 0x01FF, &flatRAM{})
	})
}

func TestReadU16RoundTrip(t *testing.T) {
	b, _ := newFullBus()
	for _, v := range []uint16{0x0000, 0x1234, 0xABCD, 0xFFFE} {
		assert.NoError(t, b.WriteU16(0x0200, v))
		got, err := b.ReadU16(0x0200)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadU16OutOfBounds(t *testing.T) {
	b, _ := newFullBus()
	_, err := b.ReadU16(0xFFFF)
	var oob *OutOfBoundsError
	assert.True(t, errors.As(err, &oob))

	err = b.WriteU16(0xFFFF, 0x1234)
	assert.True(t, errors.As(err, &oob))
}

func TestReadN(t *testing.T) {
	b, _ := newFullBus()
	for i, v := range []byte{1, 2, 3, 4} {
		assert.NoError(t, b.Write(0x8000+uint16(i), v))
	}
	got, err := b.ReadN(0x8000, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	_, err = b.ReadN(0xFFFE, 4)
	var oob *OutOfBoundsError
	assert.True(t, errors.As(err, &oob))
}

func TestZeroPageWrap(t *testing.T) {
	b, _ := newFullBus()
	assert.NoError(t, b.WriteZP(0xFF, 0x34))
	assert.NoError(t, b.WriteZP(0x00, 0x12)) // (0xFF+1) mod 256 == 0x00

	got, err := b.ReadZPU16(0xFF)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)

	assert.NoError(t, b.WriteZPU16(0xFE, 0xBEEF))
	lo, err := b.ReadZP(0xFE)
	assert.NoError(t, err)
	hi, err := b.ReadZP(0xFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xEF), lo)
	assert.Equal(t, byte(0xBE), hi)
}

func TestReadU16BuggyPageBoundary(t *testing.T) {
	b, _ := newFullBus()
	assert.NoError(t, b.Write(0x02FF, 0x34))
	assert.NoError(t, b.Write(0x0300, 0xFF)) // decoy: correct-but-wrong next page
	assert.NoError(t, b.Write(0x0200, 0x12)) // bug: high byte actually comes from here

	got, err := b.ReadU16Buggy(0x02FF)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)
}

func TestMultipleDevices(t *testing.T) {
	b := New()
	low := &flatRAM{}
	high := &flatRAM{}
	b.Connect("low", 0x0000, 0x7FFF, low)
	b.Connect("high", 0x8000, 0xFFFF, high)

	assert.NoError(t, b.Write(0x0010, 1))
	assert.NoError(t, b.Write(0x8010, 2))
	assert.Equal(t, byte(1), low.data[0x0010])
	assert.Equal(t, byte(2), high.data[0x8010])
	assert.Equal(t, byte(0), low.data[0x8010]) // untouched
}
