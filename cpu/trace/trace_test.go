package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hejops/nescore/bus"
	"github.com/hejops/nescore/bus/device"
	"github.com/hejops/nescore/cpu"
)

func newTestCpu(t *testing.T) *cpu.Cpu {
	t.Helper()
	b := bus.New()
	b.Connect("ram", 0x0000, 0xFFFF, device.NewRAM(0x10000))
	assert.NoError(t, b.WriteU16(0xFFFC, 0x8000))
	c, err := cpu.New(b, cpu.NTSC)
	assert.NoError(t, err)
	return c
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(2)
	r.Push(Entry{PC: 1})
	r.Push(Entry{PC: 2})
	r.Push(Entry{PC: 3})

	entries := r.Entries()
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []uint16{2, 3}, []uint16{entries[0].PC, entries[1].PC})
}

func TestRecorderStep(t *testing.T) {
	c := newTestCpu(t)
	assert.NoError(t, c.Bus.Write(0x8000, 0xE8)) // INX
	assert.NoError(t, c.Bus.Write(0x8001, 0xE8)) // INX

	rec := NewRecorder(c, 4)
	_, err := rec.Step()
	assert.NoError(t, err)
	_, err = rec.Step()
	assert.NoError(t, err)

	assert.Equal(t, 2, rec.Ring.Len())
	entries := rec.Ring.Entries()
	assert.Equal(t, uint16(0x8000), entries[0].PC)
	assert.Equal(t, uint16(0x8001), entries[1].PC)
	assert.Equal(t, cpu.INX, entries[0].Instr.Operation)
}

func TestDumpSnapshotIncludesCycles(t *testing.T) {
	c := newTestCpu(t)
	snap, err := c.Snapshot()
	assert.NoError(t, err)
	out := DumpSnapshot(snap)
	assert.Contains(t, out, "cycles:")
}
