// Package trace provides inspection helpers kept out of the cpu package
// itself: a small ring buffer of retired instructions plus a spew-backed
// snapshot dump, consumed by cmd/monitor.
package trace

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/hejops/nescore/cpu"
)

// Entry records one retired instruction: its address, the decoded
// instruction, and the cycles it billed to the Clock.
type Entry struct {
	PC     uint16
	Instr  cpu.Instruction
	Cycles uint64
}

func (e Entry) String() string {
	return fmt.Sprintf("%04X  %-4s %-10s  (%d cyc)", e.PC, e.Instr.Operation, e.Instr.Mode, e.Cycles)
}

// Ring is a fixed-capacity ring buffer of the most recently retired
// instructions, oldest first when iterated via Entries.
type Ring struct {
	buf   []Entry
	cap   int
	start int
	n     int
}

// NewRing constructs a Ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]Entry, capacity), cap: capacity}
}

// Push appends e, evicting the oldest entry once the ring is full.
func (r *Ring) Push(e Entry) {
	idx := (r.start + r.n) % r.cap
	r.buf[idx] = e
	if r.n < r.cap {
		r.n++
	} else {
		r.start = (r.start + 1) % r.cap
	}
}

// Entries returns the buffered entries, oldest first.
func (r *Ring) Entries() []Entry {
	out := make([]Entry, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.buf[(r.start+i)%r.cap]
	}
	return out
}

// Len reports how many entries are currently buffered.
func (r *Ring) Len() int { return r.n }

// Recorder wraps a *cpu.Cpu, stepping it and recording each retired
// instruction's decode into a Ring for later inspection.
type Recorder struct {
	Cpu  *cpu.Cpu
	Ring *Ring
}

// NewRecorder constructs a Recorder over c with a ring of the given
// capacity.
func NewRecorder(c *cpu.Cpu, capacity int) *Recorder {
	return &Recorder{Cpu: c, Ring: NewRing(capacity)}
}

// Step decodes the instruction at the current PC (for trace purposes only;
// Cpu.Step performs its own independent decode), steps the Cpu, and
// records the result.
func (r *Recorder) Step() (uint64, error) {
	pc := r.Cpu.Regs.PC
	opcode, err := r.Cpu.Bus.Read(pc)
	if err != nil {
		return 0, err
	}
	instr, err := cpu.Decode(opcode)
	if err != nil {
		return 0, err
	}

	cycles, err := r.Cpu.Step()
	if err != nil {
		return 0, err
	}
	r.Ring.Push(Entry{PC: pc, Instr: instr, Cycles: cycles})
	return cycles, nil
}

// DumpSnapshot renders a cpu.Snapshot's registers with go-spew, followed by
// its cycle count, for ad hoc state inspection. The memory image is not
// included.
func DumpSnapshot(snap cpu.Snapshot) string {
	return spew.Sdump(snap.Regs) + fmt.Sprintf("cycles: %d\n", snap.Cycles)
}
