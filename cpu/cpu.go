// Package cpu implements the MOS 6502 (NES 2A03 variant) execution engine:
// the fetch/decode/resolve/execute loop, its register file and status
// flags, and RESET/NMI/IRQ/BRK interrupt handling, all driven over a
// bus.Bus.
package cpu

import (
	"github.com/hejops/nescore/bus"
)

// Interrupt vector addresses. The RESET vector is read by New and Reset; the
// NMI and IRQ vectors are read from the bus each time that interrupt (or
// BRK, for IRQ) is entered, and are not cached at power-on.
const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
)

// Cpu is the 6502 execution engine. It owns the Bus exclusively for the
// lifetime of emulation: no concurrent mutators exist, and devices are
// mutated only through the Bus's write dispatch.
type Cpu struct {
	Bus   *bus.Bus
	Regs  Registers
	Clock *Clock

	nmiPending bool
	irqLine    bool
}

// New constructs a Cpu over bus and initializes registers to their
// power-on state: PC from the RESET vector, I set, all other flags and
// registers zero, S = 0xFF.
func New(b *bus.Bus, region Region) (*Cpu, error) {
	resetVec, err := b.ReadU16(vectorReset)
	if err != nil {
		return nil, err
	}
	c := &Cpu{
		Bus:   b,
		Clock: NewClock(region),
		Regs: Registers{
			S:  0xFF,
			P:  StatusFlags(0).WithI(true),
			PC: resetVec,
		},
	}
	return c, nil
}

// RequestNMI raises the edge-triggered NMI line. It is serviced before the
// next instruction fetch and then cleared automatically.
func (c *Cpu) RequestNMI() {
	c.nmiPending = true
}

// SetIRQLine sets the level-triggered IRQ line. While asserted and the I
// flag is clear, IRQ is serviced before each instruction fetch.
func (c *Cpu) SetIRQLine(asserted bool) {
	c.irqLine = asserted
}

// Step executes exactly one instruction, preceded by interrupt service if
// one is pending: NMI first (edge, cleared once serviced), then IRQ if
// asserted and I is clear, else a normal fetch. It returns the number of
// cycles the instruction (or interrupt entry) consumed.
func (c *Cpu) Step() (uint64, error) {
	before := c.Clock.Cycles

	if c.nmiPending {
		c.nmiPending = false
		if err := c.serviceInterrupt(vectorNMI); err != nil {
			return 0, err
		}
		return c.Clock.Cycles - before, nil
	}

	if c.irqLine && !c.Regs.P.i() {
		if err := c.serviceInterrupt(vectorIRQ); err != nil {
			return 0, err
		}
		return c.Clock.Cycles - before, nil
	}

	if err := c.step(); err != nil {
		return 0, err
	}
	return c.Clock.Cycles - before, nil
}

// step runs a single fetch/decode/resolve/execute cycle.
func (c *Cpu) step() error {
	opcode, err := c.Bus.Read(c.Regs.PC)
	if err != nil {
		return err
	}

	instr, err := Decode(opcode)
	if err != nil {
		return err
	}

	operand, err := c.Bus.ReadN(c.Regs.PC+1, int(instr.Length)-1)
	if err != nil {
		return err
	}

	pcNext := c.Regs.PC + uint16(instr.Length)

	res, err := resolveInput(c.Bus, instr.Mode, operand, c.Regs, pcNext)
	if err != nil {
		return err
	}

	// Write- and RMW-style variants pay the indexed/indirect penalty
	// unconditionally; the opcode table's BaseCycles already bakes that
	// in, so only read-style instructions add a cycle here.
	cycles := uint64(instr.BaseCycles)
	if res.pageCrossed && instr.pageCrossRW {
		cycles++
	}

	outcome, err := c.dispatch(instr, res.input, pcNext)
	if err != nil {
		return err
	}

	c.Clock.Tick(cycles + uint64(outcome.extraCycles))
	if outcome.pcOverridden {
		c.Regs.PC = outcome.newPC
	} else {
		c.Regs.PC = pcNext
	}
	return nil
}
