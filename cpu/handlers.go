package cpu

import "github.com/hejops/nescore/mask"

// dispatchOutcome reports what a handler did beyond the registers it
// mutated directly: whether it overrode PC (branch/jump/BRK) and any
// cycles beyond the instruction's base+page-cross cost (branch taken,
// branch page-cross).
type dispatchOutcome struct {
	pcOverridden bool
	newPC        uint16
	extraCycles  uint64
}

// value resolves an Input to the byte a read-style operation should
// operate on: the immediate byte, the accumulator, or the byte at a bus
// address.
func (c *Cpu) value(op Operation, mode Mode, in Input) (byte, error) {
	switch in.kind {
	case inputByte:
		return in.byteVal, nil
	case inputAccumulator:
		return c.Regs.A, nil
	case inputAddress:
		return c.Bus.Read(in.addr)
	default:
		return 0, &InputShapeMismatchError{Operation: op, Mode: mode, Want: "a byte"}
	}
}

// readLocation and writeLocation share the read-modify-write target
// resolution used by ASL/LSR/ROL/ROR/INC/DEC.
func (c *Cpu) readLocation(loc Location) (byte, error) {
	if loc.IsAccumulator() {
		return c.Regs.A, nil
	}
	return c.Bus.Read(loc.Address())
}

func (c *Cpu) writeLocation(loc Location, v byte) error {
	if loc.IsAccumulator() {
		c.Regs.A = v
		return nil
	}
	return c.Bus.Write(loc.Address(), v)
}

// dispatch executes instr against the resolved Input, mutating registers,
// Bus, and flags as the operation requires.
func (c *Cpu) dispatch(instr Instruction, in Input, pcNext uint16) (dispatchOutcome, error) {
	op, mode := instr.Operation, instr.Mode

	switch op {

	// --- loads / stores ---
	case LDA:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.A = v
		c.Regs.P = c.Regs.P.WithNZ(v)
	case LDX:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.X = v
		c.Regs.P = c.Regs.P.WithNZ(v)
	case LDY:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.Y = v
		c.Regs.P = c.Regs.P.WithNZ(v)
	case STA:
		addr, err := in.ExpectAddress(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		if err := c.Bus.Write(addr, c.Regs.A); err != nil {
			return dispatchOutcome{}, err
		}
	case STX:
		addr, err := in.ExpectAddress(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		if err := c.Bus.Write(addr, c.Regs.X); err != nil {
			return dispatchOutcome{}, err
		}
	case STY:
		addr, err := in.ExpectAddress(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		if err := c.Bus.Write(addr, c.Regs.Y); err != nil {
			return dispatchOutcome{}, err
		}

	// --- transfers ---
	case TAX:
		c.Regs.X = c.Regs.A
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.X)
	case TAY:
		c.Regs.Y = c.Regs.A
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.Y)
	case TSX:
		c.Regs.X = c.Regs.S
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.X)
	case TXA:
		c.Regs.A = c.Regs.X
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.A)
	case TYA:
		c.Regs.A = c.Regs.Y
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.A)
	case TXS:
		c.Regs.S = c.Regs.X

	// --- arithmetic ---
	case ADC:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.runADC(v)
	case SBC:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.runADC(^v)
	case CMP:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.runCompare(c.Regs.A, v)
	case CPX:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.runCompare(c.Regs.X, v)
	case CPY:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.runCompare(c.Regs.Y, v)
	case INC:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v++
		if err := c.writeLocation(loc, v); err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.P = c.Regs.P.WithNZ(v)
	case DEC:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v--
		if err := c.writeLocation(loc, v); err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.P = c.Regs.P.WithNZ(v)
	case INX:
		c.Regs.X++
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.X)
	case DEX:
		c.Regs.X--
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.X)
	case INY:
		c.Regs.Y++
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.Y)
	case DEY:
		c.Regs.Y--
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.Y)

	// --- logic ---
	case AND:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.A &= v
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.A)
	case ORA:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.A |= v
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.A)
	case EOR:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.A ^= v
		c.Regs.P = c.Regs.P.WithNZ(c.Regs.A)
	case BIT:
		v, err := c.value(op, mode, in)
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.P = c.Regs.P.
			WithZ(c.Regs.A&v == 0).
			WithV(mask.IsBitSet(v, 6)).
			WithN(mask.IsBitSet(v, 7))

	// --- shifts / rotates ---
	case ASL:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		result := v << 1
		c.Regs.P = c.Regs.P.WithC(mask.IsBitSet(v, 7)).WithNZ(result)
		if err := c.writeLocation(loc, result); err != nil {
			return dispatchOutcome{}, err
		}
	case LSR:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		result := v >> 1
		c.Regs.P = c.Regs.P.WithC(mask.IsBitSet(v, 0)).WithN(false).WithZ(result == 0)
		if err := c.writeLocation(loc, result); err != nil {
			return dispatchOutcome{}, err
		}
	case ROL:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		var oldCarry byte
		if c.Regs.P.c() {
			oldCarry = 1
		}
		result := (v << 1) | oldCarry
		c.Regs.P = c.Regs.P.WithC(mask.IsBitSet(v, 7)).WithNZ(result)
		if err := c.writeLocation(loc, result); err != nil {
			return dispatchOutcome{}, err
		}
	case ROR:
		loc, err := in.ExpectLocation(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		v, err := c.readLocation(loc)
		if err != nil {
			return dispatchOutcome{}, err
		}
		var oldCarry byte
		if c.Regs.P.c() {
			oldCarry = 0x80
		}
		result := (v >> 1) | oldCarry
		c.Regs.P = c.Regs.P.WithC(mask.IsBitSet(v, 0)).WithNZ(result)
		if err := c.writeLocation(loc, result); err != nil {
			return dispatchOutcome{}, err
		}

	// --- branches ---
	case BCC:
		return c.runBranch(!c.Regs.P.c(), op, in, pcNext)
	case BCS:
		return c.runBranch(c.Regs.P.c(), op, in, pcNext)
	case BNE:
		return c.runBranch(!c.Regs.P.z(), op, in, pcNext)
	case BEQ:
		return c.runBranch(c.Regs.P.z(), op, in, pcNext)
	case BPL:
		return c.runBranch(!c.Regs.P.n(), op, in, pcNext)
	case BMI:
		return c.runBranch(c.Regs.P.n(), op, in, pcNext)
	case BVC:
		return c.runBranch(!c.Regs.P.v(), op, in, pcNext)
	case BVS:
		return c.runBranch(c.Regs.P.v(), op, in, pcNext)

	// --- jumps / subroutines ---
	case JMP:
		addr, err := in.ExpectAddress(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		return dispatchOutcome{pcOverridden: true, newPC: addr}, nil
	case JSR:
		addr, err := in.ExpectAddress(op, mode)
		if err != nil {
			return dispatchOutcome{}, err
		}
		if err := c.pushU16(pcNext - 1); err != nil {
			return dispatchOutcome{}, err
		}
		return dispatchOutcome{pcOverridden: true, newPC: addr}, nil
	case RTS:
		addr, err := c.pullU16()
		if err != nil {
			return dispatchOutcome{}, err
		}
		return dispatchOutcome{pcOverridden: true, newPC: addr + 1}, nil

	// --- stack / flags ---
	case PHA:
		if err := c.push(c.Regs.A); err != nil {
			return dispatchOutcome{}, err
		}
	case PHP:
		p := c.Regs.P.WithB0(true).WithB1(true)
		if err := c.push(byte(p)); err != nil {
			return dispatchOutcome{}, err
		}
	case PLA:
		v, err := c.pull()
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.A = v
		c.Regs.P = c.Regs.P.WithNZ(v)
	case PLP:
		v, err := c.pull()
		if err != nil {
			return dispatchOutcome{}, err
		}
		c.Regs.P = StatusFlags(v).WithB0(false)
	case CLC:
		c.Regs.P = c.Regs.P.WithC(false)
	case SEC:
		c.Regs.P = c.Regs.P.WithC(true)
	case CLD:
		c.Regs.P = c.Regs.P.WithD(false)
	case SED:
		c.Regs.P = c.Regs.P.WithD(true)
	case CLI:
		c.Regs.P = c.Regs.P.WithI(false)
	case SEI:
		c.Regs.P = c.Regs.P.WithI(true)
	case CLV:
		c.Regs.P = c.Regs.P.WithV(false)

	// --- interrupts ---
	case BRK:
		return c.runBRK(pcNext)
	case RTI:
		return c.runRTI()

	case NOP:
		// no operation

	default:
		return dispatchOutcome{}, &UnknownOpcodeError{Opcode: instr.Opcode}
	}

	return dispatchOutcome{}, nil
}

// runADC implements ADC; SBC dispatches here with its input
// bitwise-inverted, the standard 6502 equivalence.
func (c *Cpu) runADC(input byte) {
	a := c.Regs.A
	carryIn := uint16(0)
	if c.Regs.P.c() {
		carryIn = 1
	}
	sum := uint16(a) + uint16(input) + carryIn
	result := byte(sum)

	overflow := (a^result)&(input^result)&0x80 != 0

	c.Regs.A = result
	c.Regs.P = c.Regs.P.
		WithC(sum > 0xFF).
		WithV(overflow).
		WithNZ(result)
}

// runCompare implements CMP/CPX/CPY: r = reg - input; C = reg >= input;
// Z = reg == input; N from bit 7 of r.
func (c *Cpu) runCompare(reg, input byte) {
	r := reg - input
	c.Regs.P = c.Regs.P.
		WithC(reg >= input).
		WithZ(reg == input).
		WithN(mask.IsNegative(r))
}

// runBranch implements the eight conditional branches: if taken, PC jumps
// to the resolved target (+1 cycle), +1 more if the target crosses a page
// relative to pcNext.
func (c *Cpu) runBranch(taken bool, op Operation, in Input, pcNext uint16) (dispatchOutcome, error) {
	if !taken {
		return dispatchOutcome{}, nil
	}
	target, err := in.ExpectAddress(op, Relative)
	if err != nil {
		return dispatchOutcome{}, err
	}
	extra := uint64(1)
	if !samePage(target, pcNext) {
		extra++
	}
	return dispatchOutcome{pcOverridden: true, newPC: target, extraCycles: extra}, nil
}

// runBRK implements the software break: push pc_next+1 (so RTI resumes one
// byte past BRK's padding byte), push (p | B0 | B1), set I, jump to the IRQ
// vector. BRK always fires regardless of the I flag; I only masks the
// external hardware IRQ line.
func (c *Cpu) runBRK(pcNext uint16) (dispatchOutcome, error) {
	if err := c.pushU16(pcNext + 1); err != nil {
		return dispatchOutcome{}, err
	}
	p := c.Regs.P.WithB0(true).WithB1(true)
	if err := c.push(byte(p)); err != nil {
		return dispatchOutcome{}, err
	}
	c.Regs.P = c.Regs.P.WithI(true)

	target, err := c.Bus.ReadU16(vectorIRQ)
	if err != nil {
		return dispatchOutcome{}, err
	}
	return dispatchOutcome{pcOverridden: true, newPC: target}, nil
}

// runRTI implements return-from-interrupt: pop p, then pop PC with no +1
// adjustment (unlike RTS). The B0/B1 bits in the pushed byte describe the
// push, not the register: they are discarded on the way back in, so a
// BRK/RTI round trip restores P exactly.
func (c *Cpu) runRTI() (dispatchOutcome, error) {
	p, err := c.pull()
	if err != nil {
		return dispatchOutcome{}, err
	}
	c.Regs.P = StatusFlags(p).WithB0(false).WithB1(false)

	addr, err := c.pullU16()
	if err != nil {
		return dispatchOutcome{}, err
	}
	return dispatchOutcome{pcOverridden: true, newPC: addr}, nil
}
