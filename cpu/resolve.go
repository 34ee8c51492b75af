package cpu

import (
	"github.com/hejops/nescore/bus"
	"github.com/hejops/nescore/mask"
)

// resolved bundles an Input with whether resolving it crossed a page
// boundary, which decides the page-cross cycle penalty for read-style
// instructions.
type resolved struct {
	input       Input
	pageCrossed bool
}

// samePage reports whether two addresses share a high byte.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// resolveInput computes the Input for mode, given the instruction's operand
// bytes (everything after the opcode byte), the register snapshot, the
// already-advanced program counter (pcAfterFetch, which Relative mode
// offsets from), and the bus (needed by every indirect/indexed mode).
func resolveInput(b *bus.Bus, mode Mode, operand []byte, regs Registers, pcAfterFetch uint16) (resolved, error) {
	var op1, op2 byte
	if len(operand) > 0 {
		op1 = operand[0]
	}
	if len(operand) > 1 {
		op2 = operand[1]
	}

	switch mode {
	case Implied:
		return resolved{input: ImpliedInput()}, nil

	case Accumulator:
		return resolved{input: AccumulatorInput()}, nil

	case Immediate:
		return resolved{input: ByteInput(op1)}, nil

	case Relative:
		target := uint16(int32(pcAfterFetch) + int32(mask.SignExtend(op1)))
		return resolved{input: AddressInput(target)}, nil

	case ZeroPage:
		return resolved{input: AddressInput(uint16(op1))}, nil

	case ZeroPageX:
		return resolved{input: AddressInput(uint16(op1 + regs.X))}, nil

	case ZeroPageY:
		return resolved{input: AddressInput(uint16(op1 + regs.Y))}, nil

	case Absolute:
		return resolved{input: AddressInput(mask.Word(op1, op2))}, nil

	case AbsoluteX:
		base := mask.Word(op1, op2)
		eff := base + uint16(regs.X)
		return resolved{input: AddressInput(eff), pageCrossed: !samePage(base, eff)}, nil

	case AbsoluteY:
		base := mask.Word(op1, op2)
		eff := base + uint16(regs.Y)
		return resolved{input: AddressInput(eff), pageCrossed: !samePage(base, eff)}, nil

	case Indirect:
		ptr := mask.Word(op1, op2)
		eff, err := b.ReadU16Buggy(ptr)
		if err != nil {
			return resolved{}, err
		}
		return resolved{input: AddressInput(eff)}, nil

	case IndirectX:
		eff, err := b.ReadZPU16(op1 + regs.X)
		if err != nil {
			return resolved{}, err
		}
		return resolved{input: AddressInput(eff)}, nil

	case IndirectY:
		base, err := b.ReadZPU16(op1)
		if err != nil {
			return resolved{}, err
		}
		eff := base + uint16(regs.Y)
		return resolved{input: AddressInput(eff), pageCrossed: !samePage(base, eff)}, nil

	default:
		panic("cpu: unreachable addressing mode in resolveInput")
	}
}
