package cpu

import "fmt"

// Registers is the 6502 register file: accumulator, index registers, stack
// pointer, status flags and program counter.
type Registers struct {
	A, X, Y byte
	S       byte // stack pointer; logical top-of-stack address is 0x0100+S
	P       StatusFlags
	PC      uint16
}

// StackBase is the fixed base address of the stack page (0x0100-0x01FF);
// all pushes/pulls occur here.
const StackBase uint16 = 0x0100

// String renders the register file on one line for traces and test
// failure output.
func (r Registers) String() string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X S=%02X P=%02X[%s] PC=%04X",
		r.A, r.X, r.Y, r.S, byte(r.P), r.P, r.PC)
}
