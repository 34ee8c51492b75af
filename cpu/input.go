package cpu

// inputKind tags which variant an Input actually holds.
type inputKind int

const (
	inputImplied inputKind = iota
	inputByte
	inputAccumulator
	inputAddress
)

// Input is the resolved operand the addressing-mode resolver hands to an
// operation handler: a tagged sum of "nothing" (Implied), an immediate byte
// value, the accumulator as a read/write target, or a bus address as a
// read/write target. This replaces smuggling "either a byte or an address"
// through an untyped integer: a handler reads it through exactly one
// accessor (ExpectAddress, ExpectLocation, ExpectByte, or Cpu.value, which
// read-style operations use and which accepts an immediate byte, the
// accumulator, or an address), and a mismatch is a programmer error
// (InputShapeMismatchError), not a silent misinterpretation.
type Input struct {
	kind    inputKind
	byteVal byte
	addr    uint16
}

// ImpliedInput returns the Input for Implied-mode instructions, which
// consume no operand.
func ImpliedInput() Input { return Input{kind: inputImplied} }

// ByteInput returns the Input for Immediate mode: a literal operand byte.
func ByteInput(v byte) Input { return Input{kind: inputByte, byteVal: v} }

// AccumulatorInput returns the Input for Accumulator mode: the accumulator
// itself is the read/write target.
func AccumulatorInput() Input { return Input{kind: inputAccumulator} }

// AddressInput returns the Input for any memory-addressed mode: addr is the
// effective address to read from or write to.
func AddressInput(addr uint16) Input { return Input{kind: inputAddress, addr: addr} }

// ExpectByte returns the Input's byte value. It is valid only for Immediate
// mode's Input; any other kind is a decode fault.
func (in Input) ExpectByte(op Operation, mode Mode) (byte, error) {
	if in.kind != inputByte {
		return 0, &InputShapeMismatchError{Operation: op, Mode: mode, Want: "a byte"}
	}
	return in.byteVal, nil
}

// Location identifies where an operation should read from and write back
// to: either the accumulator register or a bus address.
type Location struct {
	isAccumulator bool
	addr          uint16
}

// IsAccumulator reports whether the location is the accumulator register.
func (l Location) IsAccumulator() bool { return l.isAccumulator }

// Address returns the bus address a non-accumulator location refers to.
func (l Location) Address() uint16 { return l.addr }

// ExpectLocation returns the Input as a Location (accumulator or address),
// for instructions (ASL/LSR/ROL/ROR, INC/DEC) that both read and write
// their target. Valid only for Accumulator or any memory-addressed mode.
func (in Input) ExpectLocation(op Operation, mode Mode) (Location, error) {
	switch in.kind {
	case inputAccumulator:
		return Location{isAccumulator: true}, nil
	case inputAddress:
		return Location{addr: in.addr}, nil
	default:
		return Location{}, &InputShapeMismatchError{Operation: op, Mode: mode, Want: "a location"}
	}
}

// ExpectAddress returns the Input's bus address. Valid only for
// memory-addressed modes (not Accumulator, Implied, or Immediate): used by
// pure-write instructions (STA/STX/STY) and control-flow instructions
// (JMP/JSR) that never touch the accumulator.
func (in Input) ExpectAddress(op Operation, mode Mode) (uint16, error) {
	if in.kind != inputAddress {
		return 0, &InputShapeMismatchError{Operation: op, Mode: mode, Want: "an address"}
	}
	return in.addr, nil
}
