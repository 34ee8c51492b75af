package cpu

import "github.com/hejops/nescore/mask"

// StatusFlags is the 6502 P register: a bitmask newtype over the eight
// named flags, rather than eight separate booleans. Field order, MSB to
// LSB, is N V B1 B0 D I Z C, which maps directly onto mask.I1..mask.I8.
type StatusFlags byte

// Bit positions of each flag within the status byte, 1-indexed MSB-first to
// match the mask package's convention.
const (
	posN  = mask.I1 // Negative
	posV  = mask.I2 // Overflow
	posB1 = mask.I3 // always published as 1 on push
	posB0 = mask.I4 // break source
	posD  = mask.I5 // Decimal (honored in storage only, never in ADC/SBC)
	posI  = mask.I6 // IRQ disable
	posZ  = mask.I7 // Zero
	posC  = mask.I8 // Carry
)

func (p StatusFlags) n() bool  { return mask.IsSet(byte(p), posN) }
func (p StatusFlags) v() bool  { return mask.IsSet(byte(p), posV) }
func (p StatusFlags) b1() bool { return mask.IsSet(byte(p), posB1) }
func (p StatusFlags) b0() bool { return mask.IsSet(byte(p), posB0) }
func (p StatusFlags) d() bool  { return mask.IsSet(byte(p), posD) }
func (p StatusFlags) i() bool  { return mask.IsSet(byte(p), posI) }
func (p StatusFlags) z() bool  { return mask.IsSet(byte(p), posZ) }
func (p StatusFlags) c() bool  { return mask.IsSet(byte(p), posC) }

// WithN returns p with the Negative flag set to v.
func (p StatusFlags) WithN(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posN, v)) }

// WithV returns p with the Overflow flag set to v.
func (p StatusFlags) WithV(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posV, v)) }

// WithB1 returns p with the B1 (always-1) flag set to v.
func (p StatusFlags) WithB1(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posB1, v)) }

// WithB0 returns p with the B0 (break source) flag set to v.
func (p StatusFlags) WithB0(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posB0, v)) }

// WithD returns p with the Decimal flag set to v.
func (p StatusFlags) WithD(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posD, v)) }

// WithI returns p with the Interrupt-disable flag set to v.
func (p StatusFlags) WithI(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posI, v)) }

// WithZ returns p with the Zero flag set to v.
func (p StatusFlags) WithZ(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posZ, v)) }

// WithC returns p with the Carry flag set to v.
func (p StatusFlags) WithC(v bool) StatusFlags { return StatusFlags(mask.PutBit(byte(p), posC, v)) }

// WithNZ returns p with N and Z set from result, per the convention used
// throughout the operation semantics: N from bit 7, Z from result == 0.
func (p StatusFlags) WithNZ(result byte) StatusFlags {
	return p.WithN(mask.IsNegative(result)).WithZ(result == 0)
}

// String renders the set flags in NV1BDIZC order, one letter per set
// flag, for traces and test failure output.
func (p StatusFlags) String() string {
	letters := []struct {
		set  bool
		name byte
	}{
		{p.n(), 'N'}, {p.v(), 'V'}, {p.b1(), '1'}, {p.b0(), 'B'},
		{p.d(), 'D'}, {p.i(), 'I'}, {p.z(), 'Z'}, {p.c(), 'C'},
	}
	out := make([]byte, 0, 8)
	for _, l := range letters {
		if l.set {
			out = append(out, l.name)
		}
	}
	return string(out)
}
