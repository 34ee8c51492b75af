// Package bus implements the 16-bit address space a 6502-family CPU reads
// and writes through: a table of non-overlapping device ranges, dispatched
// on every access.
package bus

import (
	"fmt"

	"github.com/hejops/nescore/mask"
)

// A Device is a bus citizen: something that owns a window of the address
// space and answers reads/writes to it. The Bus passes the absolute
// address; a Device is responsible for folding it to its own local window
// if it needs to.
type Device interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// region binds a Device to the inclusive address range [start, end].
type region struct {
	start, end uint16
	name       string
	device     Device
}

func (r region) contains(addr uint16) bool {
	return addr >= r.start && addr <= r.end
}

// DeviceNotFoundError is returned when an address has no device mapped to
// it.
type DeviceNotFoundError struct {
	Addr uint16
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("bus: no device mapped at address $%04X", e.Addr)
}

// OutOfBoundsError is returned when a 16-bit access would straddle past
// 0xFFFF.
type OutOfBoundsError struct {
	Addr uint16
	Op   string
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("bus: %s at $%04X would exceed the top of the address space", e.Op, e.Addr)
}

// Bus is a 16-bit address space partitioned into device ranges. Ranges must
// not overlap; Connect panics if asked to install an overlapping range,
// since that can only be a wiring bug discovered at system-assembly time.
type Bus struct {
	regions []region
}

// New returns an empty Bus with no devices connected.
func New() *Bus {
	return &Bus{}
}

// Connect installs dev as the owner of the inclusive address range
// [start, end].
func (b *Bus) Connect(name string, start, end uint16, dev Device) {
	for _, r := range b.regions {
		if start <= r.end && end >= r.start {
			panic(fmt.Sprintf("bus: range [$%04X,$%04X] for %q overlaps existing range [$%04X,$%04X] for %q", start, end, name, r.start, r.end, r.name))
		}
	}
	b.regions = append(b.regions, region{start: start, end: end, name: name, device: dev})
}

func (b *Bus) find(addr uint16) (region, error) {
	for _, r := range b.regions {
		if r.contains(addr) {
			return r, nil
		}
	}
	return region{}, &DeviceNotFoundError{Addr: addr}
}

// Read dispatches a single-byte read to the device owning addr.
func (b *Bus) Read(addr uint16) (byte, error) {
	r, err := b.find(addr)
	if err != nil {
		return 0, err
	}
	return r.device.Read(addr), nil
}

// Write dispatches a single-byte write to the device owning addr.
func (b *Bus) Write(addr uint16, v byte) error {
	r, err := b.find(addr)
	if err != nil {
		return err
	}
	r.device.Write(addr, v)
	return nil
}

// ReadU16 returns the little-endian word at addr, addr+1.
func (b *Bus) ReadU16(addr uint16) (uint16, error) {
	if addr == 0xFFFF {
		return 0, &OutOfBoundsError{Addr: addr, Op: "16-bit read"}
	}
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return mask.Word(lo, hi), nil
}

// ReadU16Buggy returns the little-endian word at ptr, ptr+1, except that
// when the low byte of ptr is 0xFF, the high byte is read from the start of
// the same page (ptr & 0xFF00) rather than the next page. This reproduces
// the 6502's indirect-JMP page-boundary bug.
func (b *Bus) ReadU16Buggy(ptr uint16) (uint16, error) {
	lo, err := b.Read(ptr)
	if err != nil {
		return 0, err
	}
	hiAddr := ptr + 1
	if byte(ptr) == 0xFF {
		hiAddr = ptr & 0xFF00
	}
	hi, err := b.Read(hiAddr)
	if err != nil {
		return 0, err
	}
	return mask.Word(lo, hi), nil
}

// ReadN reads n consecutive bytes starting at addr. addr+n must not exceed
// the top of the address space.
func (b *Bus) ReadN(addr uint16, n int) ([]byte, error) {
	if int(addr)+n > 0x10000 {
		return nil, &OutOfBoundsError{Addr: addr, Op: fmt.Sprintf("%d-byte read", n)}
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := b.Read(addr + uint16(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteU16 writes v as a little-endian word at addr, addr+1.
func (b *Bus) WriteU16(addr uint16, v uint16) error {
	if addr == 0xFFFF {
		return &OutOfBoundsError{Addr: addr, Op: "16-bit write"}
	}
	lo, hi := mask.Bytes(v)
	if err := b.Write(addr, lo); err != nil {
		return err
	}
	return b.Write(addr+1, hi)
}

// ReadZP reads a single byte from zero-page address a8.
func (b *Bus) ReadZP(a8 byte) (byte, error) {
	return b.Read(uint16(a8))
}

// WriteZP writes a single byte to zero-page address a8.
func (b *Bus) WriteZP(a8 byte, v byte) error {
	return b.Write(uint16(a8), v)
}

// ReadZPU16 reads a little-endian word at a8, (a8+1) mod 256: the high byte
// wraps within page 0, reproducing the 6502's zero-page-indirect pointer
// wrap.
func (b *Bus) ReadZPU16(a8 byte) (uint16, error) {
	lo, err := b.ReadZP(a8)
	if err != nil {
		return 0, err
	}
	hi, err := b.ReadZP(a8 + 1) // wraps via byte overflow
	if err != nil {
		return 0, err
	}
	return mask.Word(lo, hi), nil
}

// WriteZPU16 writes a little-endian word at a8, (a8+1) mod 256, wrapping the
// high byte within page 0 the same way ReadZPU16 does.
func (b *Bus) WriteZPU16(a8 byte, v uint16) error {
	lo, hi := mask.Bytes(v)
	if err := b.WriteZP(a8, lo); err != nil {
		return err
	}
	return b.WriteZP(a8+1, hi)
}
