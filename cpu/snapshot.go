package cpu

// Snapshot captures everything needed to restore a Cpu's observable state:
// the register file, the accumulated cycle count, and a flat 64 KiB view of
// the address space obtained by reading every address 0x0000-0xFFFF through
// the Bus. Used by tests to set up scenarios and assert on outcomes.
type Snapshot struct {
	Regs   Registers
	Cycles uint64
	Memory [0x10000]byte
}

// Snapshot captures the Cpu's current registers, cycle count, and a full
// memory image. It returns the bus error if any address has no device
// mapped to it. Reading every byte of the address space through the Bus is
// not how a real device behaves under concurrent access, but the Cpu owns
// the Bus exclusively so there is no observer to disturb.
func (c *Cpu) Snapshot() (Snapshot, error) {
	snap := Snapshot{Regs: c.Regs, Cycles: c.Clock.Cycles}
	mem, err := c.Bus.ReadN(0, 0xFFFF)
	if err != nil {
		return Snapshot{}, err
	}
	copy(snap.Memory[:0xFFFF], mem)
	last, err := c.Bus.Read(0xFFFF)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Memory[0xFFFF] = last
	return snap, nil
}

// Restore writes snap's register file, cycle count, and memory image back
// into c. It does not re-read the RESET vector; callers that want a fresh
// power-on state should call New or Reset instead.
func (c *Cpu) Restore(snap Snapshot) error {
	c.Regs = snap.Regs
	c.Clock.Cycles = snap.Cycles
	for addr, v := range snap.Memory {
		if err := c.Bus.Write(uint16(addr), v); err != nil {
			return err
		}
	}
	return nil
}
