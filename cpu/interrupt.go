package cpu

// serviceInterrupt enters a hardware-raised interrupt: push PC, push
// (p with B0 cleared, B1 set), set I, PC <- vector. BRK does not route
// through here; it pushes a different return PC and publishes B0 set
// (see runBRK in handlers.go).
func (c *Cpu) serviceInterrupt(vector uint16) error {
	if err := c.pushU16(c.Regs.PC); err != nil {
		return err
	}
	p := c.Regs.P.WithB0(false).WithB1(true)
	if err := c.push(byte(p)); err != nil {
		return err
	}
	c.Regs.P = c.Regs.P.WithI(true)

	target, err := c.Bus.ReadU16(vector)
	if err != nil {
		return err
	}
	c.Regs.PC = target
	c.Clock.Tick(7)
	return nil
}

// Reset re-initializes the Cpu as if the hardware RESET line had been
// pulled: registers return to their power-on state and PC is reloaded from
// the RESET vector. The Clock's cycle counter is left untouched, since
// reset is not itself a billable instruction in this model.
func (c *Cpu) Reset() error {
	resetVec, err := c.Bus.ReadU16(vectorReset)
	if err != nil {
		return err
	}
	c.Regs = Registers{S: 0xFF, P: StatusFlags(0).WithI(true), PC: resetVec}
	c.nmiPending = false
	c.irqLine = false
	return nil
}

// RunUntil calls Step repeatedly until predicate(c) holds or Step returns
// an error. It returns the first such error, or nil if predicate was
// satisfied.
func (c *Cpu) RunUntil(predicate func(*Cpu) bool) error {
	for !predicate(c) {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
