package cpu

import "github.com/hejops/nescore/mask"

// push writes v to the stack page at 0x0100+S, then decrements S (wrapping
// modulo 256).
func (c *Cpu) push(v byte) error {
	if err := c.Bus.Write(StackBase+uint16(c.Regs.S), v); err != nil {
		return err
	}
	c.Regs.S--
	return nil
}

// pull increments S (wrapping modulo 256), then reads the stack page at
// 0x0100+S.
func (c *Cpu) pull() (byte, error) {
	c.Regs.S++
	return c.Bus.Read(StackBase + uint16(c.Regs.S))
}

// pushU16 pushes v as two bytes, high byte first, so the low byte ends up
// at the lower stack address (matching hardware, and allowing pullU16 to
// read low-then-high).
func (c *Cpu) pushU16(v uint16) error {
	lo, hi := mask.Bytes(v)
	if err := c.push(hi); err != nil {
		return err
	}
	return c.push(lo)
}

// pullU16 pulls a 16-bit value, reading the low byte then the high byte.
func (c *Cpu) pullU16() (uint16, error) {
	lo, err := c.pull()
	if err != nil {
		return 0, err
	}
	hi, err := c.pull()
	if err != nil {
		return 0, err
	}
	return mask.Word(lo, hi), nil
}
