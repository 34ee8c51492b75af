package cpu

// Region selects the nominal clock frequency a Clock reports. It has no
// effect on instruction semantics; it exists purely so a host can
// report/display the emulated frequency.
type Region int

const (
	NTSC Region = iota
	PAL
	Dendy
)

// frequencyHz returns the 2A03 core clock rate for the region.
func (r Region) frequencyHz() uint32 {
	switch r {
	case PAL:
		return 1_662_607
	case Dendy:
		return 1_773_448
	default:
		return 1_789_773
	}
}

// Clock is a monotonic cycle accumulator. Cpu.Step ticks it by an
// instruction's base cost plus any mode/branch/page-cross penalties.
type Clock struct {
	Region Region
	Cycles uint64
}

// NewClock returns a Clock for the given region, with its cycle counter at
// zero.
func NewClock(region Region) *Clock {
	return &Clock{Region: region}
}

// Tick advances the cycle counter by n cycles.
func (c *Clock) Tick(n uint64) {
	c.Cycles += n
}

// FrequencyHz reports the clock's nominal frequency in Hz, for display
// purposes only.
func (c *Clock) FrequencyHz() uint32 {
	return c.Region.frequencyHz()
}
