// Command monitor is an interactive TUI front-end over the core CPU/bus
// emulation, for manual inspection: single-step, register/flag/memory
// display, and an execution trace. It is host-level orchestration, not
// part of the core engine itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hejops/nescore/bus"
	"github.com/hejops/nescore/bus/device"
	"github.com/hejops/nescore/cpu"
	"github.com/hejops/nescore/cpu/trace"
)

func main() {
	romPath := flag.String("rom", "", "path to a flat PRG-ROM image; empty starts from a blank RAM image")
	loadAddr := flag.Uint("addr", 0x8000, "address the ROM image is loaded/mirrored at; without -rom, the RESET vector written into the blank RAM image")
	region := flag.String("region", "ntsc", "clock region: ntsc, pal, or dendy")
	traceDepth := flag.Int("trace", 32, "number of retired instructions to keep in the trace ring")
	breakAt := flag.Uint("break", 0, "breakpoint address for the run command (r); 0 disables it")
	flag.Parse()

	b := bus.New()

	if *romPath != "" {
		data, err := os.ReadFile(*romPath)
		if err != nil {
			log.Fatalf("monitor: reading rom: %s", err)
		}
		rom := device.NewROM(data)
		b.Connect("prg-rom", uint16(*loadAddr), 0xFFFF, rom)
		if *loadAddr != 0 {
			b.Connect("ram", 0x0000, uint16(*loadAddr)-1, device.NewRAM(int(*loadAddr)))
		}
	} else {
		b.Connect("ram", 0x0000, 0xFFFF, device.NewRAM(0x10000))
		if err := b.WriteU16(0xFFFC, uint16(*loadAddr)); err != nil {
			log.Fatalf("monitor: writing reset vector: %s", err)
		}
	}

	c, err := cpu.New(b, parseRegion(*region))
	if err != nil {
		log.Fatalf("monitor: initializing cpu: %s", err)
	}

	m := model{
		c:          c,
		rec:        trace.NewRecorder(c, *traceDepth),
		offset:     c.Regs.PC,
		breakpoint: uint16(*breakAt),
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		log.Fatalf("monitor: %s", err)
	}
	if final, ok := result.(model); ok && final.err != nil {
		fmt.Println("stopped:", final.err)
	}
}

func parseRegion(s string) cpu.Region {
	switch s {
	case "pal":
		return cpu.PAL
	case "dendy":
		return cpu.Dendy
	default:
		return cpu.NTSC
	}
}
