package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hejops/nescore/cpu"
	"github.com/hejops/nescore/cpu/trace"
)

// model is the bubbletea model driving the monitor: it steps a *cpu.Cpu
// through a trace.Recorder and renders registers, flags, a window of
// memory around PC, and the recent execution trace.
type model struct {
	c   *cpu.Cpu
	rec *trace.Recorder

	offset     uint16 // base address for the page table display
	prevPC     uint16
	breakpoint uint16 // 0 disables the run command
	dump       string
	err        error
}

// runStepCap bounds the run command so a program that never reaches the
// breakpoint cannot wedge the UI.
const runStepCap = 1_000_000

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.c.Regs.PC
			m.dump = ""
			if _, err := m.rec.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}

		case "r":
			if m.breakpoint == 0 {
				break
			}
			m.prevPC = m.c.Regs.PC
			m.dump = ""
			for i := 0; i < runStepCap && m.c.Regs.PC != m.breakpoint; i++ {
				if _, err := m.rec.Step(); err != nil {
					m.err = err
					return m, tea.Quit
				}
			}

		case "d":
			snap, err := m.c.Snapshot()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.dump = trace.DumpSnapshot(snap)
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte row of memory as a line,
// highlighting the byte at the current PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		b, err := m.c.Bus.Read(start + i)
		if err != nil {
			s += " ?? "
			continue
		}
		if start+i == m.c.Regs.PC {
			s += fmt.Sprintf("[%02X]", b)
		} else {
			s += fmt.Sprintf(" %02X ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf(" %01X  ", b)
	}
	lines := []string{header}
	base := m.offset &^ 0xF
	for i := 0; i < 8; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.c.Regs
	return fmt.Sprintf(`
PC: %04X (was %04X)
 A: %02X  X: %02X  Y: %02X  S: %02X
 P: %02X [%s]
cycles: %d @ %d Hz
`,
		r.PC, m.prevPC, r.A, r.X, r.Y, r.S, byte(r.P), r.P,
		m.c.Clock.Cycles, m.c.Clock.FrequencyHz())
}

func (m model) traceView() string {
	entries := m.rec.Ring.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %s\n", m.err)
	}
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		m.traceView(),
	)
	if m.dump != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, "", m.dump)
	}
	return body
}
