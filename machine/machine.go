// Package machine drives the fetch-decode-execute loop: it owns PC
// advancement, the boundary between decode.Reader and memory.Memory, and the
// recover() that turns the cpu package's fatal panics into a returned error.
package machine

import (
	"fmt"

	"z80core/cpu"
	"z80core/decode"
)

// memCursor adapts a *memory.Memory plus an advancing address into a
// decode.Reader. It is unexported: decode.Decode only ever sees the small
// interface it needs.
type memCursor struct {
	c    *cpu.CPU
	addr uint16
}

func (m *memCursor) ReadByte() byte {
	v := m.c.Mem.Read(m.addr)
	m.addr++
	return v
}

// ErrHalted is returned by Run when HALT stops the CPU normally.
var ErrHalted = fmt.Errorf("machine: halted")

// Run sets PC to startPC and executes instructions until HALT or a step
// budget of maxSteps is reached (0 means unbounded). A fatal condition
// raised by cpu.Exec — an unsupported opcode, a bad bit index, a write to an
// Immediate location, or an unmapped port — is recovered here and returned
// as an error instead of propagating as a panic, so embedding callers never
// need to recover from this package themselves.
func Run(c *cpu.CPU, startPC uint16, maxSteps int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("machine: fatal: %v", r)
		}
	}()

	c.Regs.SetPC(startPC)
	for steps := 0; maxSteps == 0 || steps < maxSteps; steps++ {
		cursor := &memCursor{c: c, addr: c.Regs.GetPC()}
		instr := decode.Decode(cursor)
		c.Regs.SetPC(cursor.addr)

		if next := c.Exec(instr); next != nil {
			c.Regs.SetPC(*next)
		}
		if c.Halted {
			return ErrHalted
		}
	}
	return nil
}
