// Package cpu implements the Z80 core: the operand resolver and the
// decoded-instruction executor, together with the precise per-instruction
// flag rules spec.md §4 describes. It is the "hard engineering" piece —
// everything else in this module exists to produce Instructions for it to
// run, or to drive it in a loop.
package cpu

import (
	"fmt"

	"z80core/isa"
	"z80core/memory"
	"z80core/ports"
	"z80core/register"
)

// CPU owns a register file, a memory, and a port table, and executes
// decoded instructions against them.
type CPU struct {
	Regs   *register.File
	Mem    *memory.Memory
	Ports  *ports.Table
	Halted bool
}

// New creates a CPU over the given memory and port table, with zeroed
// registers and SP initialized to the top of memory, per the documented
// lifecycle (spec.md §3). The memory's contents are left as they are.
func New(mem *memory.Memory, pt *ports.Table) *CPU {
	c := &CPU{Regs: &register.File{}, Mem: mem, Ports: pt}
	c.Regs.Reset(uint16(mem.Size()))
	return c
}

// ErrWriteToImmediate is panicked when code attempts to write an Immediate
// location — a decoder/programmer bug, not a recoverable runtime condition.
type ErrWriteToImmediate struct{}

func (ErrWriteToImmediate) Error() string {
	return "cpu: attempted to write an Immediate location"
}

// ErrUnsupportedInstruction is panicked for DAA and any opcode outside the
// supported inventory (spec.md §6.3).
type ErrUnsupportedInstruction struct {
	Kind isa.Kind
}

func (e ErrUnsupportedInstruction) Error() string {
	return fmt.Sprintf("cpu: unsupported instruction (kind %d)", e.Kind)
}

// ErrBadBitIndex is panicked when BIT/SET/RES is given an out-of-range bit.
type ErrBadBitIndex struct {
	Bit byte
}

func (e ErrBadBitIndex) Error() string {
	return fmt.Sprintf("cpu: bit index %d out of range [0,8)", e.Bit)
}

// Read8 resolves an 8-bit operand location to its current value.
func (c *CPU) Read8(loc isa.Location8) byte {
	switch loc.Kind {
	case isa.LocImmediate8Kind:
		return loc.Imm
	case isa.LocReg8Kind:
		return c.Regs.Get8(loc.Reg)
	case isa.LocRegIndirect8Kind:
		return c.Mem.Read(c.Regs.Get16(loc.Pair))
	case isa.LocImmediateIndirect8Kind:
		return c.Mem.Read(loc.Addr)
	}
	panic(fmt.Sprintf("cpu: unknown Location8 kind %d", loc.Kind))
}

// Write8 stores v at an 8-bit operand location. Writing an Immediate
// location panics.
func (c *CPU) Write8(loc isa.Location8, v byte) {
	switch loc.Kind {
	case isa.LocImmediate8Kind:
		panic(ErrWriteToImmediate{})
	case isa.LocReg8Kind:
		c.Regs.Set8(loc.Reg, v)
	case isa.LocRegIndirect8Kind:
		c.Mem.Write(c.Regs.Get16(loc.Pair), v)
	case isa.LocImmediateIndirect8Kind:
		c.Mem.Write(loc.Addr, v)
	default:
		panic(fmt.Sprintf("cpu: unknown Location8 kind %d", loc.Kind))
	}
}

// Read16 resolves a 16-bit operand location to its current value.
func (c *CPU) Read16(loc isa.Location16) uint16 {
	switch loc.Kind {
	case isa.LocImmediate16Kind:
		return loc.Imm
	case isa.LocReg16Kind:
		return c.Regs.Get16(loc.Reg)
	case isa.LocRegIndirect16Kind:
		return c.Mem.ReadWord(c.Regs.Get16(loc.Reg))
	case isa.LocImmediateIndirect16Kind:
		return c.Mem.ReadWord(loc.Addr)
	}
	panic(fmt.Sprintf("cpu: unknown Location16 kind %d", loc.Kind))
}

// Write16 stores v at a 16-bit operand location. Writing an Immediate
// location panics.
func (c *CPU) Write16(loc isa.Location16, v uint16) {
	switch loc.Kind {
	case isa.LocImmediate16Kind:
		panic(ErrWriteToImmediate{})
	case isa.LocReg16Kind:
		c.Regs.Set16(loc.Reg, v)
	case isa.LocRegIndirect16Kind:
		c.Mem.WriteWord(c.Regs.Get16(loc.Reg), v)
	case isa.LocImmediateIndirect16Kind:
		c.Mem.WriteWord(loc.Addr, v)
	default:
		panic(fmt.Sprintf("cpu: unknown Location16 kind %d", loc.Kind))
	}
}

func parity8(v byte) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// setSZPFlags sets S, Z and P/V (parity) from result, the way the rotate,
// shift and logic instructions finish up; it leaves H, N and C untouched so
// the caller can set those according to its own rule.
func (c *CPU) setSZPFlags(result byte) {
	c.Regs.SetFlag(register.FlagS, result&0x80 != 0)
	c.Regs.SetFlag(register.FlagZ, result == 0)
	c.Regs.SetFlag(register.FlagPV, parity8(result))
}
