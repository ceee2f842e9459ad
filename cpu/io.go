package cpu

import "z80core/isa"

// execIn implements IN r,(port): the port table decides what byte comes
// back (spec.md §5); no flags are touched, for IN A,(n) and IN r,(C) alike.
func (c *CPU) execIn(instr isa.Instruction) {
	port := c.Read8(instr.Src8)
	c.Write8(instr.Dst8, c.Ports.In(port))
}

// execOut implements OUT (port),r.
func (c *CPU) execOut(instr isa.Instruction) {
	port := c.Read8(instr.Dst8)
	c.Ports.Out(port, c.Read8(instr.Src8))
}
