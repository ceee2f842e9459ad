package cpu

import (
	"z80core/isa"
	"z80core/register"
)

// aLoc, hlPair are small conveniences for the instructions (CPL, logic ops,
// RLD/RRD, ...) that always operate on A or (HL) rather than a
// decoder-supplied location.
func (c *CPU) aLoc() isa.Location8   { return isa.Reg8(register.A) }
func (c *CPU) hlPair() register.R16  { return register.HL }
func (c *CPU) carryFlag() bool       { return c.Regs.Flag(register.FlagC) }
func (c *CPU) setCarryFlag(on bool)  { c.Regs.SetFlag(register.FlagC, on) }
