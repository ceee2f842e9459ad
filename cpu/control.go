package cpu

import (
	"z80core/isa"
	"z80core/register"
)

// evalCond decides whether a jump/call/return condition currently holds.
// Exec is always called with Regs.PC already advanced past the instruction
// being executed (the decoder consumes bytes as it reads them), so these
// helpers never need to know the instruction's own length.
func (c *CPU) evalCond(cond isa.Condition) bool {
	switch cond {
	case isa.Unconditional:
		return true
	case isa.Carry:
		return c.Regs.Flag(register.FlagC)
	case isa.NoCarry:
		return !c.Regs.Flag(register.FlagC)
	case isa.Zero:
		return c.Regs.Flag(register.FlagZ)
	case isa.NonZero:
		return !c.Regs.Flag(register.FlagZ)
	case isa.ParityEven:
		return c.Regs.Flag(register.FlagPV)
	case isa.ParityOdd:
		return !c.Regs.Flag(register.FlagPV)
	case isa.SignNegative:
		return c.Regs.Flag(register.FlagS)
	case isa.SignPositive:
		return !c.Regs.Flag(register.FlagS)
	}
	return false
}

// execJp implements JP cc,nn and JP (HL): no flags touched.
func (c *CPU) execJp(instr isa.Instruction) *uint16 {
	target := c.Read16(instr.Dst16)
	if !c.evalCond(instr.Cond) {
		return nil
	}
	return &target
}

// execJr implements JR cc,e: the target is PC (already past this
// instruction) plus the signed displacement.
func (c *CPU) execJr(instr isa.Instruction) *uint16 {
	if !c.evalCond(instr.Cond) {
		return nil
	}
	target := uint16(int32(c.Regs.GetPC()) + int32(instr.Offset))
	return &target
}

// execDjnz implements DJNZ e: B is decremented first, unconditionally; the
// jump is taken only when the decremented B is non-zero.
func (c *CPU) execDjnz(instr isa.Instruction) *uint16 {
	b := c.Regs.Get8(register.B) - 1
	c.Regs.Set8(register.B, b)
	if b == 0 {
		return nil
	}
	target := uint16(int32(c.Regs.GetPC()) + int32(instr.Offset))
	return &target
}

// execCall implements CALL cc,nn: the return address (PC, already past this
// instruction) is pushed only when the call is actually taken.
func (c *CPU) execCall(instr isa.Instruction) *uint16 {
	if !c.evalCond(instr.Cond) {
		return nil
	}
	sp := c.Regs.GetSP() - 2
	c.Regs.SetSP(sp)
	c.Mem.WriteWord(sp, c.Regs.GetPC())
	target := instr.Target
	return &target
}

// execRet implements RET cc: the stack is only popped when the return is
// actually taken.
func (c *CPU) execRet(instr isa.Instruction) *uint16 {
	if !c.evalCond(instr.Cond) {
		return nil
	}
	sp := c.Regs.GetSP()
	target := c.Mem.ReadWord(sp)
	c.Regs.SetSP(sp + 2)
	return &target
}
