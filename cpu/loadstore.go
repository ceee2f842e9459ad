package cpu

import "z80core/isa"

// execLD8 implements LD8 (spec.md §4.1): copy Read8(src) into dst. No flags
// are touched.
func (c *CPU) execLD8(instr isa.Instruction) {
	c.Write8(instr.Dst8, c.Read8(instr.Src8))
}

// execLD16 is LD8's 16-bit counterpart.
func (c *CPU) execLD16(instr isa.Instruction) {
	c.Write16(instr.Dst16, c.Read16(instr.Src16))
}

// execPush implements PUSH rr: SP is decremented by two and src is stored
// at the new SP, high byte at the higher address, matching the teacher's
// pushWord. No flags are touched.
func (c *CPU) execPush(instr isa.Instruction) {
	v := c.Read16(instr.Src16)
	sp := c.Regs.GetSP() - 2
	c.Regs.SetSP(sp)
	c.Mem.WriteWord(sp, v)
}

// execPop implements POP rr: the word at SP is loaded into dst and SP is
// incremented by two, matching the teacher's popWord.
func (c *CPU) execPop(instr isa.Instruction) {
	sp := c.Regs.GetSP()
	v := c.Mem.ReadWord(sp)
	c.Regs.SetSP(sp + 2)
	c.Write16(instr.Dst16, v)
}
