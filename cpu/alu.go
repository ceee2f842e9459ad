package cpu

import "z80core/register"

// addTo computes dst + src + carryIn, writes it to dst, and sets all six
// flags. Carry-in and the sum are both computed in a widened integer so
// neither the half-carry nor the full carry has to be derived from a
// pre-incremented 8-bit operand — see spec.md §9, Open Questions 1 and 2.
func (c *CPU) addTo(dst byte, src byte, carryIn byte) byte {
	sum := uint16(dst) + uint16(src) + uint16(carryIn)
	result := byte(sum)

	c.Regs.SetFlag(register.FlagS, result&0x80 != 0)
	c.Regs.SetFlag(register.FlagZ, result == 0)
	c.Regs.SetFlag(register.FlagH, (dst&0x0F)+(src&0x0F)+carryIn > 0x0F)
	c.Regs.SetFlag(register.FlagPV, (dst^src)&0x80 == 0 && (dst^result)&0x80 != 0)
	c.Regs.SetFlag(register.FlagN, false)
	c.Regs.SetFlag(register.FlagC, sum > 0xFF)
	return result
}

// subFrom computes dst - src - borrowIn and sets all six flags, matching
// addTo's derivation but for subtraction.
func (c *CPU) subFrom(dst byte, src byte, borrowIn byte) byte {
	diff := int(dst) - int(src) - int(borrowIn)
	result := byte(diff)

	c.Regs.SetFlag(register.FlagS, result&0x80 != 0)
	c.Regs.SetFlag(register.FlagZ, result == 0)
	c.Regs.SetFlag(register.FlagH, int(dst&0x0F)-int(src&0x0F)-int(borrowIn) < 0)
	c.Regs.SetFlag(register.FlagPV, (dst^src)&0x80 != 0 && (dst^result)&0x80 != 0)
	c.Regs.SetFlag(register.FlagN, true)
	c.Regs.SetFlag(register.FlagC, diff < 0)
	return result
}

func carryBit(c *CPU) byte {
	if c.Regs.Flag(register.FlagC) {
		return 1
	}
	return 0
}

// and8, or8, xor8 implement AND/OR/XOR (spec.md §4.4.2). AND sets H=1; OR
// and XOR set H=0 — the real Z80 rule (spec.md §9, Open Question 3).
func (c *CPU) and8(a, b byte) byte {
	result := a & b
	c.Regs.SetFlag(register.FlagH, true)
	c.finishLogic(result)
	return result
}

func (c *CPU) or8(a, b byte) byte {
	result := a | b
	c.Regs.SetFlag(register.FlagH, false)
	c.finishLogic(result)
	return result
}

func (c *CPU) xor8(a, b byte) byte {
	result := a ^ b
	c.Regs.SetFlag(register.FlagH, false)
	c.finishLogic(result)
	return result
}

func (c *CPU) finishLogic(result byte) {
	c.setSZPFlags(result)
	c.Regs.SetFlag(register.FlagN, false)
	c.Regs.SetFlag(register.FlagC, false)
}

// neg8 implements NEG: A <- 0 - A (spec.md §4.4.1).
func (c *CPU) neg8(a byte) byte {
	result := byte(0 - int(a))
	c.Regs.SetFlag(register.FlagS, result&0x80 != 0)
	c.Regs.SetFlag(register.FlagZ, result == 0)
	c.Regs.SetFlag(register.FlagH, a&0x0F != 0)
	c.Regs.SetFlag(register.FlagPV, a == 0x80)
	c.Regs.SetFlag(register.FlagN, true)
	c.Regs.SetFlag(register.FlagC, a != 0)
	return result
}

// cpl8 implements CPL: A <- ~A, H=1, N=1, S/Z/P-V/C unchanged.
func (c *CPU) cpl8(a byte) byte {
	c.Regs.SetFlag(register.FlagH, true)
	c.Regs.SetFlag(register.FlagN, true)
	return ^a
}
