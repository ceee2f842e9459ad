package cpu

import (
	"z80core/isa"
	"z80core/register"
)

// Exec runs one decoded instruction. Regs.PC must already point past the
// instruction's encoding (the decoder advances it as it consumes bytes);
// Exec only ever reports a *different* PC, for the control-flow kinds, and
// leaves PC alone (returns nil) otherwise — the driver loop in package
// machine is responsible for committing whichever PC results.
//
// Fatal conditions — an unsupported Kind, a write to an Immediate location,
// an out-of-range bit index, or an unmapped port — are reported by panicking
// rather than returning an error, matching the executor's own assertions in
// the instruction set this is grounded on. machine.Run recovers them at the
// fetch-decode-execute boundary.
func (c *CPU) Exec(instr isa.Instruction) *uint16 {
	switch instr.Kind {
	case isa.LD8:
		c.execLD8(instr)
	case isa.LD16:
		c.execLD16(instr)
	case isa.Push:
		c.execPush(instr)
	case isa.Pop:
		c.execPop(instr)

	case isa.Add8:
		c.Write8(instr.Dst8, c.addTo(c.Read8(instr.Dst8), c.Read8(instr.Src8), 0))
	case isa.Adc:
		c.Write8(instr.Dst8, c.addTo(c.Read8(instr.Dst8), c.Read8(instr.Src8), carryBit(c)))
	case isa.Inc:
		// INC preserves C (spec.md §4.4.1): save and restore it around addTo.
		saved := c.carryFlag()
		c.Write8(instr.Dst8, c.addTo(c.Read8(instr.Dst8), 1, 0))
		c.setCarryFlag(saved)
	case isa.Sub8:
		c.Write8(instr.Dst8, c.subFrom(c.Read8(instr.Dst8), c.Read8(instr.Src8), 0))
	case isa.Sbc:
		c.Write8(instr.Dst8, c.subFrom(c.Read8(instr.Dst8), c.Read8(instr.Src8), carryBit(c)))
	case isa.Dec:
		saved := c.carryFlag()
		c.Write8(instr.Dst8, c.subFrom(c.Read8(instr.Dst8), 1, 0))
		c.setCarryFlag(saved)
	case isa.Cp:
		c.subFrom(c.Read8(c.aLoc()), c.Read8(instr.Src8), 0)

	case isa.And:
		c.Write8(c.aLoc(), c.and8(c.Read8(c.aLoc()), c.Read8(instr.Src8)))
	case isa.Or:
		c.Write8(c.aLoc(), c.or8(c.Read8(c.aLoc()), c.Read8(instr.Src8)))
	case isa.Xor:
		c.Write8(c.aLoc(), c.xor8(c.Read8(c.aLoc()), c.Read8(instr.Src8)))
	case isa.Cpl:
		c.Write8(c.aLoc(), c.cpl8(c.Read8(c.aLoc())))
	case isa.Neg:
		c.Write8(c.aLoc(), c.neg8(c.Read8(c.aLoc())))

	case isa.Ccf:
		c.Regs.SetFlag(register.FlagH, c.carryFlag())
		c.setCarryFlag(!c.carryFlag())
		c.Regs.SetFlag(register.FlagN, false)
	case isa.Scf:
		c.Regs.SetFlag(register.FlagH, false)
		c.Regs.SetFlag(register.FlagN, false)
		c.setCarryFlag(true)
	case isa.Nop:
		// nothing to do
	case isa.Halt:
		c.Halted = true

	case isa.Rlca:
		v, carry := rotateLeftCircular(c.Read8(c.aLoc()))
		c.Write8(c.aLoc(), v)
		c.finishRotateAccumulator(carry)
	case isa.Rla:
		v, carry := rotateLeftThroughCarry(c.Read8(c.aLoc()), c.carryFlag())
		c.Write8(c.aLoc(), v)
		c.finishRotateAccumulator(carry)
	case isa.Rrca:
		v, carry := rotateRightCircular(c.Read8(c.aLoc()))
		c.Write8(c.aLoc(), v)
		c.finishRotateAccumulator(carry)
	case isa.Rra:
		v, carry := rotateRightThroughCarry(c.Read8(c.aLoc()), c.carryFlag())
		c.Write8(c.aLoc(), v)
		c.finishRotateAccumulator(carry)

	case isa.Rlc:
		v, carry := rotateLeftCircular(c.Read8(instr.Dst8))
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Rl:
		v, carry := rotateLeftThroughCarry(c.Read8(instr.Dst8), c.carryFlag())
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Rrc:
		v, carry := rotateRightCircular(c.Read8(instr.Dst8))
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Rr:
		v, carry := rotateRightThroughCarry(c.Read8(instr.Dst8), c.carryFlag())
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Sla:
		v, carry := shiftLeftArithmetic(c.Read8(instr.Dst8))
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Sra:
		v, carry := shiftRightArithmetic(c.Read8(instr.Dst8))
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)
	case isa.Srl:
		v, carry := shiftRightLogical(c.Read8(instr.Dst8))
		c.Write8(instr.Dst8, v)
		c.finishRotateGeneral(v, carry)

	case isa.Rld:
		hl := isa.RegIndirect8(c.hlPair())
		newA, newM := rld(c.Read8(c.aLoc()), c.Read8(hl))
		c.Write8(c.aLoc(), newA)
		c.Write8(hl, newM)
		c.setSZPFlags(newA)
		c.Regs.SetFlag(register.FlagH, false)
		c.Regs.SetFlag(register.FlagN, false)
	case isa.Rrd:
		hl := isa.RegIndirect8(c.hlPair())
		newA, newM := rrd(c.Read8(c.aLoc()), c.Read8(hl))
		c.Write8(c.aLoc(), newA)
		c.Write8(hl, newM)
		c.setSZPFlags(newA)
		c.Regs.SetFlag(register.FlagH, false)
		c.Regs.SetFlag(register.FlagN, false)

	case isa.Bit:
		c.testBit(instr.Bit, c.Read8(instr.Dst8))
	case isa.Set:
		c.Write8(instr.Dst8, setBit(instr.Bit, c.Read8(instr.Dst8)))
	case isa.Res:
		c.Write8(instr.Dst8, resBit(instr.Bit, c.Read8(instr.Dst8)))

	case isa.In:
		c.execIn(instr)
	case isa.Out:
		c.execOut(instr)

	case isa.Jp:
		return c.execJp(instr)
	case isa.Jr:
		return c.execJr(instr)
	case isa.Djnz:
		return c.execDjnz(instr)
	case isa.Call:
		return c.execCall(instr)
	case isa.Ret:
		return c.execRet(instr)

	default:
		panic(ErrUnsupportedInstruction{Kind: instr.Kind})
	}
	return nil
}
