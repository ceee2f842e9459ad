package cpu

import (
	"testing"

	"z80core/isa"
	"z80core/memory"
	"z80core/ports"
	"z80core/register"
)

func newTestCPU() *CPU {
	return New(memory.New(1024), &ports.Table{})
}

func requireEqualU8(t *testing.T, what string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", what, got, want)
	}
}

func requireFlag(t *testing.T, c *CPU, what string, mask byte, want bool) {
	t.Helper()
	if got := c.Regs.Flag(mask); got != want {
		t.Fatalf("flag %s = %v, want %v", what, got, want)
	}
}

func TestAddHalfCarry(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x0F)
	instr := isa.Add8Inst(isa.Reg8(register.A), isa.Imm8(0x01))
	c.Exec(instr)
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x10)
	requireFlag(t, c, "H", register.FlagH, true)
	requireFlag(t, c, "C", register.FlagC, false)
}

func TestAddCarryUsesWidenedSum(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0xFF)
	c.Exec(isa.Add8Inst(isa.Reg8(register.A), isa.Imm8(0x01)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x00)
	requireFlag(t, c, "Z", register.FlagZ, true)
	requireFlag(t, c, "C", register.FlagC, true)
}

func TestAdcAddsCarryIn(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x00)
	c.Regs.SetFlag(register.FlagC, true)
	c.Exec(isa.AdcInst(isa.Reg8(register.A), isa.Imm8(0x00)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x01)
	requireFlag(t, c, "C", register.FlagC, false)
}

func TestSubBorrow(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x00)
	c.Exec(isa.Sub8Inst(isa.Reg8(register.A), isa.Imm8(0x01)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0xFF)
	requireFlag(t, c, "C", register.FlagC, true)
	requireFlag(t, c, "S", register.FlagS, true)
}

func TestIncPreservesCarry(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.B, 0xFF)
	c.Regs.SetFlag(register.FlagC, true)
	c.Exec(isa.IncInst(isa.Reg8(register.B)))
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0x00)
	requireFlag(t, c, "Z", register.FlagZ, true)
	requireFlag(t, c, "C", register.FlagC, true) // INC never touches C
}

func TestDecPreservesCarry(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.B, 0x00)
	c.Regs.SetFlag(register.FlagC, false)
	c.Exec(isa.DecInst(isa.Reg8(register.B)))
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0xFF)
	requireFlag(t, c, "C", register.FlagC, false)
}

func TestCpDoesNotWriteA(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x10)
	c.Exec(isa.CpInst(isa.Imm8(0x10)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x10)
	requireFlag(t, c, "Z", register.FlagZ, true)
}

func TestAndSetsHalfCarry(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0xFF)
	c.Regs.SetFlag(register.FlagC, true)
	c.Exec(isa.AndInst(isa.Imm8(0x0F)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x0F)
	requireFlag(t, c, "H", register.FlagH, true)
	requireFlag(t, c, "C", register.FlagC, false)
}

func TestOrXorClearHalfCarry(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x0F)
	c.Exec(isa.OrInst(isa.Imm8(0xF0)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0xFF)
	requireFlag(t, c, "H", register.FlagH, false)

	c.Regs.Set8(register.A, 0xFF)
	c.Exec(isa.XorInst(isa.Imm8(0xFF)))
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x00)
	requireFlag(t, c, "H", register.FlagH, false)
	requireFlag(t, c, "Z", register.FlagZ, true)
}

func TestNegOfZeroOneBehavior(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x00)
	c.Exec(isa.NegInst())
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x00)
	requireFlag(t, c, "C", register.FlagC, false)
	requireFlag(t, c, "Z", register.FlagZ, true)
}

func TestNegOfEightyIsItsOwnOverflow(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x80)
	c.Exec(isa.NegInst())
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x80)
	requireFlag(t, c, "PV", register.FlagPV, true)
	requireFlag(t, c, "C", register.FlagC, true)
}

func TestCplPreservesSZPVC(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x3C)
	c.Regs.SetFlag(register.FlagS, true)
	c.Regs.SetFlag(register.FlagZ, false)
	c.Regs.SetFlag(register.FlagPV, true)
	c.Regs.SetFlag(register.FlagC, true)
	c.Exec(isa.CplInst())
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0xC3)
	requireFlag(t, c, "S", register.FlagS, true)
	requireFlag(t, c, "Z", register.FlagZ, false)
	requireFlag(t, c, "PV", register.FlagPV, true)
	requireFlag(t, c, "C", register.FlagC, true)
	requireFlag(t, c, "H", register.FlagH, true)
	requireFlag(t, c, "N", register.FlagN, true)
}

func TestRlcCircularAndSymmetricWithRrc(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.B, 0x81)
	c.Exec(isa.RlcInst(isa.Reg8(register.B)))
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0x03)
	requireFlag(t, c, "C", register.FlagC, true)

	c.Exec(isa.RrcInst(isa.Reg8(register.B)))
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0x81)
	requireFlag(t, c, "C", register.FlagC, true)
}

func TestRlcaLeavesSZPVUntouched(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.A, 0x80)
	c.Regs.SetFlag(register.FlagZ, true)
	c.Regs.SetFlag(register.FlagS, true)
	c.Exec(isa.RlcaInst())
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x01)
	requireFlag(t, c, "Z", register.FlagZ, true) // untouched by the accumulator form
	requireFlag(t, c, "S", register.FlagS, true)
	requireFlag(t, c, "C", register.FlagC, true)
}

func TestBitTestSetsZOnClearBit(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.B, 0x00)
	c.Exec(isa.BitInst(3, isa.Reg8(register.B)))
	requireFlag(t, c, "Z", register.FlagZ, true)
	requireFlag(t, c, "H", register.FlagH, true)
}

func TestBitIndexOutOfRangePanics(t *testing.T) {
	c := newTestCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for bit index 8")
		}
	}()
	c.Exec(isa.BitInst(8, isa.Reg8(register.B)))
}

func TestSetResToggleExactBit(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.C, 0x00)
	c.Exec(isa.SetInst(5, isa.Reg8(register.C)))
	requireEqualU8(t, "C", c.Regs.Get8(register.C), 0x20)

	c.Exec(isa.ResInst(5, isa.Reg8(register.C)))
	requireEqualU8(t, "C", c.Regs.Get8(register.C), 0x00)
}

func TestPushPopRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Regs.SetSP(uint16(c.Mem.Size()))
	c.Regs.Set16(register.BC, 0x1234)
	c.Exec(isa.PushInst(isa.Reg16(register.BC)))
	c.Regs.Set16(register.DE, 0x0000)
	c.Exec(isa.PopInst(isa.Reg16(register.DE)))
	if got := c.Regs.Get16(register.DE); got != 0x1234 {
		t.Fatalf("DE = 0x%04X, want 0x1234", got)
	}
}

func TestCallThenRetReturnsToCaller(t *testing.T) {
	c := newTestCPU()
	c.Regs.SetSP(uint16(c.Mem.Size()))
	c.Regs.SetPC(0x0100)
	next := c.Exec(isa.CallInst(isa.Unconditional, 0x0200))
	if next == nil || *next != 0x0200 {
		t.Fatalf("CALL target = %v, want 0x0200", next)
	}
	c.Regs.SetPC(0x0200)
	back := c.Exec(isa.RetInst(isa.Unconditional))
	if back == nil || *back != 0x0100 {
		t.Fatalf("RET target = %v, want 0x0100", back)
	}
}

func TestDjnzLoopsUntilBZero(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set8(register.B, 0x02)
	c.Regs.SetPC(0x0010)
	if next := c.Exec(isa.DjnzInst(-2)); next == nil {
		t.Fatal("DJNZ with B=1 after decrement should jump")
	}
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0x01)

	c.Regs.SetPC(0x0010)
	if next := c.Exec(isa.DjnzInst(-2)); next != nil {
		t.Fatal("DJNZ with B=0 after decrement should fall through")
	}
	requireEqualU8(t, "B", c.Regs.Get8(register.B), 0x00)
}

func TestRldRotatesNibblesThroughMemory(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set16(register.HL, 0x0100)
	c.Regs.Set8(register.A, 0x7A)
	c.Mem.Write(0x0100, 0x31)
	c.Exec(isa.RldInst())
	requireEqualU8(t, "A", c.Regs.Get8(register.A), 0x73)
	requireEqualU8(t, "(HL)", c.Mem.Read(0x0100), 0x1A)
}

func TestWriteToImmediatePanics(t *testing.T) {
	c := newTestCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing an Immediate location")
		}
	}()
	c.Write8(isa.Imm8(0x00), 0x01)
}

func TestUnmappedPortPanics(t *testing.T) {
	c := newTestCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading an unmapped port")
		}
	}()
	c.Exec(isa.InInst(isa.Reg8(register.A), isa.Imm8(0x99)))
}

func TestHaltSetsHaltedFlag(t *testing.T) {
	c := newTestCPU()
	c.Exec(isa.HaltInst())
	if !c.Halted {
		t.Fatal("HALT should set Halted")
	}
}

func TestCcfTogglesCarryAndCopiesItToH(t *testing.T) {
	c := newTestCPU()
	c.Regs.SetFlag(register.FlagC, true)
	c.Exec(isa.CcfInst())
	requireFlag(t, c, "C", register.FlagC, false)
	requireFlag(t, c, "H", register.FlagH, true)
	requireFlag(t, c, "N", register.FlagN, false)
}

func TestScfSetsCarryClearsHN(t *testing.T) {
	c := newTestCPU()
	c.Exec(isa.ScfInst())
	requireFlag(t, c, "C", register.FlagC, true)
	requireFlag(t, c, "H", register.FlagH, false)
	requireFlag(t, c, "N", register.FlagN, false)
}

func TestDaaAndUnsupportedPanic(t *testing.T) {
	for _, instr := range []isa.Instruction{isa.DaaInst(), isa.UnsupportedInst()} {
		func() {
			c := newTestCPU()
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for kind %v", instr.Kind)
				}
			}()
			c.Exec(instr)
		}()
	}
}
