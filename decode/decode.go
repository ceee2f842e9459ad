// Package decode turns a stream of opcode bytes into isa.Instruction values.
// It mirrors the bit-pattern tables the teacher's disassembler
// (debug_disasm_z80.go: decodeZ80Base/decodeZ80CB/decodeZ80ED and the
// z80Reg8/z80Reg16/z80Cond/z80ALU lookup arrays) uses to print mnemonics,
// except it builds an isa.Instruction instead of a string. Anything outside
// the supported inventory decodes to isa.UnsupportedInst() (DAA to
// isa.DaaInst()); the executor rejects both at run time rather than the
// decoder silently guessing.
package decode

import (
	"z80core/isa"
	"z80core/register"
)

// reg8 maps a 3-bit register field to an operand location, matching z80Reg8.
// Index 6 is (HL), handled by callers since it needs a Location8 of a
// different Kind.
var reg8 = [8]register.R8{register.B, register.C, register.D, register.E, register.H, register.L, 0, register.A}

var reg16 = [4]register.R16{register.BC, register.DE, register.HL, register.SP}
var reg16Push = [4]register.R16{register.BC, register.DE, register.HL, register.AF}
var conditions = [8]isa.Condition{
	isa.NonZero, isa.Zero, isa.NoCarry, isa.Carry,
	isa.ParityOdd, isa.ParityEven, isa.SignPositive, isa.SignNegative,
}

// loc8 resolves a 3-bit register-field value to a Location8, special-casing
// index 6 as (HL).
func loc8(field byte) isa.Location8 {
	if field == 6 {
		return isa.RegIndirect8(register.HL)
	}
	return isa.Reg8(reg8[field])
}

// Reader is the minimal byte-stream interface the decoder needs: one byte at
// a time, with the stream's own notion of "current position" advancing as
// bytes are consumed. *memory.Memory does not implement this directly —
// callers drive decoding through a small cursor (see machine.Run) that reads
// from memory at an advancing address.
type Reader interface {
	ReadByte() byte
}

// Decode consumes one instruction's worth of bytes from r and returns the
// decoded Instruction. It never returns an error: opcodes it doesn't
// recognize decode to isa.UnsupportedInst(), which cpu.Exec rejects.
func Decode(r Reader) isa.Instruction {
	op := r.ReadByte()
	switch op {
	case 0xCB:
		return decodeCB(r)
	case 0xED:
		return decodeED(r)
	}
	return decodeBase(op, r)
}

func word(r Reader) uint16 {
	lo := r.ReadByte()
	hi := r.ReadByte()
	return uint16(hi)<<8 | uint16(lo)
}

func decodeBase(op byte, r Reader) isa.Instruction {
	if op == 0x00 {
		return isa.NopInst()
	}
	if op == 0x76 {
		return isa.HaltInst()
	}

	// LD r, r' (01dddsss), HALT already handled above.
	if op&0xC0 == 0x40 {
		return isa.LD8Inst(loc8((op>>3)&7), loc8(op&7))
	}

	// ALU A, r (10aaasss)
	if op&0xC0 == 0x80 {
		return aluInst((op>>3)&7, loc8(op&7))
	}

	switch op {
	case 0x01, 0x11, 0x21, 0x31:
		return isa.LD16Inst(isa.Reg16(reg16[(op>>4)&3]), isa.Imm16(word(r)))
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		return isa.LD8Inst(loc8((op>>3)&7), isa.Imm8(r.ReadByte()))
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		return aluInst((op>>3)&7, isa.Imm8(r.ReadByte()))
	case 0xC3:
		return isa.JpInst(isa.Unconditional, isa.Imm16(word(r)))
	case 0xCD:
		return isa.CallInst(isa.Unconditional, word(r))
	case 0xC9:
		return isa.RetInst(isa.Unconditional)
	case 0x18:
		return isa.JrInst(isa.Unconditional, int8(r.ReadByte()))
	case 0x20, 0x28, 0x30, 0x38:
		return isa.JrInst(conditions[(op>>3)&3], int8(r.ReadByte()))
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA:
		return isa.JpInst(conditions[(op>>3)&7], isa.Imm16(word(r)))
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC:
		return isa.CallInst(conditions[(op>>3)&7], word(r))
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8:
		return isa.RetInst(conditions[(op>>3)&7])
	case 0xC5, 0xD5, 0xE5, 0xF5:
		return isa.PushInst(isa.Reg16(reg16Push[(op>>4)&3]))
	case 0xC1, 0xD1, 0xE1, 0xF1:
		return isa.PopInst(isa.Reg16(reg16Push[(op>>4)&3]))
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		return isa.IncInst(loc8((op >> 3) & 7))
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		return isa.DecInst(loc8((op >> 3) & 7))
	case 0xE9:
		return isa.JpInst(isa.Unconditional, isa.Reg16(register.HL))
	case 0xDB:
		return isa.InInst(isa.Reg8(register.A), isa.Imm8(r.ReadByte()))
	case 0xD3:
		return isa.OutInst(isa.Reg8(register.A), isa.Imm8(r.ReadByte()))
	case 0x07:
		return isa.RlcaInst()
	case 0x0F:
		return isa.RrcaInst()
	case 0x17:
		return isa.RlaInst()
	case 0x1F:
		return isa.RraInst()
	case 0x2F:
		return isa.CplInst()
	case 0x37:
		return isa.ScfInst()
	case 0x3F:
		return isa.CcfInst()
	case 0x27:
		return isa.DaaInst() // decodable but always rejected by cpu.Exec
	case 0x10:
		return isa.DjnzInst(int8(r.ReadByte()))
	}
	return isa.UnsupportedInst()
}

func aluInst(op byte, src isa.Location8) isa.Instruction {
	a := isa.Reg8(register.A)
	switch op {
	case 0:
		return isa.Add8Inst(a, src)
	case 1:
		return isa.AdcInst(a, src)
	case 2:
		return isa.Sub8Inst(a, src)
	case 3:
		return isa.SbcInst(a, src)
	case 4:
		return isa.AndInst(src)
	case 5:
		return isa.XorInst(src)
	case 6:
		return isa.OrInst(src)
	case 7:
		return isa.CpInst(src)
	}
	return isa.UnsupportedInst()
}

func decodeCB(r Reader) isa.Instruction {
	op := r.ReadByte()
	loc := loc8(op & 7)
	bit := (op >> 3) & 7

	switch {
	case op < 0x40:
		switch (op >> 3) & 7 {
		case 0:
			return isa.RlcInst(loc)
		case 1:
			return isa.RrcInst(loc)
		case 2:
			return isa.RlInst(loc)
		case 3:
			return isa.RrInst(loc)
		case 4:
			return isa.SlaInst(loc)
		case 5:
			return isa.SraInst(loc)
		case 7:
			return isa.SrlInst(loc)
		default: // SLL (6) is an undocumented opcode, not in the supported inventory
			return isa.UnsupportedInst()
		}
	case op < 0x80:
		return isa.BitInst(bit, loc)
	case op < 0xC0:
		return isa.ResInst(bit, loc)
	default:
		return isa.SetInst(bit, loc)
	}
}

func decodeED(r Reader) isa.Instruction {
	op := r.ReadByte()
	switch op {
	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C:
		return isa.NegInst()
	case 0x67:
		return isa.RrdInst()
	case 0x6F:
		return isa.RldInst()
	case 0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x78:
		return isa.InInst(isa.Reg8(reg8[(op>>3)&7]), isa.Reg8(register.C))
	case 0x41, 0x49, 0x51, 0x59, 0x61, 0x69, 0x79:
		return isa.OutInst(isa.Reg8(reg8[(op>>3)&7]), isa.Reg8(register.C))
	}
	return isa.UnsupportedInst()
}
