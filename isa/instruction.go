package isa

// Kind tags which Z80 operation an Instruction represents.
type Kind byte

const (
	LD8 Kind = iota
	LD16
	Push
	Pop

	Add8
	Adc
	Inc
	Sub8
	Sbc
	Dec
	Cp

	And
	Or
	Xor
	Cpl
	Neg
	Daa // unsupported: decodes, but cpu.Exec always rejects it (spec.md §6.3)

	Ccf
	Scf
	Nop
	Halt

	Rlca
	Rla
	Rrca
	Rra
	Rlc
	Rl
	Rrc
	Rr
	Sla
	Sra
	Srl

	Rld
	Rrd

	Bit
	Set
	Res

	In
	Out

	Jp
	Jr
	Djnz
	Call
	Ret

	// Unsupported marks any opcode outside the supported inventory
	// (spec.md §6.3): DAA is decodable but always rejected by cpu.Exec: see
	// the Daa Kind above. Everything else the decoder cannot represent
	// (EX/EXX, block instructions, IM/DI/EI, RETI/RETN, RST, IX/IY forms)
	// decodes to Unsupported instead of being silently misdecoded.
	Unsupported
)

// Condition is a Z80 jump/call/return condition code, evaluated against the
// current flags.
type Condition byte

const (
	Unconditional Condition = iota
	Carry
	NoCarry
	Zero
	NonZero
	ParityEven
	ParityOdd
	SignNegative
	SignPositive
)

// Instruction is a single decoded Z80 operation. It carries the superset of
// operand fields any Kind might need; only the fields relevant to Kind are
// meaningful, the same way original_source's Op enum carries a payload per
// variant. Build one with the constructor functions below rather than
// composing the struct literal directly.
type Instruction struct {
	Kind Kind

	Dst8 Location8
	Src8 Location8

	Dst16 Location16
	Src16 Location16

	Bit  byte
	Cond Condition

	Offset int8   // JR, DJNZ
	Target uint16 // CALL absolute address
}

func LD8Inst(dst, src Location8) Instruction   { return Instruction{Kind: LD8, Dst8: dst, Src8: src} }
func LD16Inst(dst, src Location16) Instruction { return Instruction{Kind: LD16, Dst16: dst, Src16: src} }
func PushInst(src Location16) Instruction      { return Instruction{Kind: Push, Src16: src} }
func PopInst(dst Location16) Instruction       { return Instruction{Kind: Pop, Dst16: dst} }

func Add8Inst(dst, src Location8) Instruction { return Instruction{Kind: Add8, Dst8: dst, Src8: src} }
func AdcInst(dst, src Location8) Instruction  { return Instruction{Kind: Adc, Dst8: dst, Src8: src} }
func IncInst(dst Location8) Instruction       { return Instruction{Kind: Inc, Dst8: dst} }
func Sub8Inst(dst, src Location8) Instruction { return Instruction{Kind: Sub8, Dst8: dst, Src8: src} }
func SbcInst(dst, src Location8) Instruction  { return Instruction{Kind: Sbc, Dst8: dst, Src8: src} }
func DecInst(dst Location8) Instruction       { return Instruction{Kind: Dec, Dst8: dst} }
func CpInst(src Location8) Instruction        { return Instruction{Kind: Cp, Src8: src} }

func AndInst(src Location8) Instruction { return Instruction{Kind: And, Src8: src} }
func OrInst(src Location8) Instruction  { return Instruction{Kind: Or, Src8: src} }
func XorInst(src Location8) Instruction { return Instruction{Kind: Xor, Src8: src} }
func CplInst() Instruction              { return Instruction{Kind: Cpl} }
func NegInst() Instruction              { return Instruction{Kind: Neg} }
func DaaInst() Instruction              { return Instruction{Kind: Daa} }

func CcfInst() Instruction  { return Instruction{Kind: Ccf} }
func ScfInst() Instruction  { return Instruction{Kind: Scf} }
func NopInst() Instruction  { return Instruction{Kind: Nop} }
func HaltInst() Instruction { return Instruction{Kind: Halt} }

func RlcaInst() Instruction { return Instruction{Kind: Rlca} }
func RlaInst() Instruction  { return Instruction{Kind: Rla} }
func RrcaInst() Instruction { return Instruction{Kind: Rrca} }
func RraInst() Instruction  { return Instruction{Kind: Rra} }

func RlcInst(loc Location8) Instruction { return Instruction{Kind: Rlc, Dst8: loc} }
func RlInst(loc Location8) Instruction  { return Instruction{Kind: Rl, Dst8: loc} }
func RrcInst(loc Location8) Instruction { return Instruction{Kind: Rrc, Dst8: loc} }
func RrInst(loc Location8) Instruction  { return Instruction{Kind: Rr, Dst8: loc} }
func SlaInst(loc Location8) Instruction { return Instruction{Kind: Sla, Dst8: loc} }
func SraInst(loc Location8) Instruction { return Instruction{Kind: Sra, Dst8: loc} }
func SrlInst(loc Location8) Instruction { return Instruction{Kind: Srl, Dst8: loc} }

func RldInst() Instruction { return Instruction{Kind: Rld} }
func RrdInst() Instruction { return Instruction{Kind: Rrd} }

func BitInst(bit byte, loc Location8) Instruction { return Instruction{Kind: Bit, Bit: bit, Dst8: loc} }
func SetInst(bit byte, loc Location8) Instruction { return Instruction{Kind: Set, Bit: bit, Dst8: loc} }
func ResInst(bit byte, loc Location8) Instruction { return Instruction{Kind: Res, Bit: bit, Dst8: loc} }

func InInst(dst, port Location8) Instruction  { return Instruction{Kind: In, Dst8: dst, Src8: port} }
func OutInst(src, port Location8) Instruction { return Instruction{Kind: Out, Dst8: port, Src8: src} }

func JpInst(cond Condition, addr Location16) Instruction {
	return Instruction{Kind: Jp, Cond: cond, Dst16: addr}
}
func JrInst(cond Condition, offset int8) Instruction {
	return Instruction{Kind: Jr, Cond: cond, Offset: offset}
}
func DjnzInst(offset int8) Instruction {
	return Instruction{Kind: Djnz, Offset: offset}
}
func CallInst(cond Condition, target uint16) Instruction {
	return Instruction{Kind: Call, Cond: cond, Target: target}
}
func RetInst(cond Condition) Instruction {
	return Instruction{Kind: Ret, Cond: cond}
}

func UnsupportedInst() Instruction { return Instruction{Kind: Unsupported} }
