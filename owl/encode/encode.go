// Package encode provides the field encoders for Owl-2820 instruction
// words, the inverse of package decode. Every function is pure and
// total: encoders accept a wider value than the field needs and mask
// it down to size.
package encode

import "github.com/owl2820/owlvm/owl"

// Opcode places the opcode tag in bits [6:0].
func Opcode(op owl.Opcode) uint32 {
	return uint32(op) & 0x7f
}

// R0 places a register index in bits [11:7].
func R0(r uint32) uint32 {
	return (r & 0x1f) << 7
}

// R1 places a register index in bits [16:12].
func R1(r uint32) uint32 {
	return (r & 0x1f) << 12
}

// R2 places a register index in bits [21:17].
func R2(r uint32) uint32 {
	return (r & 0x1f) << 17
}

// Shift places a 5-bit shift amount in bits [21:17], the same field
// R2 occupies.
func Shift(amount uint32) uint32 {
	return (amount & 0x1f) << 17
}

// Imm12 places a signed 12-bit immediate in bits [31:20].
func Imm12(imm int32) uint32 {
	return uint32(imm<<20) & 0xfff00000
}

// Offs12 places a signed, pre-multiplied-by-2 12-bit branch offset in
// bits [31:19]. The caller passes a byte offset; the low bit is lost.
func Offs12(offset int32) uint32 {
	return uint32(offset<<19) & 0xfff00000
}

// Offs20 places a signed, pre-multiplied-by-2 20-bit jump offset in
// bits [31:11]. The caller passes a byte offset; the low bit is lost.
func Offs20(offset int32) uint32 {
	return uint32(offset<<11) & 0xfffff000
}

// Uimm20 shifts imm's low 20 bits into their final register position,
// bits [31:12]. This is the one field where encode and decode are not
// exact inverses: decode.Uimm20 returns a word's top 20 bits already
// in position (matching what Lui/Auipc and the RV32I U-immediate both
// hand the visitor directly), while Uimm20 here takes the raw,
// unshifted 20-bit value the assembler's Hi helper produces for
// %hi()-style absolute addressing. Both conventions are as spec'd;
// callers that transcode a decoded uimm20 operand straight into the
// assembler's Lui/Auipc must pre-shift it back down by 12 first.
func Uimm20(imm uint32) uint32 {
	return (imm << 12) & 0xfffff000
}
