// Package decode provides the field decoders for Owl-2820 instruction
// words, the inverse of package encode. Every function is pure, total,
// and sign-extends where the field is signed.
package decode

// R0 extracts the register index in bits [11:7].
func R0(ins uint32) uint32 {
	return (ins >> 7) & 0x1f
}

// R1 extracts the register index in bits [16:12].
func R1(ins uint32) uint32 {
	return (ins >> 12) & 0x1f
}

// R2 extracts the register index in bits [21:17].
func R2(ins uint32) uint32 {
	return (ins >> 17) & 0x1f
}

// Shift extracts the 5-bit shift amount, the same field R2 occupies.
func Shift(ins uint32) uint32 {
	return (ins >> 17) & 0x1f
}

// Imm12 extracts the top 12 bits as a sign-extended 12-bit immediate.
func Imm12(ins uint32) int32 {
	return int32(ins&0xfff00000) >> 20
}

// Offs12 extracts the top 12 bits as a sign-extended branch offset,
// shifted left by 1 so it is always even.
func Offs12(ins uint32) int32 {
	return int32(ins&0xfff00000) >> 19
}

// Offs20 extracts the top 20 bits as a sign-extended jump offset,
// shifted left by 1 so it is always even.
func Offs20(ins uint32) int32 {
	return int32(ins&0xfffff000) >> 11
}

// Uimm20 extracts the top 20 bits, already in their final register
// position.
func Uimm20(ins uint32) uint32 {
	return ins & 0xfffff000
}
