// Package rv32i decodes and dispatches RISC-V RV32I instruction
// words onto an owl.Visitor, letting the same executor, assembler,
// and disassembler backends that serve Owl-2820 also serve RV32I
// guest code.
package rv32i

// Decoder extracts the RV32I instruction fields from a single 32-bit
// word. Each accessor reads straight from the raw word; nothing is
// cached beyond the word itself.
type Decoder struct {
	ins uint32
}

// NewDecoder wraps ins for field extraction.
func NewDecoder(ins uint32) Decoder {
	return Decoder{ins: ins}
}

// Rd returns the destination register field, bits [11:7].
func (d Decoder) Rd() uint32 {
	return (d.ins >> 7) & 0x1f
}

// Rs1 returns the first source register field, bits [19:15].
func (d Decoder) Rs1() uint32 {
	return (d.ins >> 15) & 0x1f
}

// Rs2 returns the second source register field, bits [24:20].
func (d Decoder) Rs2() uint32 {
	return (d.ins >> 20) & 0x1f
}

// Shamtw returns the shift-amount field for word shifts, bits [24:20].
func (d Decoder) Shamtw() uint32 {
	return (d.ins >> 20) & 0x1f
}

// Bimmediate decodes a B-type (branch) immediate: sign-extended,
// scrambled across ins[31], ins[7], ins[30:25], ins[11:8].
func (d Decoder) Bimmediate() int32 {
	imm12 := int32(d.ins&0x80000000) >> 19
	imm11 := int32((d.ins & 0x00000080) << 4)
	imm10_5 := int32((d.ins & 0x7e000000) >> 20)
	imm4_1 := int32((d.ins & 0x00000f00) >> 7)
	return imm12 | imm11 | imm10_5 | imm4_1
}

// Iimmediate decodes an I-type immediate: sign-extended ins[31:20].
func (d Decoder) Iimmediate() int32 {
	return int32(d.ins) >> 20
}

// Simmediate decodes an S-type (store) immediate: sign-extended,
// split across ins[31:25] and ins[11:7].
func (d Decoder) Simmediate() int32 {
	imm11_5 := int32(d.ins&0xfe000000) >> 20
	imm4_0 := int32((d.ins & 0x00000f80) >> 7)
	return imm11_5 | imm4_0
}

// Jimmediate decodes a J-type (jal) immediate: sign-extended,
// scrambled across ins[31], ins[19:12], ins[20], ins[30:21].
func (d Decoder) Jimmediate() int32 {
	imm20 := int32(d.ins&0x80000000) >> 11
	imm19_12 := int32(d.ins & 0x000ff000)
	imm11 := int32((d.ins & 0x00100000) >> 9)
	imm10_1 := int32((d.ins & 0x7fe00000) >> 20)
	return imm20 | imm19_12 | imm11 | imm10_1
}

// Uimmediate decodes a U-type immediate: the raw top 20 bits,
// pre-shifted, ins[31:12].
func (d Decoder) Uimmediate() uint32 {
	return d.ins & 0xfffff000
}
