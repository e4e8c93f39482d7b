package rv32i

import "github.com/owl2820/owlvm/owl"

// Dispatch decodes ins as an RV32I instruction word and invokes the
// matching owl.Visitor method with the decoded operands, letting any
// Owl-2820 backend also execute, assemble, or disassemble RV32I code.
//
// RV32I encodes the opcode across a variable-width field depending on
// the instruction family, so unlike owl.Dispatch this runs a cascade
// of masks from most to least specific: a full-word match for the
// zero-operand system calls, then progressively coarser masks for
// reg-reg arithmetic, branches/loads/stores/reg-imm arithmetic, and
// finally the three purely opcode-tagged formats (jal/lui/auipc). The
// first matching tier wins; a word matching nothing is Illegal.
//
// A handful of RV32I operand orders don't match Owl-2820's. Loads and
// jalr place the base register last in RV32I encoding order but
// Owl-2820's Visitor methods expect (dest, offset, base); stores
// place the value register first in RV32I but Owl-2820 expects
// (source, offset, base) with the value before the base too — the
// call sites below reorder accordingly.
func Dispatch(v owl.Visitor, ins uint32) {
	rv := NewDecoder(ins)

	switch ins {
	case 0x00000073:
		v.Ecall()
		return
	case 0x00100073:
		v.Ebreak()
		return
	}

	switch ins & 0xfe00707f {
	case 0x00000033:
		v.Add(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x40000033:
		v.Sub(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00001033:
		v.Sll(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00002033:
		v.Slt(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00003033:
		v.Sltu(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00004033:
		v.Xor(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00005033:
		v.Srl(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x40005033:
		v.Sra(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00006033:
		v.Or(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00007033:
		v.And(rv.Rd(), rv.Rs1(), rv.Rs2())
		return
	case 0x00001013:
		v.Slli(rv.Rd(), rv.Rs1(), rv.Shamtw())
		return
	case 0x00005013:
		v.Srli(rv.Rd(), rv.Rs1(), rv.Shamtw())
		return
	case 0x40005013:
		v.Srai(rv.Rd(), rv.Rs1(), rv.Shamtw())
		return
	}

	switch ins & 0x0000707f {
	case 0x00000063:
		v.Beq(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00001063:
		v.Bne(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00004063:
		v.Blt(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00005063:
		v.Bge(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00006063:
		v.Bltu(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00007063:
		v.Bgeu(rv.Rs1(), rv.Rs2(), rv.Bimmediate())
		return
	case 0x00000067:
		v.Jalr(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00000013:
		v.Addi(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00002013:
		v.Slti(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00003013:
		v.Sltiu(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00004013:
		v.Xori(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00006013:
		v.Ori(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00007013:
		v.Andi(rv.Rd(), rv.Rs1(), rv.Iimmediate())
		return
	case 0x00000003:
		v.Lb(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00001003:
		v.Lh(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00002003:
		v.Lw(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00004003:
		v.Lbu(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00005003:
		v.Lhu(rv.Rd(), rv.Iimmediate(), rv.Rs1())
		return
	case 0x00000023:
		v.Sb(rv.Rs2(), rv.Simmediate(), rv.Rs1())
		return
	case 0x00001023:
		v.Sh(rv.Rs2(), rv.Simmediate(), rv.Rs1())
		return
	case 0x00002023:
		v.Sw(rv.Rs2(), rv.Simmediate(), rv.Rs1())
		return
	case 0x0000000f:
		v.Fence()
		return
	}

	switch ins & 0x0000007f {
	case 0x0000006f:
		v.Jal(rv.Rd(), rv.Jimmediate())
		return
	case 0x00000037:
		v.Lui(rv.Rd(), rv.Uimmediate())
		return
	case 0x00000017:
		v.Auipc(rv.Rd(), rv.Uimmediate())
		return
	}

	v.Illegal(ins)
}
