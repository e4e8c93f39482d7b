package owl

import "github.com/owl2820/owlvm/owl/decode"

// Dispatch decodes ins as an Owl-2820 instruction word and invokes the
// matching Visitor method with the decoded operands. Dispatch never
// inspects what the Visitor method returns or does; it is the single
// chokepoint that retargets one pass over Owl-2820 code to any
// backend that implements Visitor.
func Dispatch(v Visitor, ins uint32) {
	switch FromWord(ins) {
	case Ecall:
		v.Ecall()
	case Ebreak:
		v.Ebreak()
	case Add:
		v.Add(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Sub:
		v.Sub(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Sll:
		v.Sll(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Slt:
		v.Slt(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Sltu:
		v.Sltu(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Xor:
		v.Xor(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Srl:
		v.Srl(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Sra:
		v.Sra(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Or:
		v.Or(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case And:
		v.And(decode.R0(ins), decode.R1(ins), decode.R2(ins))
	case Slli:
		v.Slli(decode.R0(ins), decode.R1(ins), decode.Shift(ins))
	case Srli:
		v.Srli(decode.R0(ins), decode.R1(ins), decode.Shift(ins))
	case Srai:
		v.Srai(decode.R0(ins), decode.R1(ins), decode.Shift(ins))
	case Beq:
		v.Beq(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Bne:
		v.Bne(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Blt:
		v.Blt(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Bge:
		v.Bge(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Bltu:
		v.Bltu(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Bgeu:
		v.Bgeu(decode.R0(ins), decode.R1(ins), decode.Offs12(ins))
	case Addi:
		v.Addi(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Slti:
		v.Slti(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Sltiu:
		v.Sltiu(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Xori:
		v.Xori(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Ori:
		v.Ori(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Andi:
		v.Andi(decode.R0(ins), decode.R1(ins), decode.Imm12(ins))
	case Lb:
		v.Lb(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Lbu:
		v.Lbu(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Lh:
		v.Lh(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Lhu:
		v.Lhu(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Lw:
		v.Lw(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Sb:
		v.Sb(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Sh:
		v.Sh(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Sw:
		v.Sw(decode.R0(ins), decode.Imm12(ins), decode.R1(ins))
	case Fence:
		v.Fence()
	case Jalr:
		v.Jalr(decode.R0(ins), decode.Offs12(ins), decode.R1(ins))
	case Jal:
		v.Jal(decode.R0(ins), decode.Offs20(ins))
	case Lui:
		v.Lui(decode.R0(ins), decode.Uimm20(ins))
	case Auipc:
		v.Auipc(decode.R0(ins), decode.Uimm20(ins))
	case J:
		v.J(decode.Offs20(ins))
	case Call:
		v.Call(decode.Offs20(ins))
	case Ret:
		v.Ret()
	case Li:
		v.Li(decode.R0(ins), decode.Imm12(ins))
	case Mv:
		v.Mv(decode.R0(ins), decode.R1(ins))
	default:
		v.Illegal(ins)
	}
}
