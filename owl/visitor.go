package owl

// Visitor is the single interface through which every Owl-2820
// mnemonic is expressed. It has one method per opcode in the opcode
// table plus Illegal for unrecognized words. Any component that
// consumes decoded instructions — the executor, the assembler, the
// disassembler, or the RV32I dispatcher transcoding to Owl-2820 —
// implements Visitor.
//
// Dispatch (Dispatch in this package, or rv32i.Dispatch) never
// inspects what a Visitor method does internally; it only calls the
// matching method with the decoded operands. That is what lets a
// single pass over an instruction stream be retargeted to any
// backend just by swapping the Visitor.
type Visitor interface {
	// System instructions.
	Ecall()
	Ebreak()

	// Register-register instructions.
	Add(r0, r1, r2 uint32)
	Sub(r0, r1, r2 uint32)
	Sll(r0, r1, r2 uint32)
	Slt(r0, r1, r2 uint32)
	Sltu(r0, r1, r2 uint32)
	Xor(r0, r1, r2 uint32)
	Srl(r0, r1, r2 uint32)
	Sra(r0, r1, r2 uint32)
	Or(r0, r1, r2 uint32)
	And(r0, r1, r2 uint32)

	// Immediate shift instructions.
	Slli(r0, r1, shift uint32)
	Srli(r0, r1, shift uint32)
	Srai(r0, r1, shift uint32)

	// Branch instructions.
	Beq(r0, r1 uint32, offs12 int32)
	Bne(r0, r1 uint32, offs12 int32)
	Blt(r0, r1 uint32, offs12 int32)
	Bge(r0, r1 uint32, offs12 int32)
	Bltu(r0, r1 uint32, offs12 int32)
	Bgeu(r0, r1 uint32, offs12 int32)

	// Register-immediate instructions.
	Addi(r0, r1 uint32, imm12 int32)
	Slti(r0, r1 uint32, imm12 int32)
	Sltiu(r0, r1 uint32, imm12 int32)
	Xori(r0, r1 uint32, imm12 int32)
	Ori(r0, r1 uint32, imm12 int32)
	Andi(r0, r1 uint32, imm12 int32)

	// Load instructions: Method(dest, offset, base).
	Lb(r0 uint32, imm12 int32, r1 uint32)
	Lbu(r0 uint32, imm12 int32, r1 uint32)
	Lh(r0 uint32, imm12 int32, r1 uint32)
	Lhu(r0 uint32, imm12 int32, r1 uint32)
	Lw(r0 uint32, imm12 int32, r1 uint32)

	// Store instructions: Method(source, offset, base).
	Sb(r0 uint32, imm12 int32, r1 uint32)
	Sh(r0 uint32, imm12 int32, r1 uint32)
	Sw(r0 uint32, imm12 int32, r1 uint32)

	// Memory ordering instructions.
	Fence()

	// Subroutine call instructions.
	Jalr(r0 uint32, offs12 int32, r1 uint32)
	Jal(r0 uint32, offs20 int32)

	// Miscellaneous instructions.
	Lui(r0, uimm20 uint32)
	Auipc(r0, uimm20 uint32)

	// Owl-2820 only instructions.
	J(offs20 int32)
	Call(offs20 int32)
	Ret()
	Li(r0 uint32, imm12 int32)
	Mv(r0, r1 uint32)

	// Illegal is invoked for any word whose opcode tag is outside the
	// opcode table (Owl-2820) or whose bit pattern matches no known
	// encoding (RV32I).
	Illegal(raw uint32)
}
