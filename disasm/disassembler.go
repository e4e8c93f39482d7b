// Package disasm implements the Owl-2820 disassembler: a Visitor
// backend that formats decoded operands into human-readable mnemonic
// text, with a handful of peephole prettifications for idioms that
// the assembler commonly emits as their general-purpose forms.
package disasm

import (
	"fmt"

	"github.com/owl2820/owlvm/owl"
)

// Disassembler implements owl.Visitor. Because the Visitor interface
// returns nothing, each method stores its formatted mnemonic in last
// rather than returning it; callers retrieve it with Text after
// dispatching one instruction.
type Disassembler struct {
	last string
}

// NewDisassembler creates an empty disassembler.
func NewDisassembler() *Disassembler {
	return &Disassembler{}
}

// Text returns the mnemonic text produced by the most recent Visitor
// call.
func (d *Disassembler) Text() string {
	return d.last
}

func regName(r uint32) string {
	if r < uint32(len(owl.RegNames)) {
		return owl.RegNames[r]
	}
	return fmt.Sprintf("x%d", r)
}

func (d *Disassembler) set(s string) {
	d.last = s
}

func (d *Disassembler) setf(format string, args ...any) {
	d.last = fmt.Sprintf(format, args...)
}

// System instructions.

func (d *Disassembler) Ecall()  { d.set("ecall") }
func (d *Disassembler) Ebreak() { d.set("ebreak") }

// Register-register instructions.

func (d *Disassembler) Add(r0, r1, r2 uint32) { d.setf("add %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Sub(r0, r1, r2 uint32) { d.setf("sub %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Sll(r0, r1, r2 uint32) { d.setf("sll %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Slt(r0, r1, r2 uint32) { d.setf("slt %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Sltu(r0, r1, r2 uint32) {
	d.setf("sltu %s, %s, %s", regName(r0), regName(r1), regName(r2))
}
func (d *Disassembler) Xor(r0, r1, r2 uint32) { d.setf("xor %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Srl(r0, r1, r2 uint32) { d.setf("srl %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Sra(r0, r1, r2 uint32) { d.setf("sra %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) Or(r0, r1, r2 uint32)  { d.setf("or %s, %s, %s", regName(r0), regName(r1), regName(r2)) }
func (d *Disassembler) And(r0, r1, r2 uint32) { d.setf("and %s, %s, %s", regName(r0), regName(r1), regName(r2)) }

// Immediate shift instructions.

func (d *Disassembler) Slli(r0, r1, shift uint32) {
	d.setf("slli %s, %s, %d", regName(r0), regName(r1), shift)
}
func (d *Disassembler) Srli(r0, r1, shift uint32) {
	d.setf("srli %s, %s, %d", regName(r0), regName(r1), shift)
}
func (d *Disassembler) Srai(r0, r1, shift uint32) {
	d.setf("srai %s, %s, %d", regName(r0), regName(r1), shift)
}

// Branch instructions.

func (d *Disassembler) Beq(r0, r1 uint32, offs12 int32) {
	d.setf("beq %s, %s, %d", regName(r0), regName(r1), offs12)
}
func (d *Disassembler) Bne(r0, r1 uint32, offs12 int32) {
	d.setf("bne %s, %s, %d", regName(r0), regName(r1), offs12)
}
func (d *Disassembler) Blt(r0, r1 uint32, offs12 int32) {
	d.setf("blt %s, %s, %d", regName(r0), regName(r1), offs12)
}
func (d *Disassembler) Bge(r0, r1 uint32, offs12 int32) {
	d.setf("bge %s, %s, %d", regName(r0), regName(r1), offs12)
}
func (d *Disassembler) Bltu(r0, r1 uint32, offs12 int32) {
	d.setf("bltu %s, %s, %d", regName(r0), regName(r1), offs12)
}
func (d *Disassembler) Bgeu(r0, r1 uint32, offs12 int32) {
	d.setf("bgeu %s, %s, %d", regName(r0), regName(r1), offs12)
}

// Register-immediate instructions. Addi carries two peepholes: a
// zero-valued source collapses to the li pseudo-op, and a zero
// immediate collapses to the mv pseudo-op.

func (d *Disassembler) Addi(r0, r1 uint32, imm12 int32) {
	switch {
	case r1 == owl.Zero:
		d.setf("li %s, %d", regName(r0), imm12)
	case imm12 == 0:
		d.setf("mv %s, %s", regName(r0), regName(r1))
	default:
		d.setf("addi %s, %s, %d", regName(r0), regName(r1), imm12)
	}
}

func (d *Disassembler) Slti(r0, r1 uint32, imm12 int32) {
	d.setf("slti %s, %s, %d", regName(r0), regName(r1), imm12)
}
func (d *Disassembler) Sltiu(r0, r1 uint32, imm12 int32) {
	d.setf("sltiu %s, %s, %d", regName(r0), regName(r1), imm12)
}
func (d *Disassembler) Xori(r0, r1 uint32, imm12 int32) {
	d.setf("xori %s, %s, %d", regName(r0), regName(r1), imm12)
}
func (d *Disassembler) Ori(r0, r1 uint32, imm12 int32) {
	d.setf("ori %s, %s, %d", regName(r0), regName(r1), imm12)
}
func (d *Disassembler) Andi(r0, r1 uint32, imm12 int32) {
	d.setf("andi %s, %s, %d", regName(r0), regName(r1), imm12)
}

// Load instructions.

func (d *Disassembler) Lb(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("lb %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Lbu(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("lbu %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Lh(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("lh %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Lhu(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("lhu %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Lw(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("lw %s, %d(%s)", regName(r0), imm12, regName(r1))
}

// Store instructions.

func (d *Disassembler) Sb(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("sb %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Sh(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("sh %s, %d(%s)", regName(r0), imm12, regName(r1))
}
func (d *Disassembler) Sw(r0 uint32, imm12 int32, r1 uint32) {
	d.setf("sw %s, %d(%s)", regName(r0), imm12, regName(r1))
}

// Memory ordering instructions.

func (d *Disassembler) Fence() { d.set("fence") }

// Subroutine call instructions. Jalr carries the canonical ret
// peephole.

func (d *Disassembler) Jalr(r0 uint32, offs12 int32, r1 uint32) {
	if r0 == owl.Zero && r1 == owl.Ra && offs12 == 0 {
		d.set("ret")
		return
	}
	d.setf("jalr %s, %d(%s)", regName(r0), offs12, regName(r1))
}

func (d *Disassembler) Jal(r0 uint32, offs20 int32) {
	if r0 == owl.Ra {
		d.setf("jal %d", offs20)
		return
	}
	d.setf("jal %s, %d", regName(r0), offs20)
}

// Miscellaneous instructions.

func (d *Disassembler) Lui(r0, uimm20 uint32)   { d.setf("lui %s, %d", regName(r0), uimm20) }
func (d *Disassembler) Auipc(r0, uimm20 uint32) { d.setf("auipc %s, %d", regName(r0), uimm20) }

// Owl-2820 only instructions.

func (d *Disassembler) J(offs20 int32)    { d.setf("j %d", offs20) }
func (d *Disassembler) Call(offs20 int32) { d.setf("call %d", offs20) }
func (d *Disassembler) Ret()              { d.set("ret") }
func (d *Disassembler) Li(r0 uint32, imm12 int32) {
	d.setf("li %s, %d", regName(r0), imm12)
}
func (d *Disassembler) Mv(r0, r1 uint32) { d.setf("mv %s, %s", regName(r0), regName(r1)) }

// Illegal formats the raw word in hex, since it has no mnemonic.
func (d *Disassembler) Illegal(raw uint32) {
	d.setf("illegal 0x%08x", raw)
}

var _ owl.Visitor = (*Disassembler)(nil)
