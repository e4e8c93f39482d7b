package owl_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/owl"
	"github.com/owl2820/owlvm/owl/encode"
)

// recordingVisitor implements owl.Visitor, remembering only the last
// method name and arguments invoked on it.
type recordingVisitor struct {
	method string
	args   []int64
}

func (r *recordingVisitor) call(name string, args ...int64) {
	r.method, r.args = name, args
}

func (r *recordingVisitor) Ecall()  { r.call("Ecall") }
func (r *recordingVisitor) Ebreak() { r.call("Ebreak") }

func (r *recordingVisitor) Add(a, b, c uint32)  { r.call("Add", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Sub(a, b, c uint32)  { r.call("Sub", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Sll(a, b, c uint32)  { r.call("Sll", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Slt(a, b, c uint32)  { r.call("Slt", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Sltu(a, b, c uint32) { r.call("Sltu", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Xor(a, b, c uint32)  { r.call("Xor", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Srl(a, b, c uint32)  { r.call("Srl", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Sra(a, b, c uint32)  { r.call("Sra", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Or(a, b, c uint32)   { r.call("Or", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) And(a, b, c uint32)  { r.call("And", int64(a), int64(b), int64(c)) }

func (r *recordingVisitor) Slli(a, b, c uint32) { r.call("Slli", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Srli(a, b, c uint32) { r.call("Srli", int64(a), int64(b), int64(c)) }
func (r *recordingVisitor) Srai(a, b, c uint32) { r.call("Srai", int64(a), int64(b), int64(c)) }

func (r *recordingVisitor) Beq(a, b uint32, offs int32)  { r.call("Beq", int64(a), int64(b), int64(offs)) }
func (r *recordingVisitor) Bne(a, b uint32, offs int32)  { r.call("Bne", int64(a), int64(b), int64(offs)) }
func (r *recordingVisitor) Blt(a, b uint32, offs int32)  { r.call("Blt", int64(a), int64(b), int64(offs)) }
func (r *recordingVisitor) Bge(a, b uint32, offs int32)  { r.call("Bge", int64(a), int64(b), int64(offs)) }
func (r *recordingVisitor) Bltu(a, b uint32, offs int32) { r.call("Bltu", int64(a), int64(b), int64(offs)) }
func (r *recordingVisitor) Bgeu(a, b uint32, offs int32) { r.call("Bgeu", int64(a), int64(b), int64(offs)) }

func (r *recordingVisitor) Addi(a, b uint32, imm int32)  { r.call("Addi", int64(a), int64(b), int64(imm)) }
func (r *recordingVisitor) Slti(a, b uint32, imm int32)  { r.call("Slti", int64(a), int64(b), int64(imm)) }
func (r *recordingVisitor) Sltiu(a, b uint32, imm int32) { r.call("Sltiu", int64(a), int64(b), int64(imm)) }
func (r *recordingVisitor) Xori(a, b uint32, imm int32)  { r.call("Xori", int64(a), int64(b), int64(imm)) }
func (r *recordingVisitor) Ori(a, b uint32, imm int32)   { r.call("Ori", int64(a), int64(b), int64(imm)) }
func (r *recordingVisitor) Andi(a, b uint32, imm int32)  { r.call("Andi", int64(a), int64(b), int64(imm)) }

func (r *recordingVisitor) Lb(a uint32, imm int32, b uint32)  { r.call("Lb", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Lbu(a uint32, imm int32, b uint32) { r.call("Lbu", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Lh(a uint32, imm int32, b uint32)  { r.call("Lh", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Lhu(a uint32, imm int32, b uint32) { r.call("Lhu", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Lw(a uint32, imm int32, b uint32)  { r.call("Lw", int64(a), int64(imm), int64(b)) }

func (r *recordingVisitor) Sb(a uint32, imm int32, b uint32) { r.call("Sb", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Sh(a uint32, imm int32, b uint32) { r.call("Sh", int64(a), int64(imm), int64(b)) }
func (r *recordingVisitor) Sw(a uint32, imm int32, b uint32) { r.call("Sw", int64(a), int64(imm), int64(b)) }

func (r *recordingVisitor) Fence() { r.call("Fence") }

func (r *recordingVisitor) Jalr(a uint32, offs int32, b uint32) {
	r.call("Jalr", int64(a), int64(offs), int64(b))
}
func (r *recordingVisitor) Jal(a uint32, offs int32) { r.call("Jal", int64(a), int64(offs)) }

func (r *recordingVisitor) Lui(a, uimm uint32)   { r.call("Lui", int64(a), int64(uimm)) }
func (r *recordingVisitor) Auipc(a, uimm uint32) { r.call("Auipc", int64(a), int64(uimm)) }

func (r *recordingVisitor) J(offs int32)    { r.call("J", int64(offs)) }
func (r *recordingVisitor) Call(offs int32) { r.call("Call", int64(offs)) }
func (r *recordingVisitor) Ret()            { r.call("Ret") }
func (r *recordingVisitor) Li(a uint32, imm int32) { r.call("Li", int64(a), int64(imm)) }
func (r *recordingVisitor) Mv(a, b uint32)         { r.call("Mv", int64(a), int64(b)) }

func (r *recordingVisitor) Illegal(raw uint32) { r.call("Illegal", int64(raw)) }

var _ owl.Visitor = (*recordingVisitor)(nil)

var _ = Describe("Dispatch", func() {
	It("routes Add with operands in (r0, r1, r2) order", func() {
		v := &recordingVisitor{}
		word := encode.Opcode(owl.Add) | encode.R0(1) | encode.R1(2) | encode.R2(3)

		owl.Dispatch(v, word)

		Expect(v.method).To(Equal("Add"))
		Expect(v.args).To(Equal([]int64{1, 2, 3}))
	})

	It("routes Lw as (dest, offset, base)", func() {
		v := &recordingVisitor{}
		word := encode.Opcode(owl.Lw) | encode.R0(5) | encode.Imm12(40) | encode.R1(2)

		owl.Dispatch(v, word)

		Expect(v.method).To(Equal("Lw"))
		Expect(v.args).To(Equal([]int64{5, 40, 2}))
	})

	It("routes an unrecognized opcode tag to Illegal", func() {
		v := &recordingVisitor{}

		owl.Dispatch(v, 0)

		Expect(v.method).To(Equal("Illegal"))
	})
})
