package disasm_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/disasm"
	"github.com/owl2820/owlvm/owl"
)

func TestDisasm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Disassembler Suite")
}

var _ = Describe("Disassembler", func() {
	var d *disasm.Disassembler

	BeforeEach(func() {
		d = disasm.NewDisassembler()
	})

	It("formats a register-register instruction", func() {
		d.Add(owl.A0, owl.A1, owl.A2)
		Expect(d.Text()).To(Equal("add a0, a1, a2"))
	})

	It("collapses addi rd, zero, imm to the li pseudo-op", func() {
		d.Addi(owl.A0, owl.Zero, 42)
		Expect(d.Text()).To(Equal("li a0, 42"))
	})

	It("collapses addi rd, src, 0 to the mv pseudo-op", func() {
		d.Addi(owl.A0, owl.A1, 0)
		Expect(d.Text()).To(Equal("mv a0, a1"))
	})

	It("prints an ordinary addi when neither peephole applies", func() {
		d.Addi(owl.A0, owl.A1, 7)
		Expect(d.Text()).To(Equal("addi a0, a1, 7"))
	})

	It("collapses jalr zero, 0(ra) to ret", func() {
		d.Jalr(owl.Zero, 0, owl.Ra)
		Expect(d.Text()).To(Equal("ret"))
	})

	It("prints an ordinary jalr when the ret pattern doesn't match", func() {
		d.Jalr(owl.A0, 4, owl.A1)
		Expect(d.Text()).To(Equal("jalr a0, 4(a1)"))
	})

	It("omits the destination register for jal ra (call convention)", func() {
		d.Jal(owl.Ra, 100)
		Expect(d.Text()).To(Equal("jal 100"))
	})

	It("formats a load as dest, offset(base)", func() {
		d.Lw(owl.T0, -8, owl.Sp)
		Expect(d.Text()).To(Equal("lw t0, -8(sp)"))
	})

	It("formats the Owl-2820 only instructions", func() {
		d.Li(owl.A0, 1)
		Expect(d.Text()).To(Equal("li a0, 1"))

		d.Mv(owl.A1, owl.A0)
		Expect(d.Text()).To(Equal("mv a1, a0"))

		d.Ret()
		Expect(d.Text()).To(Equal("ret"))
	})

	It("formats an illegal word in hex", func() {
		d.Illegal(0xdeadbeef)
		Expect(d.Text()).To(Equal("illegal 0xdeadbeef"))
	})
})
