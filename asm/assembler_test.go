package asm_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/asm"
	"github.com/owl2820/owlvm/owl"
	"github.com/owl2820/owlvm/owl/decode"
)

func TestAsm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assembler Suite")
}

var _ = Describe("Assembler", func() {
	It("emits one word per Visitor call and advances Current by 4", func() {
		a := asm.NewAssembler()
		Expect(a.Current()).To(Equal(uint32(0)))

		a.Add(1, 2, 3)
		Expect(a.Current()).To(Equal(uint32(4)))

		a.Addi(1, 1, 5)
		Expect(a.Current()).To(Equal(uint32(8)))

		code, err := a.Code()
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(HaveLen(2))
		Expect(owl.FromWord(code[0])).To(Equal(owl.Add))
		Expect(owl.FromWord(code[1])).To(Equal(owl.Addi))
	})

	It("resolves a backward branch label", func() {
		a := asm.NewAssembler()
		top := a.MakeLabel()
		a.BindLabel(top)
		a.Addi(1, 1, 1)
		a.BranchToLabel(owl.Bltu, 1, 2, top)

		code, err := a.Code()
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(HaveLen(2))

		branch := code[1]
		Expect(owl.FromWord(branch)).To(Equal(owl.Bltu))
		Expect(decode.Offs12(branch)).To(Equal(int32(-4)))
	})

	It("resolves a forward jump label", func() {
		a := asm.NewAssembler()
		a.Addi(1, 0, 0) // word 0
		end := a.MakeLabel()
		a.JalToLabel(0, end) // word 1, unresolved until bound
		a.Addi(2, 0, 0)      // word 2
		a.BindLabel(end)     // end == byte offset 12

		code, err := a.Code()
		Expect(err).NotTo(HaveOccurred())
		Expect(decode.Offs20(code[1])).To(Equal(int32(8)))
	})

	It("fails Code while a label is still unbound", func() {
		a := asm.NewAssembler()
		l := a.MakeLabel()
		a.JalToLabel(0, l)

		_, err := a.Code()
		Expect(err).To(MatchError(asm.ErrUnboundLabels))
	})

	It("computes Hi/Lo for an absolute address already bound", func() {
		a := asm.NewAssembler()
		target := a.MakeLabel()
		for i := 0; i < 0x1234/4; i++ {
			a.Addi(0, 0, 0)
		}
		a.BindLabel(target)

		Expect(a.Hi(target)).To(Equal(uint32(0x1234) >> 12))
		Expect(a.Lo(target)).To(Equal(int32(0x234)))
	})

	It("satisfies owl.Visitor so it can be driven by either dispatcher", func() {
		var v owl.Visitor = asm.NewAssembler()
		Expect(v).NotTo(BeNil())
	})
})
