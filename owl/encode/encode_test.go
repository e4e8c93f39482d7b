package encode_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/owl"
	"github.com/owl2820/owlvm/owl/decode"
	"github.com/owl2820/owlvm/owl/encode"
)

func TestEncode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Encode Suite")
}

var _ = Describe("field round-trips with package decode", func() {
	It("round-trips R0/R1/R2", func() {
		word := encode.R0(5) | encode.R1(17) | encode.R2(31)
		Expect(decode.R0(word)).To(Equal(uint32(5)))
		Expect(decode.R1(word)).To(Equal(uint32(17)))
		Expect(decode.R2(word)).To(Equal(uint32(31)))
	})

	It("round-trips Shift through the R2 field", func() {
		word := encode.Shift(27)
		Expect(decode.Shift(word)).To(Equal(uint32(27)))
	})

	It("round-trips a positive and a negative Imm12", func() {
		Expect(decode.Imm12(encode.Imm12(100))).To(Equal(int32(100)))
		Expect(decode.Imm12(encode.Imm12(-1))).To(Equal(int32(-1)))
		Expect(decode.Imm12(encode.Imm12(-2048))).To(Equal(int32(-2048)))
	})

	It("round-trips Offs12, losing no precision on even offsets", func() {
		Expect(decode.Offs12(encode.Offs12(8))).To(Equal(int32(8)))
		Expect(decode.Offs12(encode.Offs12(-8))).To(Equal(int32(-8)))
	})

	It("round-trips Offs20", func() {
		Expect(decode.Offs20(encode.Offs20(1 << 15))).To(Equal(int32(1 << 15)))
		Expect(decode.Offs20(encode.Offs20(-(1 << 15)))).To(Equal(int32(-(1 << 15))))
	})

	It("shifts Uimm20's raw 20-bit input into bits [31:12]", func() {
		Expect(encode.Uimm20(0xabcde)).To(Equal(uint32(0xabcde000)))
	})

	It("leaves an already-placed word's top 20 bits untouched on decode", func() {
		Expect(decode.Uimm20(0xabcde000)).To(Equal(uint32(0xabcde000)))
	})

	It("masks register indices to 5 bits", func() {
		Expect(decode.R0(encode.R0(0xff))).To(Equal(uint32(0x1f)))
	})

	It("encodes the opcode tag into bits [6:0]", func() {
		word := encode.Opcode(owl.Add)
		Expect(owl.FromWord(word)).To(Equal(owl.Add))
	})
})
