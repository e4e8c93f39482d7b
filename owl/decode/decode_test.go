package decode_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/owl/decode"
)

func TestDecode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Decode Suite")
}

var _ = Describe("field extraction against literal bit layouts", func() {
	It("extracts R0 from bits [11:7]", func() {
		Expect(decode.R0(0x00000f80)).To(Equal(uint32(0x1f)))
	})

	It("extracts R1 from bits [16:12]", func() {
		Expect(decode.R1(0x0001f000)).To(Equal(uint32(0x1f)))
	})

	It("extracts R2 from bits [21:17]", func() {
		Expect(decode.R2(0x003e0000)).To(Equal(uint32(0x1f)))
	})

	It("sign-extends a negative Imm12", func() {
		// top 12 bits all set -> imm12 == -1
		Expect(decode.Imm12(0xfff00000)).To(Equal(int32(-1)))
	})

	It("sign-extends a positive Imm12", func() {
		// 0x001 in the top 12 bits -> imm12 == 1
		Expect(decode.Imm12(0x00100000)).To(Equal(int32(1)))
	})

	It("extracts Uimm20 already in final register position", func() {
		Expect(decode.Uimm20(0xabcde123)).To(Equal(uint32(0xabcde000)))
	})
})
