package loader_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/owl2820/owlvm/loader"
	"github.com/owl2820/owlvm/owl"
)

func TestLoader(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Loader Suite")
}

var _ = Describe("Load", func() {
	It("copies the image into memory starting at address 0", func() {
		mem := owl.NewMemory(64)
		image := []byte{0x93, 0x02, 0x10, 0x00, 0x13, 0x00, 0x00, 0x00}

		Expect(loader.Load(bytes.NewReader(image), mem)).To(Succeed())
		Expect(mem.Bytes()[:len(image)]).To(Equal(image))
	})

	It("leaves the rest of memory untouched", func() {
		mem := owl.NewMemory(16)
		image := []byte{0xff, 0xff, 0xff, 0xff}

		Expect(loader.Load(bytes.NewReader(image), mem)).To(Succeed())
		Expect(mem.Bytes()[4:]).To(Equal(make([]byte, 12)))
	})

	It("rejects an image larger than memory", func() {
		mem := owl.NewMemory(4)
		image := make([]byte, 8)

		err := loader.Load(bytes.NewReader(image), mem)
		Expect(err).To(MatchError(loader.ErrImageTooLarge))
	})

	It("accepts an image exactly the size of memory", func() {
		mem := owl.NewMemory(4)
		image := []byte{0x01, 0x02, 0x03, 0x04}

		Expect(loader.Load(bytes.NewReader(image), mem)).To(Succeed())
		Expect(mem.Bytes()).To(Equal(image))
	})
})

var _ = Describe("LoadBytes", func() {
	It("behaves identically to Load for an in-memory image", func() {
		mem := owl.NewMemory(8)
		image := []byte{0x11, 0x22, 0x33, 0x44}

		Expect(loader.LoadBytes(image, mem)).To(Succeed())
		Expect(mem.Bytes()[:4]).To(Equal(image))
	})
})
