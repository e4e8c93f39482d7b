// Package loader loads Owl-2820/RV32I binary images into guest
// memory. The image format has no header, no symbol table, and no
// relocations: it is simply a sequence of 32-bit little-endian words
// loaded starting at address 0, execution beginning at address 0.
package loader

import (
	"fmt"
	"io"

	"github.com/owl2820/owlvm/owl"
)

// ErrImageTooLarge is returned when an image does not fit in the
// destination memory buffer.
var ErrImageTooLarge = fmt.Errorf("loader: image larger than destination memory")

// Load reads every byte r produces and copies it into mem starting at
// address 0. The image need not be a multiple of 4 bytes; a trailing
// partial word is loaded as-is and the remaining bytes of that word
// keep whatever mem already held (callers that want a clean halt
// should right-pad to a full zero word themselves, per the image
// format's convention that a zero word decodes as Illegal).
func Load(r io.Reader, mem *owl.Memory) error {
	image, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	if len(image) > mem.Size() {
		return fmt.Errorf("%w: image is %d bytes, memory is %d bytes", ErrImageTooLarge, len(image), mem.Size())
	}
	copy(mem.Bytes(), image)
	return nil
}

// LoadBytes is a convenience wrapper around Load for callers that
// already have the image in memory rather than behind an io.Reader.
func LoadBytes(image []byte, mem *owl.Memory) error {
	if len(image) > mem.Size() {
		return fmt.Errorf("%w: image is %d bytes, memory is %d bytes", ErrImageTooLarge, len(image), mem.Size())
	}
	copy(mem.Bytes(), image)
	return nil
}
