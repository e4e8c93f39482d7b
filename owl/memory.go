// Package owl provides the Owl-2820 instruction set: its opcode table,
// field codecs, the shared instruction-visitor interface, and a
// dispatcher that drives a Visitor from an encoded Owl-2820 word.
package owl

import "encoding/binary"

// Memory is a flat, byte-addressable buffer shared by the instruction
// fetch path and ordinary load/store instructions. It is always
// interpreted as little-endian on the wire regardless of host
// endianness; encoding/binary.LittleEndian does the byte-copy and any
// necessary swap in one call, matching the memcpy-then-swap contract
// of the original implementation.
type Memory struct {
	bytes []byte
}

// NewMemory allocates a zeroed memory buffer of the given size in bytes.
func NewMemory(size int) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// NewMemoryFrom wraps an existing byte slice rather than allocating a
// new one, so code and data can share a single backing array.
func NewMemoryFrom(b []byte) *Memory {
	return &Memory{bytes: b}
}

// Size returns the size of the buffer in bytes.
func (m *Memory) Size() int {
	return len(m.bytes)
}

// Bytes exposes the raw backing slice. Mutating it is immediately
// visible to both the data view and the instruction-fetch view, since
// they are the same allocation.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

// Read8 reads a single byte. Single-byte access is endian-independent.
func (m *Memory) Read8(addr uint32) uint8 {
	return m.bytes[addr]
}

// Write8 writes a single byte.
func (m *Memory) Write8(addr uint32, v uint8) {
	m.bytes[addr] = v
}

// Read16 reads a little-endian halfword, regardless of alignment.
func (m *Memory) Read16(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(m.bytes[addr : addr+2])
}

// Write16 writes a little-endian halfword, regardless of alignment.
func (m *Memory) Write16(addr uint32, v uint16) {
	binary.LittleEndian.PutUint16(m.bytes[addr:addr+2], v)
}

// Read32 reads a little-endian word, regardless of alignment.
func (m *Memory) Read32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+4])
}

// Write32 writes a little-endian word, regardless of alignment.
func (m *Memory) Write32(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.bytes[addr:addr+4], v)
}

// InBounds reports whether a width-byte access at addr lies entirely
// within the buffer. The executor uses this to turn an undefined
// out-of-range access into a reported error instead of a host panic.
func (m *Memory) InBounds(addr uint32, width int) bool {
	end := uint64(addr) + uint64(width)
	return end <= uint64(len(m.bytes))
}
