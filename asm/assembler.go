// Package asm implements the Owl-2820 assembler: a Visitor backend
// that appends encoded instruction words to a growable buffer and
// resolves label references through a deferred fixup mechanism.
package asm

import (
	"errors"
	"fmt"

	"github.com/owl2820/owlvm/owl"
	"github.com/owl2820/owlvm/owl/encode"
)

// badAddress is the sentinel value for an unbound label.
const badAddress = ^uint32(0)

// fixupKind identifies which field of an instruction word a pending
// fixup will eventually patch.
type fixupKind int

const (
	fixupOffs12 fixupKind = iota
	fixupOffs20
	fixupHi20
	fixupLo12
)

// fixup records a deferred patch: the byte address of the instruction
// word that needs fixing, and which field within it.
type fixup struct {
	target uint32
	kind   fixupKind
}

// Label is an opaque handle returned by MakeLabel. It may be bound to
// an address at most once with BindLabel.
type Label struct {
	id int
}

// ErrUnboundLabels is returned by Code when one or more labels still
// have pending fixups.
var ErrUnboundLabels = errors.New("asm: there are unbound labels")

// Assembler implements owl.Visitor by emitting Owl-2820 words. Each
// Visitor method call appends exactly one word and advances the
// current byte offset by 4, per spec.md §4.7.
type Assembler struct {
	code    []uint32
	current uint32
	labels  []uint32 // badAddress until bound
	fixups  map[int][]fixup
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{fixups: make(map[int][]fixup)}
}

// Current returns the byte offset the next emitted word will occupy.
func (a *Assembler) Current() uint32 {
	return a.current
}

// MakeLabel hands out a new, initially unbound label.
func (a *Assembler) MakeLabel() Label {
	id := len(a.labels)
	a.labels = append(a.labels, badAddress)
	return Label{id: id}
}

// addressOf returns the label's bound address, if any.
func (a *Assembler) addressOf(l Label) (uint32, bool) {
	addr := a.labels[l.id]
	if addr == badAddress {
		return 0, false
	}
	return addr, true
}

func (a *Assembler) addFixup(l Label, kind fixupKind) {
	a.fixups[l.id] = append(a.fixups[l.id], fixup{target: a.current, kind: kind})
}

func (a *Assembler) resolveFixup(f fixup, address uint32) {
	idx := f.target / 4
	existing := a.code[idx]
	switch f.kind {
	case fixupOffs12:
		offset := int32(address - f.target)
		a.code[idx] = (existing & 0x000fffff) | encode.Offs12(offset)
	case fixupOffs20:
		offset := int32(address - f.target)
		a.code[idx] = (existing & 0x00000fff) | encode.Offs20(offset)
	case fixupHi20:
		a.code[idx] = (existing & 0x00000fff) | (address & 0xfffff000)
	case fixupLo12:
		lower12 := int32(address & 0xfff)
		a.code[idx] = (existing & 0x000fffff) | encode.Imm12(lower12)
	}
}

// BindLabel records the current byte offset as l's address and
// resolves every pending fixup for l, patching the placeholder word
// in place while preserving every other bit of it.
func (a *Assembler) BindLabel(l Label) {
	address := a.current
	a.labels[l.id] = address
	for _, f := range a.fixups[l.id] {
		a.resolveFixup(f, address)
	}
	delete(a.fixups, l.id)
}

// Hi returns the top 20 bits of l's address, right-shifted by 12, fit
// for feeding straight into Lui (whose uimm20 operand encode.Uimm20
// shifts back up into place). If l is unbound, it records a Hi20
// fixup at the current position and returns 0.
func (a *Assembler) Hi(l Label) uint32 {
	if addr, ok := a.addressOf(l); ok {
		return addr >> 12
	}
	a.addFixup(l, fixupHi20)
	return 0
}

// Lo returns the bottom 12 bits of l's address. If l is unbound, it
// records a Lo12 fixup at the current position and returns 0.
func (a *Assembler) Lo(l Label) int32 {
	if addr, ok := a.addressOf(l); ok {
		return int32(addr & 0xfff)
	}
	a.addFixup(l, fixupLo12)
	return 0
}

// Word emits a raw 32-bit datum, used for literal tables.
func (a *Assembler) Word(u uint32) {
	a.emit(u)
}

// Code returns the assembled buffer. It fails if any label still has
// outstanding fixups.
func (a *Assembler) Code() ([]uint32, error) {
	if len(a.fixups) != 0 {
		return nil, fmt.Errorf("%w", ErrUnboundLabels)
	}
	return a.code, nil
}

func (a *Assembler) emit(word uint32) {
	a.code = append(a.code, word)
	a.current += 4
}

// System instructions.

func (a *Assembler) Ecall()  { a.emit(encode.Opcode(owl.Ecall)) }
func (a *Assembler) Ebreak() { a.emit(encode.Opcode(owl.Ebreak)) }

// Register-register instructions.

func (a *Assembler) Add(r0, r1, r2 uint32) { a.emitRRR(owl.Add, r0, r1, r2) }
func (a *Assembler) Sub(r0, r1, r2 uint32) { a.emitRRR(owl.Sub, r0, r1, r2) }
func (a *Assembler) Sll(r0, r1, r2 uint32) { a.emitRRR(owl.Sll, r0, r1, r2) }
func (a *Assembler) Slt(r0, r1, r2 uint32) { a.emitRRR(owl.Slt, r0, r1, r2) }
func (a *Assembler) Sltu(r0, r1, r2 uint32) { a.emitRRR(owl.Sltu, r0, r1, r2) }
func (a *Assembler) Xor(r0, r1, r2 uint32) { a.emitRRR(owl.Xor, r0, r1, r2) }
func (a *Assembler) Srl(r0, r1, r2 uint32) { a.emitRRR(owl.Srl, r0, r1, r2) }
func (a *Assembler) Sra(r0, r1, r2 uint32) { a.emitRRR(owl.Sra, r0, r1, r2) }
func (a *Assembler) Or(r0, r1, r2 uint32)  { a.emitRRR(owl.Or, r0, r1, r2) }
func (a *Assembler) And(r0, r1, r2 uint32) { a.emitRRR(owl.And, r0, r1, r2) }

func (a *Assembler) emitRRR(op owl.Opcode, r0, r1, r2 uint32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.R1(r1) | encode.R2(r2))
}

// Immediate shift instructions.

func (a *Assembler) Slli(r0, r1, shift uint32) { a.emitShift(owl.Slli, r0, r1, shift) }
func (a *Assembler) Srli(r0, r1, shift uint32) { a.emitShift(owl.Srli, r0, r1, shift) }
func (a *Assembler) Srai(r0, r1, shift uint32) { a.emitShift(owl.Srai, r0, r1, shift) }

func (a *Assembler) emitShift(op owl.Opcode, r0, r1, shift uint32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.R1(r1) | encode.Shift(shift))
}

// Branch instructions.

func (a *Assembler) Beq(r0, r1 uint32, offs12 int32)  { a.emitBranch(owl.Beq, r0, r1, offs12) }
func (a *Assembler) Bne(r0, r1 uint32, offs12 int32)  { a.emitBranch(owl.Bne, r0, r1, offs12) }
func (a *Assembler) Blt(r0, r1 uint32, offs12 int32)  { a.emitBranch(owl.Blt, r0, r1, offs12) }
func (a *Assembler) Bge(r0, r1 uint32, offs12 int32)  { a.emitBranch(owl.Bge, r0, r1, offs12) }
func (a *Assembler) Bltu(r0, r1 uint32, offs12 int32) { a.emitBranch(owl.Bltu, r0, r1, offs12) }
func (a *Assembler) Bgeu(r0, r1 uint32, offs12 int32) { a.emitBranch(owl.Bgeu, r0, r1, offs12) }

func (a *Assembler) emitBranch(op owl.Opcode, r0, r1 uint32, offs12 int32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.R1(r1) | encode.Offs12(offs12))
}

// BranchToLabel emits a branch with opcode op to a (possibly unbound)
// label instead of a numeric offset. If the label is bound, the
// relative offset is computed immediately; otherwise a fixup is
// recorded and a zero-offset placeholder is emitted.
func (a *Assembler) BranchToLabel(op owl.Opcode, r0, r1 uint32, l Label) {
	if addr, ok := a.addressOf(l); ok {
		a.emitBranch(op, r0, r1, int32(addr-a.current))
		return
	}
	a.addFixup(l, fixupOffs12)
	a.emitBranch(op, r0, r1, 0)
}

// Register-immediate instructions.

func (a *Assembler) Addi(r0, r1 uint32, imm12 int32)  { a.emitRI(owl.Addi, r0, r1, imm12) }
func (a *Assembler) Slti(r0, r1 uint32, imm12 int32)  { a.emitRI(owl.Slti, r0, r1, imm12) }
func (a *Assembler) Sltiu(r0, r1 uint32, imm12 int32) { a.emitRI(owl.Sltiu, r0, r1, imm12) }
func (a *Assembler) Xori(r0, r1 uint32, imm12 int32)  { a.emitRI(owl.Xori, r0, r1, imm12) }
func (a *Assembler) Ori(r0, r1 uint32, imm12 int32)   { a.emitRI(owl.Ori, r0, r1, imm12) }
func (a *Assembler) Andi(r0, r1 uint32, imm12 int32)  { a.emitRI(owl.Andi, r0, r1, imm12) }

func (a *Assembler) emitRI(op owl.Opcode, r0, r1 uint32, imm12 int32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.R1(r1) | encode.Imm12(imm12))
}

// Load instructions.

func (a *Assembler) Lb(r0 uint32, imm12 int32, r1 uint32)  { a.emitLoad(owl.Lb, r0, imm12, r1) }
func (a *Assembler) Lbu(r0 uint32, imm12 int32, r1 uint32) { a.emitLoad(owl.Lbu, r0, imm12, r1) }
func (a *Assembler) Lh(r0 uint32, imm12 int32, r1 uint32)  { a.emitLoad(owl.Lh, r0, imm12, r1) }
func (a *Assembler) Lhu(r0 uint32, imm12 int32, r1 uint32) { a.emitLoad(owl.Lhu, r0, imm12, r1) }
func (a *Assembler) Lw(r0 uint32, imm12 int32, r1 uint32)  { a.emitLoad(owl.Lw, r0, imm12, r1) }

func (a *Assembler) emitLoad(op owl.Opcode, r0 uint32, imm12 int32, r1 uint32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.Imm12(imm12) | encode.R1(r1))
}

// Store instructions.

func (a *Assembler) Sb(r0 uint32, imm12 int32, r1 uint32) { a.emitStore(owl.Sb, r0, imm12, r1) }
func (a *Assembler) Sh(r0 uint32, imm12 int32, r1 uint32) { a.emitStore(owl.Sh, r0, imm12, r1) }
func (a *Assembler) Sw(r0 uint32, imm12 int32, r1 uint32) { a.emitStore(owl.Sw, r0, imm12, r1) }

func (a *Assembler) emitStore(op owl.Opcode, r0 uint32, imm12 int32, r1 uint32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.Imm12(imm12) | encode.R1(r1))
}

// Memory ordering instructions.

func (a *Assembler) Fence() { a.emit(encode.Opcode(owl.Fence)) }

// Subroutine call instructions.

func (a *Assembler) Jalr(r0 uint32, offs12 int32, r1 uint32) {
	a.emit(encode.Opcode(owl.Jalr) | encode.Offs12(offs12) | encode.R1(r1) | encode.R0(r0))
}

func (a *Assembler) Jal(r0 uint32, offs20 int32) {
	a.emit(encode.Opcode(owl.Jal) | encode.Offs20(offs20) | encode.R0(r0))
}

// JalToLabel emits jal r0, label, resolving immediately if bound or
// recording an Offs20 fixup otherwise.
func (a *Assembler) JalToLabel(r0 uint32, l Label) {
	if addr, ok := a.addressOf(l); ok {
		a.Jal(r0, int32(addr-a.current))
		return
	}
	a.addFixup(l, fixupOffs20)
	a.Jal(r0, 0)
}

// Miscellaneous instructions.

func (a *Assembler) Lui(r0, uimm20 uint32)   { a.emitU(owl.Lui, r0, uimm20) }
func (a *Assembler) Auipc(r0, uimm20 uint32) { a.emitU(owl.Auipc, r0, uimm20) }

func (a *Assembler) emitU(op owl.Opcode, r0, uimm20 uint32) {
	a.emit(encode.Opcode(op) | encode.R0(r0) | encode.Uimm20(uimm20))
}

// Owl-2820 only instructions.

func (a *Assembler) J(offs20 int32)    { a.emitJump(owl.J, offs20) }
func (a *Assembler) Call(offs20 int32) { a.emitJump(owl.Call, offs20) }

func (a *Assembler) emitJump(op owl.Opcode, offs20 int32) {
	a.emit(encode.Opcode(op) | encode.Offs20(offs20))
}

// JumpToLabel emits a J or Call to a (possibly unbound) label.
func (a *Assembler) JumpToLabel(op owl.Opcode, l Label) {
	if addr, ok := a.addressOf(l); ok {
		a.emitJump(op, int32(addr-a.current))
		return
	}
	a.addFixup(l, fixupOffs20)
	a.emitJump(op, 0)
}

func (a *Assembler) Ret() { a.emit(encode.Opcode(owl.Ret)) }

func (a *Assembler) Li(r0 uint32, imm12 int32) {
	a.emit(encode.Opcode(owl.Li) | encode.R0(r0) | encode.Imm12(imm12))
}

func (a *Assembler) Mv(r0, r1 uint32) {
	a.emit(encode.Opcode(owl.Mv) | encode.R0(r0) | encode.R1(r1))
}

// Illegal emits the Illegal opcode, discarding the raw word (the
// assembler has no source word to preserve; this exists so Assembler
// satisfies owl.Visitor when used as an RV32I transcoding target that
// hits an unrecognized encoding).
func (a *Assembler) Illegal(uint32) {
	a.emit(encode.Opcode(owl.Illegal))
}

var _ owl.Visitor = (*Assembler)(nil)
