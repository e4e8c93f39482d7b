// Package main provides the entry point for owlvm.
// owlvm runs Owl-2820 and RV32I binary images against the register
// VM defined in package vm, optionally transcoding RV32I to Owl-2820
// first or printing a disassembly instead of executing.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/owl2820/owlvm/asm"
	"github.com/owl2820/owlvm/disasm"
	"github.com/owl2820/owlvm/loader"
	"github.com/owl2820/owlvm/owl"
	"github.com/owl2820/owlvm/rv32i"
	"github.com/owl2820/owlvm/vm"
)

var (
	asRv32i     = flag.Bool("rv32i", false, "dispatch the image as RV32I instead of Owl-2820")
	transcode   = flag.Bool("transcode", false, "transcode an RV32I image to Owl-2820 via the assembler before running it")
	disassemble = flag.Bool("disasm", false, "print a disassembly of the image instead of running it")
	verbose     = flag.Bool("v", false, "print the instruction count on completion")
	setRegs     regAssignments
)

func init() {
	flag.Var(&setRegs, "set", "set an initial register to a value before running, name=value (repeatable); "+
		"name is a symbolic register name (a0, sp, ...) or xN, per owl.RegByName")
}

// regAssignments collects repeated -set name=value flags.
type regAssignments []string

func (r *regAssignments) String() string { return "" }

func (r *regAssignments) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// apply parses each "name=value" assignment with owl.RegByName and
// writes it into cpu's register file.
func (r regAssignments) apply(cpu *vm.CPU) error {
	for _, assignment := range r {
		name, valueStr, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("owlvm: -set %q: expected name=value", assignment)
		}
		reg, ok := owl.RegByName(name)
		if !ok {
			return fmt.Errorf("owlvm: -set %q: unknown register %q", assignment, name)
		}
		value, err := strconv.ParseUint(valueStr, 0, 32)
		if err != nil {
			return fmt.Errorf("owlvm: -set %q: %w", assignment, err)
		}
		cpu.X[reg] = uint32(value)
	}
	return nil
}

// OWLVM_MEMORY_SIZE and OWLVM_MAX_INSTRUCTIONS let an embedder tune
// the VM without recompiling; no command-line flag sets either value.
var (
	memorySize      = env.Int("OWLVM_MEMORY_SIZE", 4096)
	maxInstructions = env.Int("OWLVM_MAX_INSTRUCTIONS", 0)
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Please supply a filename.")
		fmt.Fprintf(os.Stderr, "\nUsage: owlvm [options] <image>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("owlvm: %w", err)
	}
	defer func() { _ = f.Close() }()

	mem := owl.NewMemory(memorySize)
	if err := loader.Load(f, mem); err != nil {
		return err
	}

	dispatch := owl.Dispatch
	if *asRv32i || *transcode {
		dispatch = rv32i.Dispatch
	}

	if *transcode {
		mem, err = transcodeToOwl(mem)
		if err != nil {
			return err
		}
		dispatch = owl.Dispatch
	}

	if *disassemble {
		printDisassembly(mem, dispatch)
		return nil
	}

	return runImage(mem, dispatch)
}

// transcodeToOwl runs an RV32I image through the assembler, producing
// a fresh Owl-2820 image of the same size.
func transcodeToOwl(src *owl.Memory) (*owl.Memory, error) {
	a := asm.NewAssembler()
	for pc := uint32(0); int(pc) < src.Size(); pc += 4 {
		rv32i.Dispatch(a, src.Read32(pc))
	}
	code, err := a.Code()
	if err != nil {
		return nil, fmt.Errorf("owlvm: transcode: %w", err)
	}

	image := make([]byte, len(code)*4)
	for i, word := range code {
		binary.LittleEndian.PutUint32(image[i*4:], word)
	}

	out := owl.NewMemory(src.Size())
	if err := loader.LoadBytes(image, out); err != nil {
		return nil, fmt.Errorf("owlvm: transcode: %w", err)
	}
	return out, nil
}

func printDisassembly(mem *owl.Memory, dispatch func(owl.Visitor, uint32)) {
	d := disasm.NewDisassembler()
	for pc := uint32(0); int(pc) < mem.Size(); pc += 4 {
		dispatch(d, mem.Read32(pc))
		fmt.Printf("%08x: %s\n", pc, d.Text())
	}
}

func runImage(mem *owl.Memory, dispatch func(owl.Visitor, uint32)) error {
	opts := []vm.Option{vm.WithStdout(os.Stdout)}
	if maxInstructions > 0 {
		opts = append(opts, vm.WithMaxInstructions(uint64(maxInstructions)))
	}
	cpu := vm.NewCPU(mem, opts...)

	if err := setRegs.apply(cpu); err != nil {
		return err
	}

	err := cpu.Run(dispatch)

	if *verbose {
		fmt.Printf("\nInstructions executed: %d\n", cpu.InstructionCount())
	}

	return err
}
