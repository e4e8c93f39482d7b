// Package main provides a pointer at the real entry point.
// OwlVM is an Owl-2820/RV32I emulator, assembler, and disassembler.
//
// For the full CLI, use: go run ./cmd/owlvm
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("OwlVM - Owl-2820 / RV32I emulator")
	fmt.Println("")
	fmt.Println("Usage: owlvm [options] <image>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -rv32i         Treat the image as RV32I instead of Owl-2820")
	fmt.Println("  -transcode     Transcode an RV32I image to Owl-2820 before running")
	fmt.Println("  -disasm        Print a disassembly instead of executing")
	fmt.Println("  -v             Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/owlvm' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/owlvm' instead.")
	}
}
