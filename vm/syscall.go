package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/owl2820/owlvm/owl"
)

// Syscall selectors, keyed off x[a7] per spec.md's §6 ABI table.
const (
	SyscallExit     = 0
	SyscallPrintFib = 1
)

// ErrUnknownSyscall is returned (wrapped) when the guest requests a
// selector the syscall handler does not recognize.
var ErrUnknownSyscall = errors.New("unknown syscall selector")

// SyscallHandler services an ecall on behalf of the CPU. Handle
// inspects the CPU's register file directly (selector in x[a7],
// arguments in x[a0], x[a1], ...) and returns whether the call halted
// the machine.
type SyscallHandler interface {
	Handle(cpu *CPU) (exited bool, err error)
}

// DefaultSyscallHandler implements the two selectors spec.md §6 names:
// Exit and PrintFib. Output goes to an injectable io.Writer rather
// than directly to os.Stdout, matching the teacher's
// emu.DefaultSyscallHandler construction.
type DefaultSyscallHandler struct {
	Stdout io.Writer
}

// NewDefaultSyscallHandler creates a handler that reports Exit and
// PrintFib syscalls to w.
func NewDefaultSyscallHandler(w io.Writer) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{Stdout: w}
}

// Handle implements SyscallHandler.
func (h *DefaultSyscallHandler) Handle(cpu *CPU) (bool, error) {
	switch cpu.X[owl.A7] {
	case SyscallExit:
		fmt.Fprintf(h.Stdout, "Exiting with status %d\n", cpu.X[owl.A0])
		return true, nil
	case SyscallPrintFib:
		fmt.Fprintf(h.Stdout, "fib(%d) = %d\n", cpu.X[owl.A0], cpu.X[owl.A1])
		return false, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownSyscall, cpu.X[owl.A7])
	}
}
