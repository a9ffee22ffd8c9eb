package vm

import "fmt"

// RuntimeError is a failure that halts execution and sets the VM's pending
// error. Kept from informatter-nilan/vm/errors.go nearly verbatim,
// including its emoji-prefixed Error() string.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}

// DeveloperError signals an internal invariant violation (a bug in this
// VM, not in the program it is running): a non-Instruction cell at pc, an
// opcode or builtin id outside the closed set, or a pop from an empty stack.
type DeveloperError struct {
	Message string
}

func (e *DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
