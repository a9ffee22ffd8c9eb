package interpreter

import "fmt"

// RuntimeError is a failure raised while evaluating a program. Kept from
// informatter-nilan/interpreter/error.go's RuntimeError, minus its
// line/column fields: this tree-walker runs over already-parsed ast.Node
// values that carry no source position of their own (SPEC_FULL.md §7).
type RuntimeError struct {
	Message string
}

func CreateRuntimeError(message string) RuntimeError {
	return RuntimeError{Message: message}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 Runtime error: %s", e.Message)
}
