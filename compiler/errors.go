package compiler

import "fmt"

// SemanticError is a lowering-time failure caused by the source program
// (unresolved variable, unknown builtin, assignment to a non-variable,
// ...). Kept from informatter-nilan/compiler/errors.go nearly verbatim,
// including its emoji-prefixed Error() string.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("💥 SemanticError: %s", e.Message)
}

// DeveloperError signals an internal invariant violation in the generator
// itself (a bug here, not in the source program). Also logged through
// diag.Log before being returned, so a host embedding this package gets a
// structured log line in addition to the error value.
type DeveloperError struct {
	Message string
}

func (e *DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
