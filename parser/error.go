package parser

import (
	"fmt"

	"vela/token"
)

// SyntaxError is the single error a Parser can produce: parsing halts and
// unwinds at the first one, no recovery. Format mirrors
// informatter-nilan/parser/error.go's emoji-prefixed, span-carrying style.
type SyntaxError struct {
	Span    token.Span
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("💥 Syntax error:\nline:%d, column:%d - %s", e.Span.Line, e.Span.Column, e.Message)
}
