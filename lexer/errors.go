package lexer

import (
	"fmt"

	"vela/token"
)

// LexError is the single latched lexical error a Lexer can produce. Once
// set, every subsequent call to Next returns this same error, matching the
// reference's "first error latches" lexer policy. Plain, unprefixed message
// (no emoji) — informatter-nilan's own lexer errors are likewise
// unprefixed, unlike its parser/compiler/vm error types.
type LexError struct {
	Span    token.Span
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}
