package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"number", NumberToken(42, Span{Line: 1, Column: 3}), "Token(Number @ Span(1, 3), 42)"},
		{"float", FloatToken(3.5, Span{Line: 0, Column: 0}), "Token(Float @ Span(0, 0), 3.5)"},
		{"identifier", IdentifierToken("foo", Span{Line: 2, Column: 0}), `Token(Identifier @ Span(2, 0), "foo")`},
		{"keyword", KeywordToken(If, Span{}), "Token(Keyword @ Span(0, 0), if)"},
		{"operator", OperatorToken(PlusPlus, Span{}), "Token(Operator @ Span(0, 0), ++)"},
		{"simple", Simple(Eof, Span{Line: 5, Column: 1}), "Token(Eof @ Span(5, 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.String())
		})
	}
}

func TestOperatorStringCoversDoubleAndEqForms(t *testing.T) {
	ops := []Op{
		Plus, PlusPlus, PlusEquals, Minus, MinusMinus, MinusEquals,
		Star, StarEquals, Slash, SlashEquals, Equals, EqualsEquals,
		And, AndAnd, AndEquals, Or, OrOr, OrEquals,
		Lt, Le, Shl, Gt, Ge, Shr,
	}
	seen := make(map[string]bool)
	for _, op := range ops {
		s := op.String()
		assert.NotEqual(t, "?", s, "operator %d has no String() mapping", op)
		assert.False(t, seen[s], "duplicate operator rendering %q", s)
		seen[s] = true
	}
}

func TestKeywordsMapMatchesStringer(t *testing.T) {
	for word, kw := range Keywords {
		assert.Equal(t, word, kw.String())
	}
}
