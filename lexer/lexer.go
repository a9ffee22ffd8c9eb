// Package lexer implements the lazy, pull-based tokenizer: it consumes a
// source.Reader one byte at a time, keeps a one-character lookahead, tracks
// a (line, column) cursor, and produces at most one error, after which all
// further requests return that same failure.
//
// Character classification follows informatter-nilan/lexer/lexer.go's
// handleNumber/handleIdentifier/peek/isMatch shapes, restructured from a
// batch Scan() into a lazy Next() per SPEC_FULL.md §4.1.
package lexer

import (
	"strconv"

	"vela/source"
	"vela/token"
)

type doubleOrEqRule struct {
	hasDouble bool
	double    token.Op
	eq        token.Op
	single    token.Op
}

var operatorRules = map[byte]doubleOrEqRule{
	'+': {hasDouble: true, double: token.PlusPlus, eq: token.PlusEquals, single: token.Plus},
	'-': {hasDouble: true, double: token.MinusMinus, eq: token.MinusEquals, single: token.Minus},
	'<': {hasDouble: true, double: token.Shl, eq: token.Le, single: token.Lt},
	'>': {hasDouble: true, double: token.Shr, eq: token.Ge, single: token.Gt},
	'&': {hasDouble: true, double: token.AndAnd, eq: token.AndEquals, single: token.And},
	'|': {hasDouble: true, double: token.OrOr, eq: token.OrEquals, single: token.Or},
	'*': {hasDouble: false, eq: token.StarEquals, single: token.Star},
	'/': {hasDouble: false, eq: token.SlashEquals, single: token.Slash},
	'=': {hasDouble: false, eq: token.EqualsEquals, single: token.Equals},
}

var punctuation = map[byte]token.Type{
	';': token.SemiColon,
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
}

// Lexer is the lazy tokenizer. Zero value is not usable; construct with New.
type Lexer struct {
	reader source.Reader
	cur    byte
	peek   byte
	line   int32
	col    int
	failed bool
	err    error
}

func New(r source.Reader) *Lexer {
	l := &Lexer{reader: r}
	l.cur = r.Next()
	l.peek = r.Next()
	return l
}

// advance consumes cur, shifting peek into cur, and updates the cursor
// according to the character just consumed.
func (l *Lexer) advance() {
	if l.cur == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.cur = l.peek
	l.peek = l.reader.Next()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSeparator(c byte) bool {
	if c == 0 || c == ' ' || c == '\t' || c == '\n' {
		return true
	}
	if _, ok := operatorRules[c]; ok {
		return true
	}
	if _, ok := punctuation[c]; ok {
		return true
	}
	return false
}

// Next produces the next token, or the latched error if one has already
// occurred.
func (l *Lexer) Next() (token.Token, error) {
	if l.failed {
		return token.Token{}, l.err
	}

	for l.cur == ' ' || l.cur == '\t' || l.cur == '\n' {
		l.advance()
	}

	span := token.Span{Line: l.line, Column: l.col}

	switch {
	case l.cur == 0:
		return token.Simple(token.Eof, span), nil
	case isDigit(l.cur):
		return l.lexNumber(span)
	case isIdentStart(l.cur):
		return l.lexIdentifier(span)
	default:
		if typ, ok := punctuation[l.cur]; ok {
			l.advance()
			return token.Simple(typ, span), nil
		}
		if _, ok := operatorRules[l.cur]; ok {
			return l.lexOperator(span)
		}
		return l.fail(span, "unknown token")
	}
}

func (l *Lexer) lexOperator(span token.Span) (token.Token, error) {
	c := l.cur
	rule := operatorRules[c]
	l.advance()
	if rule.hasDouble && l.cur == c {
		l.advance()
		return token.OperatorToken(rule.double, span), nil
	}
	if l.cur == '=' {
		l.advance()
		return token.OperatorToken(rule.eq, span), nil
	}
	return token.OperatorToken(rule.single, span), nil
}

func (l *Lexer) lexNumber(span token.Span) (token.Token, error) {
	var digits []byte
	for isDigit(l.cur) {
		digits = append(digits, l.cur)
		l.advance()
	}

	isFloat := false
	if l.cur == '.' {
		isFloat = true
		digits = append(digits, l.cur)
		l.advance()
		for isDigit(l.cur) {
			digits = append(digits, l.cur)
			l.advance()
		}
		if digits[len(digits)-1] == '.' {
			digits = append(digits, '0')
		}
	}

	if !isSeparator(l.cur) {
		return l.fail(span, "Invalid token separator after number/floating point number")
	}

	if isFloat {
		f, err := strconv.ParseFloat(string(digits), 64)
		if err != nil {
			return l.fail(span, "invalid floating point literal")
		}
		return token.FloatToken(f, span), nil
	}

	n, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return l.fail(span, "invalid integer literal")
	}
	return token.NumberToken(n, span), nil
}

func (l *Lexer) lexIdentifier(span token.Span) (token.Token, error) {
	var buf []byte
	for isIdentStart(l.cur) || isDigit(l.cur) {
		buf = append(buf, l.cur)
		l.advance()
	}

	if !isSeparator(l.cur) {
		return l.fail(span, "Invalid token separator after identifier")
	}

	name := string(buf)
	if kw, ok := token.Keywords[name]; ok {
		return token.KeywordToken(kw, span), nil
	}
	return token.IdentifierToken(name, span), nil
}

func (l *Lexer) fail(span token.Span, msg string) (token.Token, error) {
	l.failed = true
	l.err = &LexError{Span: span, Message: msg}
	return token.Token{}, l.err
}
