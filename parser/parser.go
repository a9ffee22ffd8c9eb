// Package parser implements the precedence-climbing expression/statement
// parser: one-token pushback over the lexer, a numeric priority table
// (rather than informatter-nilan/parser/parser.go's one-Go-function-per-
// precedence-level recursive descent), and first-error-only semantics
// (rather than the teacher's multi-error resyncing Parse loop).
package parser

import (
	"vela/ast"
	"vela/lexer"
	"vela/token"
	"vela/value"
)

var priority = map[token.Op]int{
	token.PlusPlus: 6, token.MinusMinus: 6,
	token.Star: 5, token.Slash: 5,
	token.Plus: 4, token.Minus: 4, token.Lt: 4, token.Le: 4, token.Gt: 4, token.Ge: 4,
	token.Or: 3, token.OrOr: 3, token.And: 3, token.AndAnd: 3, token.EqualsEquals: 3,
	token.Shl: 2, token.Shr: 2,
	token.Equals: 1, token.PlusEquals: 1, token.MinusEquals: 1,
	token.StarEquals: 1, token.SlashEquals: 1, token.AndEquals: 1, token.OrEquals: 1,
}

// Parser consumes a Lexer through a single-token pushback buffer.
type Parser struct {
	lex    *lexer.Lexer
	pushed *token.Token
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

func (p *Parser) next() (token.Token, error) {
	if p.pushed != nil {
		t := *p.pushed
		p.pushed = nil
		return t, nil
	}
	return p.lex.Next()
}

func (p *Parser) pushBack(t token.Token) {
	p.pushed = &t
}

func (p *Parser) errorAt(span token.Span, msg string) error {
	return &SyntaxError{Span: span, Message: msg}
}

func (p *Parser) expect(typ token.Type, msg string) (token.Token, error) {
	t, err := p.next()
	if err != nil {
		return token.Token{}, err
	}
	if t.Type != typ {
		return token.Token{}, p.errorAt(t.Span, msg)
	}
	return t, nil
}

// Parse parses one top-level expression and requires the input be fully
// consumed afterward.
func (p *Parser) Parse() (ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Type != token.Eof {
		return nil, p.errorAt(t.Span, "Found unexpected token after program")
	}
	return expr, nil
}

func (p *Parser) parseExpression() (ast.Node, error) {
	left, err := p.parseOneExpression()
	if err != nil {
		return nil, err
	}
	return p.parseWithMinPriority(0, left)
}

// parseWithMinPriority implements precedence climbing: while the next
// operator's priority is >= minP, consume it and recursively parse the right
// side at one above the *consumed operator's* own priority, so operators of
// equal priority associate to the left.
func (p *Parser) parseWithMinPriority(minP int, left ast.Node) (ast.Node, error) {
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Type != token.Operator {
			p.pushBack(t)
			return left, nil
		}
		prio, ok := priority[t.Op]
		if !ok || prio < minP {
			p.pushBack(t)
			return left, nil
		}
		right, err := p.parseOneExpression()
		if err != nil {
			return nil, err
		}
		right, err = p.parseWithMinPriority(prio+1, right)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Op: t.Op, Left: left, Right: right}
	}
}

func (p *Parser) parseOneExpression() (ast.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t.Type {
	case token.SemiColon:
		return nil, p.errorAt(t.Span, "Stray semicolon")
	case token.Keyword:
		return p.parseKeyword(t)
	case token.Number:
		return &ast.ConstantExpression{Value: value.Int(int64(t.Number))}, nil
	case token.Float:
		return &ast.ConstantExpression{Value: value.Float(t.Float)}, nil
	case token.LeftParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expected ')'"); err != nil {
			return nil, err
		}
		return &ast.ParenthesizedExpression{Inner: inner}, nil
	case token.LeftBrace:
		return p.parseBlock()
	case token.Identifier:
		return p.parseIdentifierOrCall(t)
	case token.RightParen:
		return nil, p.errorAt(t.Span, "unbalanced ')'")
	case token.RightBrace:
		return nil, p.errorAt(t.Span, "unbalanced '}'")
	case token.Comma:
		return nil, p.errorAt(t.Span, "stray ','")
	case token.Operator:
		operand, err := p.parseOneExpression()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Op: t.Op, Operand: operand}, nil
	case token.Eof:
		return nil, p.errorAt(t.Span, "Unexpected EOF")
	}
	return nil, p.errorAt(t.Span, "unexpected token")
}

func (p *Parser) parseKeyword(t token.Token) (ast.Node, error) {
	switch t.Kw {
	case token.If:
		return p.parseIf()
	case token.Else:
		return nil, p.errorAt(t.Span, "extraneous else keyword")
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	}
	return nil, p.errorAt(t.Span, "unknown keyword")
}

func (p *Parser) parseIf() (ast.Node, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expected ')'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	elseNode, err := p.tryParseElseChain()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Condition: cond, Body: body, Else: elseNode}, nil
}

// tryParseElseChain consumes a trailing `else` / `else if` chain, or leaves
// the stream untouched (pushing back what it peeked) if there is none.
func (p *Parser) tryParseElseChain() (ast.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Type != token.Keyword || t.Kw != token.Else {
		p.pushBack(t)
		return nil, nil
	}

	t2, err := p.next()
	if err != nil {
		return nil, err
	}
	if t2.Type == token.Keyword && t2.Kw == token.If {
		if _, err := p.expect(token.LeftParen, "expected '(' after if"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "expected ')'"); err != nil {
			return nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tail, err := p.tryParseElseChain()
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Condition: cond, Body: body, Else: tail}, nil
	}

	p.pushBack(t2)
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Condition: nil, Body: body, Else: nil}, nil
}

func (p *Parser) parseFor() (ast.Node, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after for"); err != nil {
		return nil, err
	}
	init, err := p.parseOptionalClause(token.SemiColon)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseOptionalClause(token.SemiColon)
	if err != nil {
		return nil, err
	}
	after, err := p.parseOptionalClause(token.RightParen)
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Init: init, Condition: cond, After: after, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen, "expected ')'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Init: nil, Condition: cond, After: nil, Body: body}, nil
}

// parseOptionalClause parses an expression terminated by terminator, or
// returns nil if terminator appears immediately. Either way the terminator
// itself is consumed.
func (p *Parser) parseOptionalClause(terminator token.Type) (ast.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Type == terminator {
		return nil, nil
	}
	p.pushBack(t)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(terminator, "expected clause terminator"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseBlock() (ast.Node, error) {
	var stmts []ast.Node
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Type == token.RightBrace {
			return &ast.Block{Statements: stmts, LastExpression: nil}, nil
		}
		p.pushBack(t)

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		t2, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t2.Type {
		case token.RightBrace:
			return &ast.Block{Statements: stmts, LastExpression: expr}, nil
		case token.SemiColon:
			stmts = append(stmts, &ast.Statement{Inner: expr})
		default:
			return nil, p.errorAt(t2.Span, "expected ';' or '}'")
		}
	}
}

func (p *Parser) parseIdentifierOrCall(t token.Token) (ast.Node, error) {
	next, err := p.next()
	if err != nil {
		return nil, err
	}
	if next.Type != token.LeftParen {
		p.pushBack(next)
		return &ast.VariableBinding{Name: t.Name}, nil
	}

	var args []ast.Node
	peekClose, err := p.next()
	if err != nil {
		return nil, err
	}
	if peekClose.Type == token.RightParen {
		return &ast.FunctionCall{Name: t.Name, Args: args}, nil
	}
	p.pushBack(peekClose)

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Type == token.RightParen {
			break
		}
		if sep.Type != token.Comma {
			return nil, p.errorAt(sep.Span, "expected ',' or ')'")
		}
	}
	return &ast.FunctionCall{Name: t.Name, Args: args}, nil
}
