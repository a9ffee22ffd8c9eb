package ast

import (
	"vela/token"
	"vela/value"
)

// ConstantExpression is a literal value baked into the source.
type ConstantExpression struct {
	Value value.Value
}

func (n *ConstantExpression) Accept(v Visitor) any { return v.VisitConstant(n) }

// VariableBinding is a bare identifier used in expression position.
type VariableBinding struct {
	Name string
}

func (n *VariableBinding) Accept(v Visitor) any { return v.VisitVariable(n) }

// UnaryOperation is a prefix operator applied to a single operand. Only
// Plus/Minus are semantically meaningful; anything else is caught at
// lowering.
type UnaryOperation struct {
	Op      token.Op
	Operand Node
}

func (n *UnaryOperation) Accept(v Visitor) any { return v.VisitUnary(n) }

// BinaryOperation is an infix operator applied to two operands, including
// assignment (Op == token.Equals).
type BinaryOperation struct {
	Op    token.Op
	Left  Node
	Right Node
}

func (n *BinaryOperation) Accept(v Visitor) any { return v.VisitBinary(n) }

// ParenthesizedExpression wraps an expression written inside `( … )`.
type ParenthesizedExpression struct {
	Inner Node
}

func (n *ParenthesizedExpression) Accept(v Visitor) any { return v.VisitParenthesized(n) }

// Statement wraps an expression to make it side-effect-only: its value,
// if any, is discarded.
type Statement struct {
	Inner Node
}

func (n *Statement) Accept(v Visitor) any { return v.VisitStatement(n) }

// Block is a brace-delimited sequence of statements with an optional
// trailing expression, which becomes the block's own value.
type Block struct {
	Statements     []Node
	LastExpression Node // nil if the block has no trailing expression
}

func (n *Block) Accept(v Visitor) any { return v.VisitBlock(n) }

// FunctionCall invokes a built-in function by name with a list of argument
// expressions. There are no user-defined functions in this language.
type FunctionCall struct {
	Name string
	Args []Node
}

func (n *FunctionCall) Accept(v Visitor) any { return v.VisitFunctionCall(n) }

// ConditionalExpression is an if/else-if/else chain. Condition == nil marks
// a terminal else reached through the chain; Else == nil means there is no
// else arm at all.
type ConditionalExpression struct {
	Condition Node // nil only for a terminal else node
	Body      Node
	Else      Node // nil, or another *ConditionalExpression, or a body expression
}

func (n *ConditionalExpression) Accept(v Visitor) any { return v.VisitConditional(n) }

// ForLoop covers both `for` and `while`: a while loop is represented with
// Init == After == nil.
type ForLoop struct {
	Init      Node
	Condition Node
	After     Node
	Body      Node
}

func (n *ForLoop) Accept(v Visitor) any { return v.VisitForLoop(n) }
