package ast

import "fmt"

// dumper renders an AST to a nested map[string]any, mirroring
// informatter-nilan/parser/printer.go's astPrinter, which produces
// JSON-serializable maps for diagnostic printing rather than bespoke
// per-node string formatting.
type dumper struct{}

// Dump produces a diagnostic structural representation of n, suitable for
// JSON encoding.
func Dump(n Node) any {
	if n == nil {
		return nil
	}
	return n.Accept(&dumper{})
}

func (d *dumper) VisitConstant(n *ConstantExpression) any {
	return map[string]any{"node": "ConstantExpression", "value": n.Value.String()}
}

func (d *dumper) VisitVariable(n *VariableBinding) any {
	return map[string]any{"node": "VariableBinding", "name": n.Name}
}

func (d *dumper) VisitUnary(n *UnaryOperation) any {
	return map[string]any{"node": "UnaryOperation", "op": n.Op.String(), "operand": Dump(n.Operand)}
}

func (d *dumper) VisitBinary(n *BinaryOperation) any {
	return map[string]any{
		"node": "BinaryOperation", "op": n.Op.String(),
		"left": Dump(n.Left), "right": Dump(n.Right),
	}
}

func (d *dumper) VisitParenthesized(n *ParenthesizedExpression) any {
	return map[string]any{"node": "ParenthesizedExpression", "inner": Dump(n.Inner)}
}

func (d *dumper) VisitStatement(n *Statement) any {
	return map[string]any{"node": "Statement", "inner": Dump(n.Inner)}
}

func (d *dumper) VisitBlock(n *Block) any {
	stmts := make([]any, len(n.Statements))
	for i, s := range n.Statements {
		stmts[i] = Dump(s)
	}
	return map[string]any{"node": "Block", "statements": stmts, "tail": Dump(n.LastExpression)}
}

func (d *dumper) VisitFunctionCall(n *FunctionCall) any {
	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		args[i] = Dump(a)
	}
	return map[string]any{"node": "FunctionCall", "name": n.Name, "args": args}
}

func (d *dumper) VisitConditional(n *ConditionalExpression) any {
	return map[string]any{
		"node": "ConditionalExpression",
		"cond": Dump(n.Condition), "body": Dump(n.Body), "else": Dump(n.Else),
	}
}

func (d *dumper) VisitForLoop(n *ForLoop) any {
	return map[string]any{
		"node": "ForLoop",
		"init": Dump(n.Init), "cond": Dump(n.Condition), "after": Dump(n.After), "body": Dump(n.Body),
	}
}

// String gives a quick one-line diagnostic form without JSON encoding.
func String(n Node) string {
	return fmt.Sprintf("%v", Dump(n))
}
