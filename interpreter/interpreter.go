// Package interpreter is a tree-walk evaluator over ast.Node, used by the
// evaluate CLI (SPEC_FULL.md §6) to answer a single expression without
// going through the bytecode generator/VM pipeline. Grounded on
// informatter-nilan/interpreter/interpreter.go's visitor-dispatch
// TreeWalkInterpreter, reworked to return (value.Value, error) pairs
// instead of panicking, now that ast.Node carries value.Value literals and
// token.Op operators directly.
package interpreter

import (
	"fmt"
	"math"

	"vela/ast"
	"vela/token"
	"vela/value"
)

// Interpreter walks an ast.Node tree, evaluating it against a chain of
// Environment frames.
type Interpreter struct {
	env *Environment
}

func New() *Interpreter {
	return &Interpreter{env: MakeEnvironment()}
}

type evalResult struct {
	val value.Value
	err error
}

func val(v value.Value) any  { return evalResult{val: v} }
func errv(err error) any     { return evalResult{err: err} }

// Evaluate walks n and returns its value. A Block with no trailing
// expression independently evaluates to Integer(0) here rather than to the
// bytecode generator's DidntPush status: the two evaluators are not
// required to agree on this edge case (SPEC_FULL.md §9).
func Evaluate(n ast.Node) (value.Value, error) {
	i := New()
	return i.eval(n)
}

func (i *Interpreter) eval(n ast.Node) (value.Value, error) {
	res, isResult := n.Accept(i).(evalResult)
	if !isResult {
		return value.Value{}, CreateRuntimeError("evaluator visitor returned an unexpected value")
	}
	return res.val, res.err
}

func (i *Interpreter) VisitConstant(n *ast.ConstantExpression) any {
	return val(n.Value)
}

func (i *Interpreter) VisitVariable(n *ast.VariableBinding) any {
	v, found := i.env.get(n.Name)
	if !found {
		return errv(CreateRuntimeError(fmt.Sprintf("Undefined variable: %s", n.Name)))
	}
	return val(v)
}

func (i *Interpreter) VisitUnary(n *ast.UnaryOperation) any {
	operand, err := i.eval(n.Operand)
	if err != nil {
		return errv(err)
	}
	switch n.Op {
	case token.Plus:
		return val(operand)
	case token.Minus:
		switch operand.Kind() {
		case value.Integer:
			return val(value.Int(-operand.AsInt()))
		case value.FloatKind:
			return val(value.Float(-operand.AsFloat()))
		default:
			return errv(CreateRuntimeError("unary minus requires a numeric operand"))
		}
	default:
		return errv(CreateRuntimeError(fmt.Sprintf("operator %s not supported for unary operations", n.Op)))
	}
}

func (i *Interpreter) VisitBinary(n *ast.BinaryOperation) any {
	if n.Op == token.Equals {
		target, isVar := n.Left.(*ast.VariableBinding)
		if !isVar {
			return errv(CreateRuntimeError("Assigned to something that was not a variable"))
		}
		v, err := i.eval(n.Right)
		if err != nil {
			return errv(err)
		}
		if !i.env.assign(target.Name, v) {
			// Matches reserveVariableIdFor: an unresolved name declares fresh
			// in the innermost frame rather than failing.
			i.env.set(target.Name, v)
		}
		return val(v)
	}

	l, err := i.eval(n.Left)
	if err != nil {
		return errv(err)
	}
	r, err := i.eval(n.Right)
	if err != nil {
		return errv(err)
	}

	switch n.Op {
	case token.Plus:
		return i.arith(l, r, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case token.Minus:
		return i.arith(l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.Star:
		return i.arith(l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case token.Slash:
		return i.divide(l, r)
	case token.EqualsEquals:
		return val(value.BoolToInt(l.Normalized() == r.Normalized()))
	case token.Lt:
		return val(value.BoolToInt(l.Normalized() < r.Normalized()))
	case token.Le:
		return val(value.BoolToInt(l.Normalized() <= r.Normalized()))
	case token.Gt:
		return val(value.BoolToInt(l.Normalized() > r.Normalized()))
	case token.Ge:
		return val(value.BoolToInt(l.Normalized() >= r.Normalized()))
	default:
		return errv(CreateRuntimeError(fmt.Sprintf("operator %s not supported", n.Op)))
	}
}

func (i *Interpreter) arith(l, r value.Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) any {
	if l.Kind() == value.Integer && r.Kind() == value.Integer {
		return val(value.Int(intOp(l.AsInt(), r.AsInt())))
	}
	if l.Kind() == value.Bool || r.Kind() == value.Bool {
		return errv(CreateRuntimeError("operands must be numeric values"))
	}
	return val(value.Float(floatOp(l.Normalized(), r.Normalized())))
}

func (i *Interpreter) divide(l, r value.Value) any {
	if l.Kind() == value.Bool || r.Kind() == value.Bool {
		return errv(CreateRuntimeError("operands must be numeric values"))
	}
	if l.Kind() == value.Integer && r.Kind() == value.Integer {
		if r.AsInt() == 0 {
			return errv(CreateRuntimeError("Division by zero"))
		}
		return val(value.Int(l.AsInt() / r.AsInt()))
	}
	return val(value.Float(l.Normalized() / r.Normalized()))
}

func (i *Interpreter) VisitParenthesized(n *ast.ParenthesizedExpression) any {
	v, err := i.eval(n.Inner)
	if err != nil {
		return errv(err)
	}
	return val(v)
}

func (i *Interpreter) VisitStatement(n *ast.Statement) any {
	_, err := i.eval(n.Inner)
	if err != nil {
		return errv(err)
	}
	return val(value.MakeUnit())
}

func (i *Interpreter) VisitBlock(n *ast.Block) any {
	previous := i.env
	i.env = MakeNestedEnvironment(previous)
	defer func() { i.env = previous }()

	for _, s := range n.Statements {
		if _, err := i.eval(s); err != nil {
			return errv(err)
		}
	}

	if n.LastExpression != nil {
		v, err := i.eval(n.LastExpression)
		if err != nil {
			return errv(err)
		}
		return val(v)
	}
	return val(value.Int(0))
}

func (i *Interpreter) VisitFunctionCall(n *ast.FunctionCall) any {
	args := make([]value.Value, len(n.Args))
	for idx, a := range n.Args {
		v, err := i.eval(a)
		if err != nil {
			return errv(err)
		}
		args[idx] = v
	}

	switch n.Name {
	case "cos":
		if len(args) != 1 {
			return errv(CreateRuntimeError("cos expects exactly one argument"))
		}
		return val(value.Float(math.Cos(args[0].Normalized())))
	case "sin":
		if len(args) != 1 {
			return errv(CreateRuntimeError("sin expects exactly one argument"))
		}
		return val(value.Float(math.Sin(args[0].Normalized())))
	case "sqrt":
		if len(args) != 1 {
			return errv(CreateRuntimeError("sqrt expects exactly one argument"))
		}
		return val(value.Float(math.Sqrt(args[0].Normalized())))
	case "abs":
		if len(args) != 1 {
			return errv(CreateRuntimeError("abs expects exactly one argument"))
		}
		switch args[0].Kind() {
		case value.Integer:
			n := args[0].AsInt()
			if n < 0 {
				n = -n
			}
			return val(value.Int(n))
		case value.FloatKind:
			return val(value.Float(math.Abs(args[0].AsFloat())))
		default:
			return errv(CreateRuntimeError("abs does not accept a Bool argument"))
		}
	case "pow":
		if len(args) != 2 {
			return errv(CreateRuntimeError("pow expects exactly two arguments"))
		}
		return val(value.Float(math.Pow(args[0].Normalized(), args[1].Normalized())))
	default:
		return errv(CreateRuntimeError(fmt.Sprintf("Unknown function: %s", n.Name)))
	}
}

func (i *Interpreter) VisitConditional(n *ast.ConditionalExpression) any {
	if n.Condition == nil {
		v, err := i.eval(n.Body)
		if err != nil {
			return errv(err)
		}
		return val(v)
	}

	cond, err := i.eval(n.Condition)
	if err != nil {
		return errv(err)
	}
	if !cond.IsZero() {
		v, err := i.eval(n.Body)
		if err != nil {
			return errv(err)
		}
		return val(v)
	}
	if n.Else != nil {
		v, err := i.eval(n.Else)
		if err != nil {
			return errv(err)
		}
		return val(v)
	}
	return val(value.Int(0))
}

func (i *Interpreter) VisitForLoop(n *ast.ForLoop) any {
	previous := i.env
	i.env = MakeNestedEnvironment(previous)
	defer func() { i.env = previous }()

	if n.Init != nil {
		if _, err := i.eval(n.Init); err != nil {
			return errv(err)
		}
	}

	for {
		if n.Condition != nil {
			cond, err := i.eval(n.Condition)
			if err != nil {
				return errv(err)
			}
			if cond.IsZero() {
				break
			}
		}

		if _, err := i.eval(n.Body); err != nil {
			return errv(err)
		}

		if n.After != nil {
			if _, err := i.eval(n.After); err != nil {
				return errv(err)
			}
		}

		if n.Condition == nil && n.After == nil && n.Init == nil {
			// A `for (;;)` loop with no clauses at all would loop forever;
			// it is reported as an error after its first iteration instead.
			return errv(CreateRuntimeError("for loop has no terminating condition"))
		}
	}
	return val(value.Int(0))
}
