// Package vm executes a flat compiler.Cell stream against a stack of
// value.Value, grounded on informatter-nilan/vm/vm.go's pc-driven dispatch
// loop over a byte-stream Bytecode, retargeted to the tagged Cell stream
// (compiler.Cell) and the closed value.Value runtime type.
package vm

import (
	"vela/compiler"
	"vela/diag"
	"vela/value"
)

// VM holds the operand stack, the variable store keyed by compile-time
// LabelId, and the first runtime error encountered (if any).
type VM struct {
	stack         Stack
	vars          map[compiler.LabelId]value.Value
	pendingErr    error
	maxStackDepth int  // 0 means unlimited
	traceCalls    bool
}

func New() *VM {
	return &VM{vars: map[compiler.LabelId]value.Value{}}
}

// NewWithConfig constructs a VM honoring a config.Config's [vm] section: a
// maxStackDepth of 0 leaves the operand stack unbounded, and traceCalls
// logs every dispatched instruction through diag.Log.
func NewWithConfig(maxStackDepth int, traceCalls bool) *VM {
	vm := New()
	vm.maxStackDepth = maxStackDepth
	vm.traceCalls = traceCalls
	return vm
}

// Run executes cells from pc 0 until it runs off the end of the stream or a
// runtime error occurs. It returns the first error (if any); a nil error
// means execution finished normally, and StackTop reports the result left
// behind, if one was.
func Run(cells []compiler.Cell) (*VM, error) {
	vm := New()
	err := vm.run(cells)
	return vm, err
}

// RunWithConfig is Run, but executes on a VM built via NewWithConfig so the
// configured stack-depth limit and call tracing apply.
func RunWithConfig(cells []compiler.Cell, maxStackDepth int, traceCalls bool) (*VM, error) {
	vm := NewWithConfig(maxStackDepth, traceCalls)
	err := vm.run(cells)
	return vm, err
}

// push enforces maxStackDepth (when configured) before delegating to the
// operand stack; every instruction that grows the stack routes through it.
func (vm *VM) push(v value.Value) error {
	if vm.maxStackDepth > 0 && len(vm.stack) >= vm.maxStackDepth {
		return &RuntimeError{Message: "operand stack exceeded configured max_stack_depth"}
	}
	vm.stack.Push(v)
	return nil
}

func (vm *VM) run(cells []compiler.Cell) error {
	pc := 0
	for pc < len(cells) {
		cell := cells[pc]
		if cell.Kind != compiler.KindInstruction {
			err := &DeveloperError{Message: "pc landed on a non-Instruction cell"}
			diag.Log.Error(err)
			return vm.fail(err)
		}
		if vm.traceCalls {
			diag.Log.Infof("pc=%d instr=%s", pc, cell.Instr)
		}

		switch cell.Instr {
		case compiler.Load:
			v := cells[pc+1].Val
			if err := vm.push(v); err != nil {
				return vm.fail(err)
			}
			pc += 2

		case compiler.Pop:
			if _, ok := vm.stack.Pop(); !ok {
				return vm.fail(&DeveloperError{Message: "Pop on an empty stack"})
			}
			pc++

		case compiler.StoreVar:
			id := cells[pc+1].Label
			v, ok := vm.stack.Peek()
			if !ok {
				return vm.fail(&DeveloperError{Message: "StoreVar on an empty stack"})
			}
			vm.vars[id] = v
			pc += 2

		case compiler.LoadVar:
			id := cells[pc+1].Label
			v, found := vm.vars[id]
			if !found {
				return vm.fail(&RuntimeError{Message: "read of an unbound variable"})
			}
			if err := vm.push(v); err != nil {
				return vm.fail(err)
			}
			pc += 2

		case compiler.ClearVar:
			id := cells[pc+1].Label
			delete(vm.vars, id)
			pc += 2

		case compiler.Add, compiler.Subtract, compiler.Mul, compiler.Div:
			if err := vm.binaryArith(cell.Instr); err != nil {
				return vm.fail(err)
			}
			pc++

		case compiler.CmpEq, compiler.CmpLt, compiler.CmpLe, compiler.CmpGt, compiler.CmpGe:
			if err := vm.compare(cell.Instr); err != nil {
				return vm.fail(err)
			}
			pc++

		case compiler.Jump:
			delta := cells[pc+1].Offset
			pc += delta

		case compiler.JumpIfZero:
			delta := cells[pc+1].Offset
			v, ok := vm.stack.Pop()
			if !ok {
				return vm.fail(&DeveloperError{Message: "JumpIfZero on an empty stack"})
			}
			if v.IsZero() {
				pc += delta
			} else {
				pc += 2
			}

		case compiler.CallFunction:
			fn := cells[pc+1].Builtin
			argc := cells[pc+2].ArgCount
			if err := vm.callBuiltin(fn, argc); err != nil {
				return vm.fail(err)
			}
			pc += 3

		default:
			err := &DeveloperError{Message: "unrecognized opcode in cell stream"}
			diag.Log.Error(err)
			return vm.fail(err)
		}
	}
	return nil
}

// binaryArith pops the right operand, then the left (matching source
// operand order: Left was lowered, then Right, so Right is topmost), and
// dispatches on the pair's kind.
func (vm *VM) binaryArith(op compiler.Opcode) error {
	r, ok := vm.stack.Pop()
	if !ok {
		return &DeveloperError{Message: "binary operator on an empty stack"}
	}
	l, ok := vm.stack.Pop()
	if !ok {
		return &DeveloperError{Message: "binary operator on an empty stack"}
	}

	// Unary-minus-as-"0.0 - expr" coercion: when the compiler's desugared
	// Float(0.0) meets an Integer right-hand side, coerce the left literal
	// to Integer(0) instead of promoting the right side to Float. Preserved
	// verbatim as a documented wart (SPEC_FULL.md §9), not "fixed".
	if op == compiler.Subtract && l.Kind() == value.FloatKind && l.AsFloat() == 0.0 && r.Kind() == value.Integer {
		l = value.Int(0)
	}

	switch {
	case l.Kind() == value.Integer && r.Kind() == value.Integer:
		return vm.intArith(op, l.AsInt(), r.AsInt())
	case l.Kind() == value.FloatKind && r.Kind() == value.FloatKind:
		return vm.floatArith(op, l.AsFloat(), r.AsFloat())
	case l.Kind() == value.Bool && r.Kind() == value.Bool:
		return vm.boolArith(op, l.AsBool(), r.AsBool())
	default:
		return &RuntimeError{Message: "Mismatched types in binary operation"}
	}
}

func (vm *VM) intArith(op compiler.Opcode, l, r int64) error {
	switch op {
	case compiler.Add:
		vm.stack.Push(value.Int(l + r))
	case compiler.Subtract:
		vm.stack.Push(value.Int(l - r))
	case compiler.Mul:
		vm.stack.Push(value.Int(l * r))
	case compiler.Div:
		if r == 0 {
			return &RuntimeError{Message: "integer division by zero"}
		}
		vm.stack.Push(value.Int(l / r))
	}
	return nil
}

func (vm *VM) floatArith(op compiler.Opcode, l, r float64) error {
	switch op {
	case compiler.Add:
		vm.stack.Push(value.Float(l + r))
	case compiler.Subtract:
		vm.stack.Push(value.Float(l - r))
	case compiler.Mul:
		vm.stack.Push(value.Float(l * r))
	case compiler.Div:
		vm.stack.Push(value.Float(l / r))
	}
	return nil
}

// boolArith implements the Bool-arithmetic wart: Add is logical or, Mul is
// also expressed with | (so it matches the logical-or case for Go bools),
// Div is logical and, and Subtract is "promoted numeric" — it converts both
// operands to 0/1 and subtracts, and the nonzero-ness of the difference is
// the Bool result. Preserved exactly per SPEC_FULL.md §9, not normalized
// into one family.
func (vm *VM) boolArith(op compiler.Opcode, l, r bool) error {
	switch op {
	case compiler.Add:
		vm.stack.Push(value.MakeBool(l || r))
	case compiler.Mul:
		vm.stack.Push(value.MakeBool(l || r))
	case compiler.Div:
		vm.stack.Push(value.MakeBool(l && r))
	case compiler.Subtract:
		li, ri := boolToInt64(l), boolToInt64(r)
		vm.stack.Push(value.MakeBool(li-ri != 0))
	}
	return nil
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// compare implements the CmpEq/CmpLt/CmpLe/CmpGt/CmpGe family, a SPEC_FULL
// addition resolving the comparison-opcode Open Question (SPEC_FULL.md §9).
// Bools are rejected; Integer and Float compare directly, producing
// Integer(1)/Integer(0) via value.BoolToInt so the result feeds straight
// into JumpIfZero.
func (vm *VM) compare(op compiler.Opcode) error {
	r, ok := vm.stack.Pop()
	if !ok {
		return &DeveloperError{Message: "comparison on an empty stack"}
	}
	l, ok := vm.stack.Pop()
	if !ok {
		return &DeveloperError{Message: "comparison on an empty stack"}
	}
	if l.Kind() == value.Bool || r.Kind() == value.Bool {
		return &RuntimeError{Message: "Bool operands are not comparable"}
	}

	lf, rf := l.Normalized(), r.Normalized()
	var result bool
	switch op {
	case compiler.CmpEq:
		result = lf == rf
	case compiler.CmpLt:
		result = lf < rf
	case compiler.CmpLe:
		result = lf <= rf
	case compiler.CmpGt:
		result = lf > rf
	case compiler.CmpGe:
		result = lf >= rf
	}
	vm.stack.Push(value.BoolToInt(result))
	return nil
}

func (vm *VM) fail(err error) error {
	vm.pendingErr = err
	return err
}

// StackTop reports the value left on top of the stack once execution has
// finished, if any. It returns false whenever a runtime error occurred,
// even if the stack happens to be non-empty.
func (vm *VM) StackTop() (value.Value, bool) {
	if vm.pendingErr != nil {
		return value.Value{}, false
	}
	return vm.stack.Peek()
}
