package vm

import (
	"math"

	"vela/compiler"
	"vela/value"
)

// callBuiltin pops argc arguments (top-first, which recovers source order
// because the generator lowered them in reverse — see compiler/generator.go)
// and pushes the result. Grounded on informatter-nilan/vm/vm.go's builtin
// dispatch switch, extended with the Pow pop-order rule SPEC_FULL.md §4.5
// spells out explicitly.
func (vm *VM) callBuiltin(fn compiler.BuiltinFunctionId, argc int) error {
	switch fn {
	case compiler.Cos, compiler.Sin, compiler.Sqrt:
		if argc != 1 {
			return &RuntimeError{Message: "wrong argument count for a unary math function"}
		}
		x, ok := vm.stack.Pop()
		if !ok {
			return &DeveloperError{Message: "builtin call on an empty stack"}
		}
		var r float64
		switch fn {
		case compiler.Cos:
			r = math.Cos(x.Normalized())
		case compiler.Sin:
			r = math.Sin(x.Normalized())
		case compiler.Sqrt:
			r = math.Sqrt(x.Normalized())
		}
		vm.stack.Push(value.Float(r))
		return nil

	case compiler.Abs:
		if argc != 1 {
			return &RuntimeError{Message: "wrong argument count for abs"}
		}
		x, ok := vm.stack.Pop()
		if !ok {
			return &DeveloperError{Message: "builtin call on an empty stack"}
		}
		switch x.Kind() {
		case value.Integer:
			n := x.AsInt()
			if n < 0 {
				n = -n
			}
			vm.stack.Push(value.Int(n))
		case value.FloatKind:
			vm.stack.Push(value.Float(math.Abs(x.AsFloat())))
		default:
			return &RuntimeError{Message: "abs does not accept a Bool argument"}
		}
		return nil

	case compiler.Pow:
		if argc != 2 {
			return &RuntimeError{Message: "wrong argument count for pow"}
		}
		// pow(x, y): x was the first source argument, lowered last, so it
		// sits on top and pops first.
		x, ok := vm.stack.Pop()
		if !ok {
			return &DeveloperError{Message: "builtin call on an empty stack"}
		}
		y, ok := vm.stack.Pop()
		if !ok {
			return &DeveloperError{Message: "builtin call on an empty stack"}
		}
		if x.Kind() == value.Bool || y.Kind() == value.Bool {
			return &RuntimeError{Message: "pow does not accept a Bool argument"}
		}
		if x.Kind() != y.Kind() {
			return &RuntimeError{Message: "pow requires both arguments to be the same type"}
		}
		if x.Kind() == value.Integer {
			if y.AsInt() < 0 {
				return &RuntimeError{Message: "negative exponent for integer power"}
			}
			vm.stack.Push(value.Int(intPow(x.AsInt(), y.AsInt())))
			return nil
		}
		vm.stack.Push(value.Float(math.Pow(x.Normalized(), y.Normalized())))
		return nil

	default:
		return &DeveloperError{Message: "unrecognized builtin function id"}
	}
}

// intPow is square-and-multiply exponentiation for non-negative exponents.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
