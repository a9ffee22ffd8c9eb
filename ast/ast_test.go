package ast

import (
	"testing"

	"vela/token"
	"vela/value"
)

func TestDumpConstant(t *testing.T) {
	n := &ConstantExpression{Value: value.Int(7)}
	got := Dump(n).(map[string]any)
	if got["node"] != "ConstantExpression" {
		t.Errorf("node = %v, want ConstantExpression", got["node"])
	}
	if got["value"] != "Value(Integer, 7)" {
		t.Errorf("value = %v, want Value(Integer, 7)", got["value"])
	}
}

func TestDumpVariable(t *testing.T) {
	n := &VariableBinding{Name: "foo"}
	got := Dump(n).(map[string]any)
	if got["name"] != "foo" {
		t.Errorf("name = %v, want foo", got["name"])
	}
}

func TestDumpBinary(t *testing.T) {
	n := &BinaryOperation{
		Op:    token.Plus,
		Left:  &ConstantExpression{Value: value.Int(1)},
		Right: &ConstantExpression{Value: value.Int(2)},
	}
	got := Dump(n).(map[string]any)
	if got["op"] != "+" {
		t.Errorf("op = %v, want +", got["op"])
	}
}

func TestDumpNilIsNil(t *testing.T) {
	if Dump(nil) != nil {
		t.Error("Dump(nil) should be nil")
	}
}

func TestDumpBlock(t *testing.T) {
	n := &Block{
		Statements:     []Node{&Statement{Inner: &ConstantExpression{Value: value.Int(1)}}},
		LastExpression: &ConstantExpression{Value: value.Int(2)},
	}
	got := Dump(n).(map[string]any)
	stmts, ok := got["statements"].([]any)
	if !ok || len(stmts) != 1 {
		t.Errorf("statements = %v, want one entry", got["statements"])
	}
	if got["tail"] == nil {
		t.Error("tail = nil, want the dumped last expression")
	}
}

func TestDumpConditionalWithNilElse(t *testing.T) {
	n := &ConditionalExpression{
		Condition: &VariableBinding{Name: "x"},
		Body:      &ConstantExpression{Value: value.Int(1)},
		Else:      nil,
	}
	got := Dump(n).(map[string]any)
	if got["else"] != nil {
		t.Errorf("else = %v, want nil", got["else"])
	}
}

func TestStringProducesNonEmptyOutput(t *testing.T) {
	n := &ForLoop{
		Init:      &BinaryOperation{Op: token.Equals, Left: &VariableBinding{Name: "i"}, Right: &ConstantExpression{Value: value.Int(0)}},
		Condition: &BinaryOperation{Op: token.Lt, Left: &VariableBinding{Name: "i"}, Right: &ConstantExpression{Value: value.Int(10)}},
		After:     &BinaryOperation{Op: token.Equals, Left: &VariableBinding{Name: "i"}, Right: &ConstantExpression{Value: value.Int(1)}},
		Body:      &Block{},
	}
	if s := String(n); s == "" {
		t.Error("String() returned empty output")
	}
}

func TestDumpFunctionCall(t *testing.T) {
	n := &FunctionCall{Name: "pow", Args: []Node{&ConstantExpression{Value: value.Int(2)}, &ConstantExpression{Value: value.Int(3)}}}
	got := Dump(n).(map[string]any)
	if got["name"] != "pow" {
		t.Errorf("name = %v, want pow", got["name"])
	}
	args, ok := got["args"].([]any)
	if !ok || len(args) != 2 {
		t.Errorf("args = %v, want 2 entries", got["args"])
	}
}
