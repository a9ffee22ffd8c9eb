package compiler

import (
	"testing"

	"vela/ast"
	"vela/token"
	"vela/value"
)

func TestGenerateConstant(t *testing.T) {
	cells, status, err := Generate(&ast.ConstantExpression{Value: value.Int(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Pushed {
		t.Errorf("status = %v, want Pushed", status)
	}
	if len(cells) != 2 || cells[0].Instr != Load || cells[1].Val.AsInt() != 5 {
		t.Errorf("cells = %v, want [Load, Value(5)]", cells)
	}
}

func TestGenerateUnresolvedVariable(t *testing.T) {
	_, _, err := Generate(&ast.VariableBinding{Name: "nope"})
	if err == nil {
		t.Fatal("expected a SemanticError for an unresolved variable")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Errorf("err = %T, want *SemanticError", err)
	}
}

func TestGenerateAssignmentReservesAndLoadsVar(t *testing.T) {
	// a = 1; a  -- the reload must reference the same LabelId the store used.
	root := &ast.Block{
		Statements: []ast.Node{
			&ast.Statement{Inner: &ast.BinaryOperation{
				Op: token.Equals, Left: &ast.VariableBinding{Name: "a"}, Right: &ast.ConstantExpression{Value: value.Int(1)},
			}},
		},
		LastExpression: &ast.VariableBinding{Name: "a"},
	}
	cells, status, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Pushed {
		t.Errorf("status = %v, want Pushed", status)
	}

	var storeID, loadID LabelId
	for i, c := range cells {
		if c.Kind == KindInstruction && c.Instr == StoreVar {
			storeID = cells[i+1].Label
		}
		if c.Kind == KindInstruction && c.Instr == LoadVar {
			loadID = cells[i+1].Label
		}
	}
	if storeID == 0 || storeID != loadID {
		t.Errorf("storeID = %d, loadID = %d, want equal nonzero ids", storeID, loadID)
	}
}

func TestGenerateAssignmentToNonVariableFails(t *testing.T) {
	root := &ast.BinaryOperation{
		Op: token.Equals, Left: &ast.ConstantExpression{Value: value.Int(1)}, Right: &ast.ConstantExpression{Value: value.Int(2)},
	}
	_, _, err := Generate(root)
	if err == nil {
		t.Fatal("expected a SemanticError for assignment to a non-variable")
	}
}

func TestGenerateUnknownFunctionFails(t *testing.T) {
	_, _, err := Generate(&ast.FunctionCall{Name: "bogus"})
	if err == nil {
		t.Fatal("expected a SemanticError for an unknown builtin")
	}
}

func TestGenerateFunctionCallArgumentsReversed(t *testing.T) {
	// pow(2, 3): args lower in reverse source order, so the cell stream
	// pushes 3 before 2.
	root := &ast.FunctionCall{Name: "pow", Args: []ast.Node{
		&ast.ConstantExpression{Value: value.Int(2)},
		&ast.ConstantExpression{Value: value.Int(3)},
	}}
	cells, _, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cells[1].Val.AsInt() != 3 {
		t.Errorf("first pushed literal = %v, want 3 (reversed)", cells[1].Val)
	}
	if cells[3].Val.AsInt() != 2 {
		t.Errorf("second pushed literal = %v, want 2", cells[3].Val)
	}
	last := cells[len(cells)-1]
	if last.Kind != KindArgumentCount || last.ArgCount != 2 {
		t.Errorf("last cell = %v, want ArgumentCount(2)", last)
	}
}

func TestGenerateBlockClearsVariablesOnScopeExit(t *testing.T) {
	root := &ast.Block{
		Statements: []ast.Node{
			&ast.Statement{Inner: &ast.BinaryOperation{
				Op: token.Equals, Left: &ast.VariableBinding{Name: "a"}, Right: &ast.ConstantExpression{Value: value.Int(1)},
			}},
		},
	}
	cells, status, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != DidntPush {
		t.Errorf("status = %v, want DidntPush (block has no trailing expression)", status)
	}
	found := false
	for _, c := range cells {
		if c.Kind == KindInstruction && c.Instr == ClearVar {
			found = true
		}
	}
	if !found {
		t.Error("expected a ClearVar cell for the scope's declared variable")
	}
}

func TestGenerateShadowingReusesOuterLabelId(t *testing.T) {
	// Testable Property: reserveVariableIdFor called in a nested frame with
	// the same name returns the outer id (reuse, not true shadowing).
	root := &ast.Block{
		Statements: []ast.Node{
			&ast.Statement{Inner: &ast.BinaryOperation{
				Op: token.Equals, Left: &ast.VariableBinding{Name: "a"}, Right: &ast.ConstantExpression{Value: value.Int(1)},
			}},
			&ast.Statement{Inner: &ast.Block{
				Statements: []ast.Node{
					&ast.Statement{Inner: &ast.BinaryOperation{
						Op: token.Equals, Left: &ast.VariableBinding{Name: "a"}, Right: &ast.ConstantExpression{Value: value.Int(2)},
					}},
				},
			}},
		},
	}
	cells, _, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []LabelId
	for i, c := range cells {
		if c.Kind == KindInstruction && c.Instr == StoreVar {
			ids = append(ids, cells[i+1].Label)
		}
	}
	if len(ids) != 2 || ids[0] != ids[1] {
		t.Errorf("store ids = %v, want two equal ids (reuse semantics)", ids)
	}
}

func TestGenerateUnaryMinusDesugarsToFloatZeroSubtract(t *testing.T) {
	cells, _, err := Generate(&ast.UnaryOperation{Op: token.Minus, Operand: &ast.ConstantExpression{Value: value.Int(5)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cells[0].Instr != Load || cells[1].Val.Kind() != value.FloatKind || cells[1].Val.AsFloat() != 0.0 {
		t.Errorf("first load = %v, want Load Value(Float, 0.0)", cells[:2])
	}
	last := cells[len(cells)-1]
	if last.Instr != Subtract {
		t.Errorf("last instruction = %v, want Subtract", last)
	}
}

func TestGenerateComparisonOpcodes(t *testing.T) {
	tests := []struct {
		op   token.Op
		want Opcode
	}{
		{token.EqualsEquals, CmpEq}, {token.Lt, CmpLt}, {token.Le, CmpLe}, {token.Gt, CmpGt}, {token.Ge, CmpGe},
	}
	for _, tt := range tests {
		root := &ast.BinaryOperation{Op: tt.op, Left: &ast.ConstantExpression{Value: value.Int(1)}, Right: &ast.ConstantExpression{Value: value.Int(2)}}
		cells, _, err := Generate(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last := cells[len(cells)-1]
		if last.Instr != tt.want {
			t.Errorf("op %s lowered to %v, want %v", tt.op, last.Instr, tt.want)
		}
	}
}

func TestGenerateConditionalEmitsJumps(t *testing.T) {
	root := &ast.ConditionalExpression{
		Condition: &ast.ConstantExpression{Value: value.Int(1)},
		Body:      &ast.ConstantExpression{Value: value.Int(2)},
		Else:      &ast.ConstantExpression{Value: value.Int(3)},
	}
	cells, status, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Pushed {
		t.Errorf("status = %v, want Pushed", status)
	}
	var hasJumpIfZero, hasJump bool
	for _, c := range cells {
		if c.Kind == KindInstruction && c.Instr == JumpIfZero {
			hasJumpIfZero = true
		}
		if c.Kind == KindInstruction && c.Instr == Jump {
			hasJump = true
		}
	}
	if !hasJumpIfZero || !hasJump {
		t.Errorf("cells = %v, want both JumpIfZero and Jump", cells)
	}
}

func TestGenerateForLoopEmitsBackwardJump(t *testing.T) {
	root := &ast.ForLoop{
		Condition: &ast.ConstantExpression{Value: value.Int(1)},
		Body:      &ast.Block{},
	}
	cells, status, err := Generate(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != DidntPush {
		t.Errorf("status = %v, want DidntPush", status)
	}
	foundBackward := false
	for i, c := range cells {
		if c.Kind == KindInstruction && c.Instr == Jump && cells[i+1].Offset < 0 {
			foundBackward = true
		}
	}
	if !foundBackward {
		t.Error("expected a negative-offset Jump cell closing the loop")
	}
}

func TestCellStringFormats(t *testing.T) {
	if got := InstrCell(Add).String(); got != "Bytecode(Instruction, Add)" {
		t.Errorf("InstrCell(Add).String() = %q", got)
	}
	if got := LabelCell(3).String(); got != "Bytecode(LabelId, 3)" {
		t.Errorf("LabelCell(3).String() = %q", got)
	}
	if got := ArgCountCell(2).String(); got != "Bytecode(ArgumentCount, 2)" {
		t.Errorf("ArgCountCell(2).String() = %q", got)
	}
	if got := OffsetCell(-4).String(); got != "Bytecode(Offset, -4)" {
		t.Errorf("OffsetCell(-4).String() = %q", got)
	}
}
