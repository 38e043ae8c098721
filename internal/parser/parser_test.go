package parser

import (
	"testing"

	"lute/internal/ast"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return program
}

func parseSingleStatement(t *testing.T, input string) ast.Statement {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("program has %d statements, want 1", len(program.Statements))
	}
	return program.Statements[0]
}

func TestAssignStatements(t *testing.T) {
	tests := []struct {
		input        string
		expectedName string
		expectedRHS  string
	}{
		{"x = 5", "x", "5"},
		{"let x = 5", "x", "5"},
		{"y = true", "y", "true"},
		{"name = other", "name", "other"},
		{"f = -2.5", "f", "-2.5"},
	}

	for _, tt := range tests {
		stmt := parseSingleStatement(t, tt.input)

		assign, ok := stmt.(*ast.AssignStatement)
		if !ok {
			t.Fatalf("%q: statement is %T, want *ast.AssignStatement", tt.input, stmt)
		}
		ident, ok := assign.Target.(*ast.Identifier)
		if !ok {
			t.Fatalf("%q: target is %T, want *ast.Identifier", tt.input, assign.Target)
		}
		if ident.Value != tt.expectedName {
			t.Errorf("%q: target = %q, want %q", tt.input, ident.Value, tt.expectedName)
		}
		if assign.Value.String() != tt.expectedRHS {
			t.Errorf("%q: value = %q, want %q", tt.input, assign.Value.String(), tt.expectedRHS)
		}
	}
}

func TestCompoundAssignStatements(t *testing.T) {
	tests := []struct {
		input      string
		expectedOp ast.Operator
	}{
		{"x += 1", ast.OpAdd},
		{"x -= 1", ast.OpSub},
		{"x *= 2", ast.OpMul},
		{"x /= 2", ast.OpDiv},
	}

	for _, tt := range tests {
		stmt := parseSingleStatement(t, tt.input)

		compound, ok := stmt.(*ast.CompoundAssignStatement)
		if !ok {
			t.Fatalf("%q: statement is %T, want *ast.CompoundAssignStatement", tt.input, stmt)
		}
		if compound.Name.Value != "x" {
			t.Errorf("%q: name = %q, want x", tt.input, compound.Name.Value)
		}
		if compound.Operator != tt.expectedOp {
			t.Errorf("%q: operator = %q, want %q", tt.input, compound.Operator, tt.expectedOp)
		}
	}
}

func TestDestructuringAssignTarget(t *testing.T) {
	stmt := parseSingleStatement(t, "[a, *b] = parts")

	assign, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.AssignStatement", stmt)
	}
	pattern, ok := assign.Target.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("target is %T, want *ast.ListLiteral", assign.Target)
	}
	if len(pattern.Items) != 2 {
		t.Fatalf("pattern has %d items, want 2", len(pattern.Items))
	}
	if pattern.Items[0].IsPack || pattern.Items[0].IsSpread {
		t.Errorf("first item should be plain, got %+v", pattern.Items[0])
	}
	if !pattern.Items[1].IsPack {
		t.Errorf("second item should be marked pack")
	}
}

func TestIndexAssignTarget(t *testing.T) {
	stmt := parseSingleStatement(t, "xs[0] = 5")

	assign, ok := stmt.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.AssignStatement", stmt)
	}
	index, ok := assign.Target.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("target is %T, want *ast.IndexExpression", assign.Target)
	}
	if index.Name.Value != "xs" {
		t.Errorf("index name = %q, want xs", index.Name.Value)
	}
}

func TestIfStatement(t *testing.T) {
	input := `if x < 1 {
	a = 1
} elif x < 2 {
	a = 2
} elif x < 3 {
	a = 3
} else {
	a = 4
}`

	stmt := parseSingleStatement(t, input)

	ifStmt, ok := stmt.(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", stmt)
	}
	if ifStmt.Condition.String() != "(x < 1)" {
		t.Errorf("condition = %q, want (x < 1)", ifStmt.Condition.String())
	}
	if len(ifStmt.Elifs) != 2 {
		t.Fatalf("got %d elif branches, want 2", len(ifStmt.Elifs))
	}
	if ifStmt.Elifs[1].Condition.String() != "(x < 3)" {
		t.Errorf("second elif condition = %q, want (x < 3)", ifStmt.Elifs[1].Condition.String())
	}
	if ifStmt.Else == nil {
		t.Fatal("else branch missing")
	}
}

func TestWhileStatement(t *testing.T) {
	stmt := parseSingleStatement(t, "while i < 10 { i += 1 }")

	while, ok := stmt.(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStatement", stmt)
	}
	if while.Condition.String() != "(i < 10)" {
		t.Errorf("condition = %q, want (i < 10)", while.Condition.String())
	}
	if len(while.Body.Statements) != 1 {
		t.Errorf("body has %d statements, want 1", len(while.Body.Statements))
	}
}

func TestForStatement(t *testing.T) {
	stmt := parseSingleStatement(t, "for x in [1, 2, 3] { println(x) }")

	forStmt, ok := stmt.(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForStatement", stmt)
	}
	if forStmt.LoopVar.Value != "x" {
		t.Errorf("loop var = %q, want x", forStmt.LoopVar.Value)
	}
	if _, ok := forStmt.Iterable.(*ast.ListLiteral); !ok {
		t.Errorf("iterable is %T, want *ast.ListLiteral", forStmt.Iterable)
	}
}

func TestFunctionStatement(t *testing.T) {
	input := `fn add(x, y) {
	z = x + y
	return z
}`

	stmt := parseSingleStatement(t, input)

	fn, ok := stmt.(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionStatement", stmt)
	}
	if fn.Name.Value != "add" {
		t.Errorf("name = %q, want add", fn.Name.Value)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(fn.Parameters))
	}
	if fn.Parameters[0].Value != "x" || fn.Parameters[1].Value != "y" {
		t.Errorf("parameters = %s, %s; want x, y", fn.Parameters[0], fn.Parameters[1])
	}
	if len(fn.Body.Statements) != 1 {
		t.Errorf("body has %d statements, want 1", len(fn.Body.Statements))
	}
	if fn.Return == nil || fn.Return.String() != "z" {
		t.Errorf("return expression = %v, want z", fn.Return)
	}
}

func TestFunctionWithoutReturn(t *testing.T) {
	stmt := parseSingleStatement(t, "fn shout() { println(42) }")

	fn, ok := stmt.(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionStatement", stmt)
	}
	if fn.Return != nil {
		t.Errorf("return expression = %v, want nil", fn.Return)
	}
}

func TestImportStatement(t *testing.T) {
	stmt := parseSingleStatement(t, `import "./lib/util.lute"`)

	imp, ok := stmt.(*ast.ImportStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ImportStatement", stmt)
	}
	if imp.Path != "./lib/util.lute" {
		t.Errorf("path = %q, want ./lib/util.lute", imp.Path)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3));"},
		{"1 * 2 + 3", "((1 * 2) + 3);"},
		{"1 + 2 - 3", "((1 + 2) - 3);"},
		{"2 < 3 == true", "((2 < 3) == true);"},
		{"1 + 2 > 2", "((1 + 2) > 2);"},
		{"(1 + 2) * 3", "((1 + 2) * 3);"},
		{"a + f(b) * c", "(a + (f(b) * c));"},
		{"xs[1] + 1", "(xs[1] + 1);"},
		{"-2 + 3", "(-2 + 3);"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestExpressionsContinueAcrossNewlines(t *testing.T) {
	// newlines are whitespace: a trailing operator pulls in the next line,
	// and a semicolon forces the statement boundary
	stmt := parseSingleStatement(t, "x = 1\n- 2")
	assign := stmt.(*ast.AssignStatement)
	if assign.Value.String() != "(1 - 2)" {
		t.Errorf("value = %q, want (1 - 2)", assign.Value.String())
	}

	program := parseProgram(t, "x = 1;\n-2")
	if len(program.Statements) != 2 {
		t.Fatalf("program has %d statements, want 2", len(program.Statements))
	}
}

func TestListLiteralWithSpread(t *testing.T) {
	stmt := parseSingleStatement(t, "combined = [1, ...xs, 2]")

	assign := stmt.(*ast.AssignStatement)
	list, ok := assign.Value.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.ListLiteral", assign.Value)
	}
	if len(list.Items) != 3 {
		t.Fatalf("list has %d items, want 3", len(list.Items))
	}
	if !list.Items[1].IsSpread {
		t.Errorf("middle item should be marked spread")
	}
}

func TestComprehension(t *testing.T) {
	stmt := parseSingleStatement(t, "squares = [x * x for x in values]")

	assign := stmt.(*ast.AssignStatement)
	comp, ok := assign.Value.(*ast.Comprehension)
	if !ok {
		t.Fatalf("value is %T, want *ast.Comprehension", assign.Value)
	}
	if comp.Result.String() != "(x * x)" {
		t.Errorf("result = %q, want (x * x)", comp.Result.String())
	}
	if comp.LoopVar.Value != "x" {
		t.Errorf("loop var = %q, want x", comp.LoopVar.Value)
	}
	if comp.Source.String() != "values" {
		t.Errorf("source = %q, want values", comp.Source.String())
	}
}

func TestCompoundExpressionInParens(t *testing.T) {
	stmt := parseSingleStatement(t, "y = (x += 1)")

	assign := stmt.(*ast.AssignStatement)
	compound, ok := assign.Value.(*ast.CompoundExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.CompoundExpression", assign.Value)
	}
	if compound.Name.Value != "x" || compound.Operator != ast.OpAdd {
		t.Errorf("got %s %q, want x +", compound.Name.Value, compound.Operator)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"x = ",
		"if x < 1",
		"fn () { }",
		"for in xs { }",
		"[1, 2",
		"import 5",
		"- x",
	}

	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}
