package parser

import (
	"errors"
	"testing"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

func newParser(input string, opts ...Option) *Parser {
	return New(source.FromBytes("test.ar", []byte(input)), opts...)
}

func parseStatement(t *testing.T, input string) (ast.Statement, *diag.Collector) {
	t.Helper()
	c := &diag.Collector{}
	stmt, err := newParser(input, WithReporter(c)).ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement(%q) failed: %v", input, err)
	}
	return stmt, c
}

func parseError(t *testing.T, input string) *Error {
	t.Helper()
	_, err := newParser(input).ParseStatement()
	if err == nil {
		t.Fatalf("ParseStatement(%q) succeeded, want an error", input)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	return perr
}

func TestParseExpressionPrecedence(t *testing.T) {
	expr, err := newParser("2 + 3 * 4").ParseExpression()
	if err != nil {
		t.Fatal(err)
	}

	root, ok := expr.(*ast.Binary)
	if !ok || root.Op.Kind != token.Plus {
		t.Fatalf("root = %v, want +", expr)
	}
	right, ok := root.Right.(*ast.Binary)
	if !ok || right.Op.Kind != token.Star {
		t.Fatalf("right = %v, want *", root.Right)
	}
	if root.Left.String() != "2" || right.Left.String() != "3" || right.Right.String() != "4" {
		t.Errorf("operands = %s, %s, %s", root.Left, right.Left, right.Right)
	}
}

func TestParseExpressionLeftAssociative(t *testing.T) {
	expr, err := newParser("8 - 3 - 2").ParseExpression()
	if err != nil {
		t.Fatal(err)
	}

	root := expr.(*ast.Binary)
	if root.Right.String() != "2" {
		t.Errorf("right = %s, want 2", root.Right)
	}
	left, ok := root.Left.(*ast.Binary)
	if !ok || left.String() != "8 - 3" {
		t.Errorf("left = %v, want 8 - 3", root.Left)
	}
}

func TestParseExpressionLevels(t *testing.T) {
	tests := []struct {
		input string
		root  token.Kind
	}{
		{"a || b && c", token.Or},
		{"a | b & c", token.BitOr},
		{"a && b == c", token.And},
		{"a == b < c", token.EqualEqual},
		{"a < b + c", token.Less},
		{"a + b ** c", token.Plus},
		{"a % b * c", token.Mod},
		{"a << b // c", token.ShiftLeft},
		{"a != b >= c", token.NotEqual},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := newParser(tt.input).ParseExpression()
			if err != nil {
				t.Fatal(err)
			}
			b, ok := expr.(*ast.Binary)
			if !ok || b.Op.Kind != tt.root {
				t.Errorf("root = %v, want operator %v", expr, tt.root)
			}
		})
	}
}

func TestParseExpressionForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-x", "-x"},
		{"!!done", "!!done"},
		{"-a * b", "-a * b"},
		{"(a + b) * c", "(a + b) * c"},
		{"f()", "f()"},
		{"f(1, x, )", "f(1, x)"},
		{"a.b(c)::d()", "a.b(c)::d()"},
		{"f()()", "f()()"},
		{"&x", "&x"},
		{"[1, 2.5, \"s\",]", `[1, 2.5, "s"]`},
		{"[]", "[]"},
		{"_", "_"},
		{"nil", "nil"},
		{"a = b = c", "a = b = c"},
		{"a.b += 1", "a.b += 1"},
		{"a ? b : c ? d : e", "a ? b : c ? d : e"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := newParser(tt.input).ParseExpression()
			if err != nil {
				t.Fatal(err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	expr, err := newParser("a = b = c").ParseExpression()
	if err != nil {
		t.Fatal(err)
	}
	root := expr.(*ast.Binary)
	if _, ok := root.Left.(*ast.Name); !ok {
		t.Errorf("left = %v, want a name", root.Left)
	}
	inner, ok := root.Right.(*ast.Binary)
	if !ok || !inner.IsAssignment() {
		t.Errorf("right = %v, want b = c", root.Right)
	}
}

func TestParseAssignmentRestriction(t *testing.T) {
	perr := parseError(t, "3 = 4;")
	if perr.Kind != InvalidAssignmentExpression {
		t.Fatalf("Kind = %v, want InvalidAssignmentExpression", perr.Kind)
	}
	if perr.Token.Kind != token.Equal || perr.Operand.String() != "3" {
		t.Errorf("error names %q and %v, want = and 3", perr.Token.Lexeme, perr.Operand)
	}

	for _, input := range []string{"a.b = 4;", "a = 4;", "a::b -= 1;"} {
		stmt, _ := parseStatement(t, input)
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%q: got %T, want *ast.ExpressionStatement", input, stmt)
		}
		if b, ok := es.Expr.(*ast.Binary); !ok || !b.IsAssignment() {
			t.Errorf("%q: expression %v is not an assignment", input, es.Expr)
		}
	}
}

func TestParseTernaryAndMonad(t *testing.T) {
	expr, err := newParser("a > 1 ? b : c").ParseExpression()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := expr.(*ast.Ternary); !ok {
		t.Errorf("got %T, want *ast.Ternary", expr)
	}

	stmt, _ := parseStatement(t, "a?;")
	if m, ok := stmt.(*ast.ExpressionStatement).Expr.(*ast.Monad); !ok || m.Value.String() != "a" {
		t.Errorf("got %v, want monad over a", stmt)
	}

	call, err := newParser("f(x?, y)").ParseExpression()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := call.(*ast.FnCall).Args[0].(*ast.Monad); !ok {
		t.Errorf("first argument = %v, want a monad", call.(*ast.FnCall).Args[0])
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   ErrorKind
		column int
	}{
		{"&1", InvalidAddressOfValue, 1},
		{"&(a)", InvalidAddressOfValue, 1},
		{")", InvalidExpression, 0},
		{"(a", UnexpectedToken, 2},
		{"[1 2]", UnexpectedToken, 3},
		{"a.1", UnexpectedToken, 2},
		{"a ? b", UnexpectedToken, 5},
		{"1..2", InvalidExpression, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newParser(tt.input)
			expr, err := p.ParseExpression()
			if err == nil && !p.check(token.EOF) {
				err = p.fail(InvalidExpression)
			}
			if err == nil {
				t.Fatalf("parsed %v, want an error", expr)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *Error", err)
			}
			if perr.Kind != tt.kind || perr.Token.Pos.Column != tt.column {
				t.Errorf("got %v at column %d, want %v at column %d", perr.Kind, perr.Token.Pos.Column, tt.kind, tt.column)
			}
		})
	}
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"u8", "u8"},
		{"str", "str"},
		{"void*", "void*"},
		{"u8**", "u8**"},
		{"[i32]", "[i32]"},
		{"[u8*]*", "[u8*]*"},
		{"[[Point]]", "[[Point]]"},
		{"Point***", "Point***"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, err := newParser(tt.input).ParseDataType()
			if err != nil {
				t.Fatal(err)
			}
			if got := typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDataTypeStructure(t *testing.T) {
	typ, err := newParser("[u8*]*").ParseDataType()
	if err != nil {
		t.Fatal(err)
	}
	want := ast.PointerTo(ast.ArrayOf(ast.PointerTo(&ast.DataType{Kind: ast.U8})))
	if !typ.Equal(want) {
		t.Errorf("got %s, want Pointer(Array(Pointer(U8)))", typ)
	}
	if typ.Kind != ast.Pointer || typ.Elem.Kind != ast.Array || typ.Elem.Elem.Kind != ast.Pointer {
		t.Errorf("unexpected nesting in %s", typ)
	}
}

func TestParseDataTypeErrors(t *testing.T) {
	for _, input := range []string{"void", "8", "[u8", "[]", "*"} {
		t.Run(input, func(t *testing.T) {
			_, err := newParser(input).ParseDataType()
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	_, err := newParser("void").ParseDataType()
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != InvalidDataType {
		t.Errorf("void: got %v, want InvalidDataType", err)
	}
}

func TestParseConditional(t *testing.T) {
	stmt, _ := parseStatement(t, "if true {} else {}")
	cond, ok := stmt.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", stmt)
	}
	if cond.Then == nil || len(cond.Then.Body) != 0 {
		t.Errorf("Then = %v, want empty block", cond.Then)
	}
	if cond.Else == nil || len(cond.Else.Body) != 0 {
		t.Errorf("Else = %v, want empty block", cond.Else)
	}
	if lit, ok := cond.Cond.(*ast.Literal); !ok || lit.Token.Pos.Column != 3 {
		t.Errorf("Cond = %v, want literal at column 3", cond.Cond)
	}

	stmt, _ = parseStatement(t, "if true {}")
	if stmt.(*ast.Conditional).Else != nil {
		t.Error("Else should be nil without an else branch")
	}
}

func TestParseElseIf(t *testing.T) {
	stmt, _ := parseStatement(t, "if true {} else if nil {}")
	cond := stmt.(*ast.Conditional)
	if cond.Else == nil || len(cond.Else.Body) != 1 {
		t.Fatalf("Else = %v, want one nested conditional", cond.Else)
	}
	nested, ok := cond.Else.Body[0].(*ast.Conditional)
	if !ok {
		t.Fatalf("else body = %T, want *ast.Conditional", cond.Else.Body[0])
	}
	if nested.Cond.Pos().Column != 19 || nested.Else != nil {
		t.Errorf("nested = %v", nested)
	}
	if got, want := cond.String(), "if true {} else if nil {}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseConditionalWithBody(t *testing.T) {
	stmt, _ := parseStatement(t, "if 23 == 23 { return 42; } else { return -42; }")
	cond := stmt.(*ast.Conditional)
	if cond.Cond.String() != "23 == 23" {
		t.Errorf("Cond = %s", cond.Cond)
	}
	ret, ok := cond.Else.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("else body = %T, want *ast.Return", cond.Else.Body[0])
	}
	value := ret.Value.(*ast.ExpressionStatement).Expr.(*ast.Unary)
	if value.Op.Pos.Column != 41 || value.Value.Pos().Column != 42 {
		t.Errorf("unary at %d, operand at %d, want 41 and 42", value.Op.Pos.Column, value.Value.Pos().Column)
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		column   int
		expected token.Kind
	}{
		{"missing condition", "if { return 42; }", InvalidExpression, 3, 0},
		{"missing scope", "if true return 42;", UnexpectedToken, 8, token.LeftBrace},
		{"missing false branch", "if true { return 42; } else", UnexpectedToken, 27, token.LeftBrace},
		{"else if missing condition", "if true {} else if {} else {}", InvalidExpression, 19, 0},
		{"scope not closed", "{ 3 + 4;", UnexpectedToken, 8, token.RightBrace},
		{"inner scope not closed", "{ {3 + 4 }", UnexpectedToken, 10, token.RightBrace},
		{"let without value", "let _ : u8;", InvalidVariableDeclaration, 10, 0},
		{"let without type or value", "let x;", InvalidVariableDeclaration, 5, 0},
		{"let invalid type", "let _ : 8 = 10;", InvalidDataType, 8, 0},
		{"let bad name", "let 1 := 2;", UnexpectedToken, 4, token.Identifier},
		{"let while value", "let name : u8 = while true;", InvalidVariableAssignment, 16, 0},
		{"let loop value", "let name : u8 = loop;", InvalidVariableAssignment, 16, 0},
		{"let for value", "let name : u8 = for (let i := 0; i < 100; i += 1);", InvalidVariableAssignment, 16, 0},
		{"let return value", "let name : u8 = return;", InvalidVariableAssignment, 16, 0},
		{"let let value", "let name : u8 = let _ := 0;", InvalidVariableAssignment, 16, 0},
		{"let break value", "let name : u8 = break;", InvalidVariableAssignment, 16, 0},
		{"let continue value", "let name : u8 = continue;", InvalidVariableAssignment, 16, 0},
		{"while without condition", "while { 23 + 19; }", InvalidExpression, 6, 0},
		{"while without anything", "while;", InvalidExpression, 5, 0},
		{"while without body", "while true", LoopBodyNotFound, 10, 0},
		{"loop without body", "loop", LoopBodyNotFound, 4, 0},
		{"for invalid condition", "for (; if true { a += 10 }; );", InvalidExpression, 7, 0},
		{"for invalid increment", "for (; ; if true { a += 10 });", InvalidExpression, 9, 0},
		{"for without paren", "for ;", UnexpectedToken, 4, token.LeftParen},
		{"for without body", "for (;;) x", LoopBodyNotFound, 9, 0},
		{"defer without statement", "defer;", InvalidExpression, 5, 0},
		{"return statement without semicolon", "return if nil { 23 }", UnexpectedToken, 20, token.Semicolon},
		{"return expression without semicolon", "return 2 + 3", UnexpectedToken, 12, token.Semicolon},
		{"continue without semicolon", "continue", UnexpectedToken, 8, token.Semicolon},
		{"break without semicolon", "break", UnexpectedToken, 5, token.Semicolon},
		{"expression without terminator", "a b", InvalidExpression, 2, 0},
		{"match case without arrow", "match x { 1 {} }", UnexpectedToken, 12, token.Arrow},
		{"match cases without comma", "match x { 1 -> {} 2 -> {} }", UnexpectedToken, 18, token.RightBrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseError(t, tt.input)
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", perr.Kind, tt.kind, perr)
			}
			if perr.Token.Pos.Column != tt.column || perr.Token.Pos.Line != 1 {
				t.Errorf("at %d:%d, want 1:%d", perr.Token.Pos.Line, perr.Token.Pos.Column, tt.column)
			}
			if tt.kind == UnexpectedToken && perr.Expected != tt.expected {
				t.Errorf("Expected = %v, want %v", perr.Expected, tt.expected)
			}
		})
	}
}

func TestParseImplicitReturn(t *testing.T) {
	stmt, _ := parseStatement(t, "{ 3 + 4 }")
	scope := stmt.(*ast.Scope)
	if len(scope.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(scope.Body))
	}
	ret, ok := scope.Body[0].(*ast.ImplicitReturn)
	if !ok || ret.Value.String() != "3 + 4" {
		t.Errorf("got %v, want implicit return of 3 + 4", scope.Body[0])
	}

	stmt, _ = parseStatement(t, "{ 3 + 4; }")
	scope = stmt.(*ast.Scope)
	if _, ok := scope.Body[0].(*ast.ExpressionStatement); !ok || len(scope.Body) != 1 {
		t.Errorf("got %v, want one expression statement", scope.Body)
	}

	stmt, _ = parseStatement(t, "{ {3 + 4} }")
	inner := stmt.(*ast.Scope).Body[0].(*ast.Scope)
	if _, ok := inner.Body[0].(*ast.ImplicitReturn); !ok {
		t.Errorf("inner body = %v, want implicit return", inner.Body)
	}
}

func TestParseScopeRecovery(t *testing.T) {
	stmt, c := parseStatement(t, "{ 3 = 4; let x := 1; }")
	scope := stmt.(*ast.Scope)
	if len(scope.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(scope.Body))
	}
	if _, ok := scope.Body[0].(*ast.VariableDeclaration); !ok {
		t.Errorf("got %T, want the let statement", scope.Body[0])
	}
	if c.Len() != 1 {
		t.Errorf("got %d diagnostics, want 1", c.Len())
	}
}

func TestParseScopeMultipleDiagnostics(t *testing.T) {
	stmt, c := parseStatement(t, "{ let := 1; a; break 2; b }")
	scope := stmt.(*ast.Scope)
	if len(scope.Body) != 2 {
		t.Fatalf("got %d statements, want 2: %v", len(scope.Body), scope.Body)
	}
	if _, ok := scope.Body[1].(*ast.ImplicitReturn); !ok {
		t.Errorf("last statement = %T, want implicit return", scope.Body[1])
	}
	if c.Len() != 2 {
		t.Errorf("got %d diagnostics, want 2", c.Len())
	}
}

func TestParseVariableDeclaration(t *testing.T) {
	tests := []struct {
		input string
		typ   string
		value string
	}{
		{"let _ : u8 = 10;", "u8", "10"},
		{"let _ : Hello = 10;", "Hello", "10"},
		{"let x := 12 + 30;", "", "12 + 30"},
		{"let name : isize = if true {};", "isize", "if true {}"},
		{"let name : isize = match 42 {};", "isize", "match 42 {}"},
		{"let name : isize = {};", "isize", "{}"},
		{"let p: [u8]* = &buf;", "[u8]*", "&buf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, _ := parseStatement(t, tt.input)
			decl, ok := stmt.(*ast.VariableDeclaration)
			if !ok {
				t.Fatalf("got %T, want *ast.VariableDeclaration", stmt)
			}
			if tt.typ == "" && decl.Type != nil {
				t.Errorf("Type = %s, want inferred", decl.Type)
			}
			if tt.typ != "" && (decl.Type == nil || decl.Type.String() != tt.typ) {
				t.Errorf("Type = %v, want %s", decl.Type, tt.typ)
			}
			if got := valueOf(decl.Value); got != tt.value {
				t.Errorf("Value = %q, want %q", got, tt.value)
			}
		})
	}
}

func valueOf(s ast.Statement) string {
	if es, ok := s.(*ast.ExpressionStatement); ok {
		return es.Expr.String()
	}
	return s.String()
}

func TestParseSimpleStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"defer {};", "defer {};"},
		{"defer 2 + 40;", "defer 2 + 40;"},
		{"defer if a { b(); };", "defer if a { b(); };"},
		{"return;", "return;"},
		{"return 2 + 3;", "return 2 + 3;"},
		{"return if nil { 23 };", "return if nil { 23 };"},
		{"break;", "break;"},
		{"continue;", "continue;"},
		{"while true;", "while true;"},
		{"while nil { 23 + 19; }", "while nil { 23 + 19; }"},
		{"loop;", "loop;"},
		{"loop { break; }", "loop { break; }"},
		{"for ( ; ; );", "for (;;);"},
		{"for ( ; ; ) {}", "for (;;) {}"},
		{"for (let a := 0; ; );", "for (let a := 0;;);"},
		{"for (; true; );", "for (; true;);"},
		{"for (; ; a += 10);", "for (;; a += 10);"},
		{"for (let a:= 0; true; a += 10);", "for (let a := 0; true; a += 10);"},
		{"for (i = 0; i < 3; i += 1) { f(i); }", "for (i = 0; i < 3; i += 1) { f(i); }"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, _ := parseStatement(t, tt.input)
			if got := stmt.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseForClauses(t *testing.T) {
	stmt, _ := parseStatement(t, "for ( ; ; );")
	f := stmt.(*ast.For)
	if f.Init != nil || f.Cond != nil || f.Incr != nil || f.Body != nil {
		t.Errorf("got %+v, want every clause empty", f)
	}

	stmt, _ = parseStatement(t, "for (let a := 0; true; a += 10) {}")
	f = stmt.(*ast.For)
	if _, ok := f.Init.(*ast.VariableDeclaration); !ok {
		t.Errorf("Init = %T, want a variable declaration", f.Init)
	}
	if f.Cond == nil || f.Incr == nil || f.Body == nil {
		t.Errorf("got %+v, want every clause present", f)
	}
}

func TestParseLoopDesugars(t *testing.T) {
	stmt, _ := parseStatement(t, "loop { break; }")
	loop, ok := stmt.(*ast.Loop)
	if !ok {
		t.Fatalf("got %T, want *ast.Loop", stmt)
	}
	if got := loop.Desugar().String(); got != "while true { break; }" {
		t.Errorf("Desugar() = %q", got)
	}
}

func TestParseMatch(t *testing.T) {
	stmt, c := parseStatement(t, `match x { 1 -> { a; }, 2..5 -> {}, 6..=9 -> {}, "s" -> {}, 1 -> { b; }, _ -> {}, }`)
	m, ok := stmt.(*ast.Match)
	if !ok {
		t.Fatalf("got %T, want *ast.Match", stmt)
	}

	var patterns []string
	for _, c := range m.Cases {
		patterns = append(patterns, c.Pattern.String())
	}
	want := []string{"1", "2..5", "6..=9", `"s"`, "_"}
	if len(patterns) != len(want) {
		t.Fatalf("patterns = %v, want %v", patterns, want)
	}
	for i := range want {
		if patterns[i] != want[i] {
			t.Errorf("pattern %d = %s, want %s", i, patterns[i], want[i])
		}
	}

	if m.Cases[0].Body.String() != "{ a; }" {
		t.Errorf("first case body = %s, want the first occurrence", m.Cases[0].Body)
	}

	seq := m.Cases[1].Pattern.(*ast.Sequence)
	if seq.From != 2 || seq.To != 5 || seq.Inclusive {
		t.Errorf("2..5 parsed as %+v", seq)
	}
	if !m.Cases[2].Pattern.(*ast.Sequence).Inclusive {
		t.Error("6..=9 should be inclusive")
	}

	diags := c.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Pos.Column != 59 {
		t.Errorf("duplicate reported at column %d, want 59", diags[0].Pos.Column)
	}
}

func TestParseFile(t *testing.T) {
	input := `import "other.ar";

struct Point { x: i32, y: i32, }
enum Shape { Circle(f64), Square, Named(str) }

# forward declaration
fn area(s: Shape) -> f64;

fn main() -> i32 {
    let p: Point = make(1, 2);
    return 0;
}
`
	var imports []string
	c := &diag.Collector{}
	asts := newParser(input,
		WithReporter(c),
		WithImporter(ImporterFunc(func(path *token.Token) { imports = append(imports, path.Lexeme) })),
	).ParseFile()

	if c.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.Diagnostics())
	}
	if len(imports) != 1 || imports[0] != "other.ar" {
		t.Errorf("imports = %v, want [other.ar]", imports)
	}

	if len(asts.Structs) != 1 || asts.Structs[0].String() != "struct Point { x: i32, y: i32 }" {
		t.Errorf("structs = %v", asts.Structs)
	}
	if len(asts.Enums) != 1 || asts.Enums[0].String() != "enum Shape { Circle(f64), Square, Named(str) }" {
		t.Errorf("enums = %v", asts.Enums)
	}
	if len(asts.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(asts.Functions))
	}

	area, main := asts.Functions[0], asts.Functions[1]
	if !area.IsForwardDecl() || area.IsEntry() || area.Return.String() != "f64" {
		t.Errorf("area = %s", area)
	}
	if !main.IsEntry() || main.IsForwardDecl() || len(main.Body.Body) != 2 {
		t.Errorf("main = %s", main)
	}
	if main.Name.Pos.Line != 9 {
		t.Errorf("main declared on line %d, want 9", main.Name.Pos.Line)
	}
}

func TestParseFileRecovery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		functions []string
		diags     int
		kind      ErrorKind
	}{
		{"top-level junk", "let x := 1; 3 + 4; fn f() {}", []string{"f"}, 1, InvalidDeclaration},
		{"missing body", "fn a() fn b() {}", []string{"b"}, 1, InvalidFnBody},
		{"bad name", "fn 1() {} fn ok() {}", []string{"ok"}, 1, InvalidFnName},
		{"bad argument separator", "fn f(a: i32 b: i32) {} fn g() {}", []string{"g"}, 1, UnexpectedToken},
		{"bad return type", "fn f() -> 1 {} fn g() {}", []string{"g"}, 1, InvalidDataType},
		{"bad import", "import main; fn g() {}", []string{"g"}, 1, UnexpectedToken},
		{"statement errors stay local", "fn f() { 1 = 2; } fn g() {}", []string{"f", "g"}, 1, InvalidAssignmentExpression},
		{"unknown symbol", "@ fn g() {}", []string{"g"}, 1, InvalidDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &diag.Collector{}
			p := newParser(tt.input, WithReporter(c))
			asts := p.ParseFile()

			var names []string
			for _, fn := range asts.Functions {
				names = append(names, fn.Name.Lexeme)
			}
			if len(names) != len(tt.functions) {
				t.Fatalf("functions = %v, want %v", names, tt.functions)
			}
			for i := range names {
				if names[i] != tt.functions[i] {
					t.Errorf("function %d = %s, want %s", i, names[i], tt.functions[i])
				}
			}
			if c.Len() != tt.diags || p.Reported() != tt.diags {
				t.Errorf("got %d diagnostics, want %d: %v", c.Len(), tt.diags, c.Diagnostics())
			}
		})
	}
}

func TestParseFileStructAndEnumErrors(t *testing.T) {
	c := &diag.Collector{}
	asts := newParser("struct { } struct P { x i32 } enum E { A B } enum F { A(u8), B }", WithReporter(c)).ParseFile()

	if len(asts.Structs) != 0 {
		t.Errorf("structs = %v, want none", asts.Structs)
	}
	if len(asts.Enums) != 1 || asts.Enums[0].Name.Lexeme != "F" {
		t.Errorf("enums = %v, want only F", asts.Enums)
	}
	if c.Len() != 3 {
		t.Errorf("got %d diagnostics, want 3: %v", c.Len(), c.Diagnostics())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"if true return 42;", "[test.ar 1:8] :: there should have been a { after the token `true`, but instead there was a return."},
		{"3 = 4;", "[test.ar 1:2] :: Invalid assignment expression, can't assign a value to `3`!"},
		{"let x;", "[test.ar 1:5] :: You can create a variable using a dynamic definition `:=` followed by the value to assign to the variable, or by specifying the datatype statically. You cannot create a variable without assigning it a value."},
		{"x = \"open", "[test.ar 1:4] :: Unterminated string."},
		{"{ @ }", "[test.ar 1:2] :: Unknown symbol."},
		{"let x := while;", "[test.ar 1:9] :: while is not a value assignable to a variable."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := &diag.Collector{}
			_, err := newParser(tt.input, WithReporter(c)).ParseStatement()
			if err == nil {
				if c.Len() == 0 {
					t.Fatal("expected an error")
				}
				if got := c.Diagnostics()[0].String(); got != tt.want {
					t.Errorf("diagnostic = %q, want %q", got, tt.want)
				}
				return
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
