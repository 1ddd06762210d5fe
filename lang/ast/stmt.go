package ast

import (
	"strings"

	"github.com/dhamidi/ariel/lang/token"
)

type Statement interface {
	Node
	stmtNode()
}

// Scope is a brace-delimited block.
type Scope struct {
	Start token.Position
	Body  []Statement
}

// VariableDeclaration is `let name: T = value;` or `let name := value;`.
// Type is nil for the inferred form.
type VariableDeclaration struct {
	Name  *token.Token
	Type  *DataType
	Value Statement
}

type Return struct {
	Keyword *token.Token
	Value   Statement
}

// ImplicitReturn is a block's trailing expression without a semicolon.
type ImplicitReturn struct {
	Value Expression
}

type ExpressionStatement struct {
	Expr Expression
}

type Defer struct {
	Keyword *token.Token
	Stmt    Statement
}

// Conditional holds `if`. Else is nil without an else branch; for
// `else if` it is a scope containing the nested Conditional.
type Conditional struct {
	Keyword *token.Token
	Cond    Expression
	Then    *Scope
	Else    *Scope
}

type MatchCase struct {
	Pattern Expression
	Body    *Scope
}

// Match keeps its cases in source order; patterns are unique.
type Match struct {
	Keyword *token.Token
	On      Expression
	Cases   []MatchCase
}

// Loop is `loop { ... }`, equivalent to `while true`. Body is nil for
// `loop;`.
type Loop struct {
	Keyword *token.Token
	Body    *Scope
}

type While struct {
	Keyword *token.Token
	Cond    Expression
	Body    *Scope
}

// For is the C-style loop. Every clause and the body may be absent.
type For struct {
	Keyword *token.Token
	Init    Statement
	Cond    Expression
	Incr    Expression
	Body    *Scope
}

type Break struct {
	Keyword *token.Token
}

type Continue struct {
	Keyword *token.Token
}

func (*Scope) stmtNode()               {}
func (*VariableDeclaration) stmtNode() {}
func (*Return) stmtNode()              {}
func (*ImplicitReturn) stmtNode()      {}
func (*ExpressionStatement) stmtNode() {}
func (*Defer) stmtNode()               {}
func (*Conditional) stmtNode()         {}
func (*Match) stmtNode()               {}
func (*Loop) stmtNode()                {}
func (*While) stmtNode()               {}
func (*For) stmtNode()                 {}
func (*Break) stmtNode()               {}
func (*Continue) stmtNode()            {}

func (s *Scope) Pos() token.Position               { return s.Start }
func (s *VariableDeclaration) Pos() token.Position { return s.Name.Pos }
func (s *Return) Pos() token.Position              { return s.Keyword.Pos }
func (s *ImplicitReturn) Pos() token.Position      { return s.Value.Pos() }
func (s *ExpressionStatement) Pos() token.Position { return s.Expr.Pos() }
func (s *Defer) Pos() token.Position               { return s.Keyword.Pos }
func (s *Conditional) Pos() token.Position         { return s.Keyword.Pos }
func (s *Match) Pos() token.Position               { return s.Keyword.Pos }
func (s *Loop) Pos() token.Position                { return s.Keyword.Pos }
func (s *While) Pos() token.Position               { return s.Keyword.Pos }
func (s *For) Pos() token.Position                 { return s.Keyword.Pos }
func (s *Break) Pos() token.Position               { return s.Keyword.Pos }
func (s *Continue) Pos() token.Position            { return s.Keyword.Pos }

func (s *Scope) String() string {
	if s == nil {
		return ";"
	}
	if len(s.Body) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.Body))
	for i, stmt := range s.Body {
		parts[i] = stmt.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (s *VariableDeclaration) String() string {
	if s.Type == nil {
		return "let " + s.Name.Lexeme + " := " + valueString(s.Value) + ";"
	}
	return "let " + s.Name.Lexeme + ": " + s.Type.String() + " = " + valueString(s.Value) + ";"
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + valueString(s.Value) + ";"
}

func (s *ImplicitReturn) String() string      { return s.Value.String() }
func (s *ExpressionStatement) String() string { return s.Expr.String() + ";" }

func (s *Defer) String() string {
	inner := s.Stmt.String()
	if !strings.HasSuffix(inner, ";") {
		inner += ";"
	}
	return "defer " + inner
}

func (s *Conditional) String() string {
	out := "if " + s.Cond.String() + " " + s.Then.String()
	if s.Else == nil {
		return out
	}
	if len(s.Else.Body) == 1 {
		if nested, ok := s.Else.Body[0].(*Conditional); ok {
			return out + " else " + nested.String()
		}
	}
	return out + " else " + s.Else.String()
}

func (s *Match) String() string {
	parts := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		parts[i] = c.Pattern.String() + " -> " + c.Body.String()
	}
	if len(parts) == 0 {
		return "match " + s.On.String() + " {}"
	}
	return "match " + s.On.String() + " { " + strings.Join(parts, ", ") + " }"
}

func (s *Loop) String() string {
	if s.Body == nil {
		return "loop;"
	}
	return "loop " + s.Body.String()
}

func (s *While) String() string {
	if s.Body == nil {
		return "while " + s.Cond.String() + ";"
	}
	return "while " + s.Cond.String() + " " + s.Body.String()
}

func (s *For) String() string {
	var sb strings.Builder
	sb.WriteString("for (")
	switch init := s.Init.(type) {
	case nil:
		sb.WriteString(";")
	default:
		sb.WriteString(init.String())
	}
	if s.Cond != nil {
		sb.WriteString(" " + s.Cond.String())
	}
	sb.WriteString(";")
	if s.Incr != nil {
		sb.WriteString(" " + s.Incr.String())
	}
	sb.WriteString(")")
	if s.Body == nil {
		sb.WriteString(";")
	} else {
		sb.WriteString(" " + s.Body.String())
	}
	return sb.String()
}

func (s *Break) String() string    { return "break;" }
func (s *Continue) String() string { return "continue;" }

// Desugar rewrites the loop as `while true`.
func (s *Loop) Desugar() *While {
	cond := &Literal{Token: &token.Token{
		Kind:   token.True,
		Lexeme: "true",
		Pos:    s.Keyword.Pos,
	}}
	return &While{Keyword: s.Keyword, Cond: cond, Body: s.Body}
}

// valueString renders a statement used as a value without its terminator.
func valueString(s Statement) string {
	if e, ok := s.(*ExpressionStatement); ok {
		return e.Expr.String()
	}
	return s.String()
}
