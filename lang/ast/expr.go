// Package ast defines the tree produced by the parser: expressions,
// statements, data types and top-level declarations.
//
// Every node owns its children exclusively. Tokens are the one exception:
// they are immutable and shared by pointer between nodes and diagnostics.
package ast

import (
	"strconv"
	"strings"

	"github.com/dhamidi/ariel/lang/token"
)

type Node interface {
	Pos() token.Position
	String() string
}

type Expression interface {
	Node
	exprNode()
}

// Name is a variable reference or the `_` wildcard.
type Name struct {
	Token *token.Token
}

// Literal covers integers, doubles, strings, booleans and nil.
type Literal struct {
	Token *token.Token
}

// GetField is `from.field`, or `from::field` when Static is set.
type GetField struct {
	From   Expression
	Field  *token.Token
	Static bool
}

// Binary also represents assignments; Op is then `=` or a compound
// assignment operator and Left is a Name or GetField.
type Binary struct {
	Left  Expression
	Op    *token.Token
	Right Expression
}

type Unary struct {
	Op    *token.Token
	Value Expression
}

type FnCall struct {
	Callee Expression
	Args   []Expression
}

type Nested struct {
	Start token.Position
	Inner Expression
}

type Ternary struct {
	Cond Expression
	Then Expression
	Else Expression
}

// Monad is the postfix `?` suffix.
type Monad struct {
	Value    Expression
	Question *token.Token
}

// Sequence is an integer range, valid only as a match pattern.
type Sequence struct {
	Start     token.Position
	From      int64
	To        int64
	Inclusive bool
}

type AddressOf struct {
	Amp *token.Token
	Of  Expression
}

type ArrayLiteral struct {
	Start  token.Position
	Values []Expression
}

func (*Name) exprNode()         {}
func (*Literal) exprNode()      {}
func (*GetField) exprNode()     {}
func (*Binary) exprNode()       {}
func (*Unary) exprNode()        {}
func (*FnCall) exprNode()       {}
func (*Nested) exprNode()       {}
func (*Ternary) exprNode()      {}
func (*Monad) exprNode()        {}
func (*Sequence) exprNode()     {}
func (*AddressOf) exprNode()    {}
func (*ArrayLiteral) exprNode() {}

func (e *Name) Pos() token.Position         { return e.Token.Pos }
func (e *Literal) Pos() token.Position      { return e.Token.Pos }
func (e *GetField) Pos() token.Position     { return e.From.Pos() }
func (e *Binary) Pos() token.Position       { return e.Left.Pos() }
func (e *Unary) Pos() token.Position        { return e.Op.Pos }
func (e *FnCall) Pos() token.Position       { return e.Callee.Pos() }
func (e *Nested) Pos() token.Position       { return e.Start }
func (e *Ternary) Pos() token.Position      { return e.Cond.Pos() }
func (e *Monad) Pos() token.Position        { return e.Value.Pos() }
func (e *Sequence) Pos() token.Position     { return e.Start }
func (e *AddressOf) Pos() token.Position    { return e.Amp.Pos }
func (e *ArrayLiteral) Pos() token.Position { return e.Start }

func (e *Name) String() string { return e.Token.Lexeme }

func (e *Literal) String() string {
	if e.Token.Kind == token.String {
		return strconv.Quote(e.Token.Lexeme)
	}
	return e.Token.Lexeme
}

func (e *GetField) String() string {
	sep := "."
	if e.Static {
		sep = "::"
	}
	return e.From.String() + sep + e.Field.Lexeme
}

func (e *Binary) String() string {
	return e.Left.String() + " " + e.Op.Lexeme + " " + e.Right.String()
}

func (e *Unary) String() string { return e.Op.Lexeme + e.Value.String() }

func (e *FnCall) String() string {
	return e.Callee.String() + "(" + joinExpressions(e.Args) + ")"
}

func (e *Nested) String() string { return "(" + e.Inner.String() + ")" }

func (e *Ternary) String() string {
	return e.Cond.String() + " ? " + e.Then.String() + " : " + e.Else.String()
}

func (e *Monad) String() string { return e.Value.String() + "?" }

func (e *Sequence) String() string {
	op := ".."
	if e.Inclusive {
		op = "..="
	}
	return strconv.FormatInt(e.From, 10) + op + strconv.FormatInt(e.To, 10)
}

func (e *AddressOf) String() string { return "&" + e.Of.String() }

func (e *ArrayLiteral) String() string {
	return "[" + joinExpressions(e.Values) + "]"
}

// IsAssignment reports whether b is an assignment rather than an operation.
func (e *Binary) IsAssignment() bool {
	return e.Op.Kind.IsAssignment()
}

// IsAssignable reports whether e may stand on the left of an assignment.
func IsAssignable(e Expression) bool {
	switch e.(type) {
	case *Name, *GetField:
		return true
	}
	return false
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
