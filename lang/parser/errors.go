package parser

import (
	"fmt"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/token"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	InvalidDataType
	InvalidVariableDeclaration
	LoopBodyNotFound
	InvalidAssignmentExpression
	InvalidExpression
	InvalidFnName
	InvalidFnBody
	InvalidVariableAssignment
	InvalidAddressOfValue
	DuplicateMatchPattern
	InvalidDeclaration
)

var errorKindNames = map[ErrorKind]string{
	UnexpectedToken:             "UnexpectedToken",
	InvalidDataType:             "InvalidDataType",
	InvalidVariableDeclaration:  "InvalidVariableDeclaration",
	LoopBodyNotFound:            "LoopBodyNotFound",
	InvalidAssignmentExpression: "InvalidAssignmentExpression",
	InvalidExpression:           "InvalidExpression",
	InvalidFnName:               "InvalidFnName",
	InvalidFnBody:               "InvalidFnBody",
	InvalidVariableAssignment:   "InvalidVariableAssignment",
	InvalidAddressOfValue:       "InvalidAddressOfValue",
	DuplicateMatchPattern:       "DuplicateMatchPattern",
	InvalidDeclaration:          "InvalidDeclaration",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a recoverable syntax error. Token is where it was detected; for
// InvalidAssignmentExpression it is the assignment operator and Operand the
// left-hand side that cannot be assigned to.
type Error struct {
	Kind     ErrorKind
	Token    *token.Token
	Expected token.Kind
	// After is the lexeme preceding Token, used by UnexpectedToken.
	After   string
	Message string
	Operand ast.Expression
}

func (e *Error) Error() string {
	return e.Diagnostic().String()
}

func (e *Error) Pos() token.Position {
	return e.Token.Pos
}

func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Pos:      e.Token.Pos,
		Message:  e.message(),
		Severity: diag.Error,
	}
}

func (e *Error) message() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Token.Kind == token.Unknown && e.Token.Message != "" {
		return e.Token.Message
	}

	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("there should have been a %s after the token `%s`, but instead there was a %s.",
			e.Expected, e.After, describe(e.Token))
	case InvalidDataType:
		return fmt.Sprintf("%s is not a valid data type.", describe(e.Token))
	case InvalidVariableDeclaration:
		return "You can create a variable using a dynamic definition `:=` followed by the value to assign to the variable, " +
			"or by specifying the datatype statically. You cannot create a variable without assigning it a value."
	case LoopBodyNotFound:
		return "After a loop there must be either a scope block representing the body of the loop or a `;` for a loop without a body."
	case InvalidAssignmentExpression:
		return fmt.Sprintf("Invalid assignment expression, can't assign a value to `%s`!", e.Operand)
	case InvalidExpression:
		return fmt.Sprintf("Invalid expression, %s cannot start or continue an expression.", describe(e.Token))
	case InvalidFnName:
		return fmt.Sprintf("%s is not a valid function name.", describe(e.Token))
	case InvalidFnBody:
		return fmt.Sprintf("%s is not a valid function body.", describe(e.Token))
	case InvalidVariableAssignment:
		return fmt.Sprintf("%s is not a value assignable to a variable.", describe(e.Token))
	case InvalidAddressOfValue:
		return fmt.Sprintf("%s is not a value whose address can be taken.", describe(e.Token))
	case DuplicateMatchPattern:
		return fmt.Sprintf("the pattern `%s` is already handled by an earlier case; this case is ignored.", e.Operand)
	case InvalidDeclaration:
		return fmt.Sprintf("%s is not a valid top-level declaration, expected import, fn, struct or enum.", describe(e.Token))
	}
	return e.Kind.String()
}

// describe renders a token as `lexeme (kind)`, or just the kind when the two
// would read the same.
func describe(tok *token.Token) string {
	kind := tok.Kind.String()
	if tok.Lexeme == "" || tok.Lexeme == kind {
		return kind
	}
	return fmt.Sprintf("%s (%s)", tok.Lexeme, kind)
}
