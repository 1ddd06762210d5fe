package ast

import (
	"strings"

	"github.com/dhamidi/ariel/lang/token"
)

// Field is a `name: Type` pair, used for function arguments and struct
// fields.
type Field struct {
	Name *token.Token
	Type *DataType
}

func (f Field) String() string { return f.Name.Lexeme + ": " + f.Type.String() }

// Function is a top-level `fn`. Body is nil for a forward declaration and
// Return is nil when the function returns nothing.
type Function struct {
	Name   *token.Token
	Entry  bool
	Args   []Field
	Return *DataType
	Body   *Scope
}

func (f *Function) IsEntry() bool       { return f.Entry }
func (f *Function) IsForwardDecl() bool { return f.Body == nil }
func (f *Function) Pos() token.Position { return f.Name.Pos }

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("fn ")
	sb.WriteString(f.Name.Lexeme)
	sb.WriteString("(")
	for i, arg := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	if f.Return != nil {
		sb.WriteString(" -> ")
		sb.WriteString(f.Return.String())
	}
	if f.Body == nil {
		sb.WriteString(";")
	} else {
		sb.WriteString(" ")
		sb.WriteString(f.Body.String())
	}
	return sb.String()
}

// Struct keeps its fields in declaration order.
type Struct struct {
	Name   *token.Token
	Fields []Field
}

func (s *Struct) Pos() token.Position { return s.Name.Pos }

func (s *Struct) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return "struct " + s.Name.Lexeme + " { " + strings.Join(parts, ", ") + " }"
}

// Variant is one enum alternative, optionally carrying a payload type.
type Variant struct {
	Name *token.Token
	Type *DataType
}

func (v Variant) String() string {
	if v.Type == nil {
		return v.Name.Lexeme
	}
	return v.Name.Lexeme + "(" + v.Type.String() + ")"
}

// Enum keeps its variants in declaration order.
type Enum struct {
	Name     *token.Token
	Variants []Variant
}

func (e *Enum) Pos() token.Position { return e.Name.Pos }

func (e *Enum) String() string {
	parts := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		parts[i] = v.String()
	}
	return "enum " + e.Name.Lexeme + " { " + strings.Join(parts, ", ") + " }"
}

// ASTs collects the top-level declarations of one file, or of a whole
// program after merging.
type ASTs struct {
	Functions []*Function
	Enums     []*Enum
	Structs   []*Struct
}

// Merge appends other's declarations to a. Order within each list follows
// the order of the merges.
func (a *ASTs) Merge(other *ASTs) {
	if other == nil {
		return
	}
	a.Functions = append(a.Functions, other.Functions...)
	a.Enums = append(a.Enums, other.Enums...)
	a.Structs = append(a.Structs, other.Structs...)
}

func (a *ASTs) Len() int {
	return len(a.Functions) + len(a.Enums) + len(a.Structs)
}
