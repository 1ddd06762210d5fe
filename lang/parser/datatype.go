package parser

import (
	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/token"
)

// ParseDataType parses a primitive, `[T]` or a user type name, followed by
// any number of `*`. A lone `void` is rejected; `void*` is fine.
func (p *Parser) ParseDataType() (*ast.DataType, error) {
	start := p.curr
	var typ *ast.DataType

	switch {
	case start.Kind.IsPrimitiveType():
		typ, _ = ast.Primitive(start.Kind)
		p.advance()
	case start.Kind == token.Identifier:
		typ = ast.CompoundNamed(start)
		p.advance()
	case start.Kind == token.LeftSquare:
		p.advance()
		elem, err := p.ParseDataType()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.RightSquare); err != nil {
			return nil, err
		}
		typ = ast.ArrayOf(elem)
	default:
		return nil, p.fail(InvalidDataType)
	}

	pointers := 0
	for p.checkAny(token.Star, token.Power) {
		if p.check(token.Power) {
			typ = ast.PointerTo(ast.PointerTo(typ))
			pointers += 2
		} else {
			typ = ast.PointerTo(typ)
			pointers++
		}
		p.advance()
	}

	if start.Kind == token.Void && pointers == 0 {
		return nil, &Error{
			Kind:    InvalidDataType,
			Token:   start,
			Message: "void is not a valid data type on its own, only behind a pointer as `void*`.",
		}
	}
	return typ, nil
}
