package parser

import (
	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/token"
)

// parseFunction parses `fn name(arg: T, ...) -> T { ... }`. The return type
// is optional and `;` in place of the body makes a forward declaration.
func (p *Parser) parseFunction() (*ast.Function, error) {
	p.advance()

	fn := &ast.Function{Name: p.curr}
	switch p.curr.Kind {
	case token.Main:
		fn.Entry = true
	case token.Identifier:
	default:
		return nil, p.fail(InvalidFnName)
	}
	p.advance()

	if err := p.consume(token.LeftParen); err != nil {
		return nil, err
	}
	args, err := p.parseFields(token.RightParen,
		"After a function argument there should have been either a `,` or a `)`.")
	if err != nil {
		return nil, err
	}
	fn.Args = args

	if p.check(token.Arrow) {
		p.advance()
		if fn.Return, err = p.ParseDataType(); err != nil {
			return nil, err
		}
	}

	switch p.curr.Kind {
	case token.LeftBrace:
		if fn.Body, err = p.ParseScope(); err != nil {
			return nil, err
		}
	case token.Semicolon:
		p.advance()
	default:
		return nil, p.fail(InvalidFnBody)
	}

	p.log.Debugf("parsed fn %s at %s", fn.Name.Lexeme, fn.Name.Pos)
	return fn, nil
}

// parseFields parses `name: T` pairs separated by commas up to and
// including the closing token.
func (p *Parser) parseFields(closing token.Kind, msg string) ([]ast.Field, error) {
	var fields []ast.Field
	for !p.check(closing) {
		if err := p.require(token.Identifier); err != nil {
			return nil, err
		}
		name := p.curr
		p.advance()

		if err := p.consume(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.ParseDataType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: name, Type: typ})

		if p.check(token.Comma) {
			p.advance()
		} else if !p.check(closing) {
			return nil, p.unexpected(closing, msg)
		}
	}
	p.advance()
	return fields, nil
}

func (p *Parser) parseStruct() (*ast.Struct, error) {
	p.advance()

	if err := p.require(token.Identifier); err != nil {
		return nil, err
	}
	st := &ast.Struct{Name: p.curr}
	p.advance()

	if err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}
	fields, err := p.parseFields(token.RightBrace,
		"After a struct field there should have been either a `,` or a `}`.")
	if err != nil {
		return nil, err
	}
	st.Fields = fields
	return st, nil
}

// parseEnum parses `enum Name { A, B(T), ... }`.
func (p *Parser) parseEnum() (*ast.Enum, error) {
	p.advance()

	if err := p.require(token.Identifier); err != nil {
		return nil, err
	}
	en := &ast.Enum{Name: p.curr}
	p.advance()

	if err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}

	for !p.check(token.RightBrace) {
		if err := p.require(token.Identifier); err != nil {
			return nil, err
		}
		variant := ast.Variant{Name: p.curr}
		p.advance()

		if p.check(token.LeftParen) {
			p.advance()
			typ, err := p.ParseDataType()
			if err != nil {
				return nil, err
			}
			if err := p.consume(token.RightParen); err != nil {
				return nil, err
			}
			variant.Type = typ
		}
		en.Variants = append(en.Variants, variant)

		if p.check(token.Comma) {
			p.advance()
		} else if !p.check(token.RightBrace) {
			return nil, p.unexpected(token.RightBrace,
				"After an enum variant there should have been either a `,` or a `}`.")
		}
	}
	p.advance()
	return en, nil
}
