package parser

import (
	"strconv"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/token"
)

// ParseExpression parses one expression starting at the current token.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseExpression()
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignmentExpr()
}

// parseAssignmentExpr is right-associative and only accepts a Name or a
// GetField on the left.
func (p *Parser) parseAssignmentExpr() (ast.Expression, error) {
	left, err := p.parseTernaryExpr()
	if err != nil {
		return nil, err
	}
	if !p.curr.Kind.IsAssignment() {
		return left, nil
	}

	op := p.curr
	if !ast.IsAssignable(left) {
		return nil, &Error{Kind: InvalidAssignmentExpression, Token: op, Operand: left}
	}
	p.advance()

	right, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Left: left, Op: op, Right: right}, nil
}

// parseTernaryExpr handles both uses of `?`: a trailing `?` directly before
// something that ends an expression is a Monad, anything else starts the
// then-branch of a ternary.
func (p *Parser) parseTernaryExpr() (ast.Expression, error) {
	cond, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(token.Question) {
		return cond, nil
	}

	question := p.curr
	p.advance()
	if p.endsExpression() {
		return &ast.Monad{Value: cond, Question: question}, nil
	}

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseTernaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) endsExpression() bool {
	return p.checkAny(token.Semicolon, token.RightParen, token.RightSquare, token.RightBrace,
		token.LeftBrace, token.Comma, token.Arrow, token.EOF)
}

type binaryLevel func(*Parser) (ast.Expression, error)

// parseBinary parses a left-associative chain of operators at one
// precedence level.
func (p *Parser) parseBinary(next binaryLevel, ops ...token.Kind) (ast.Expression, error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}
	for p.checkAny(ops...) {
		op := p.curr
		p.advance()
		right, err := next(p)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseOrExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseAndExpr, token.Or, token.BitOr)
}

func (p *Parser) parseAndExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseEqualityExpr, token.And, token.BitAnd)
}

func (p *Parser) parseEqualityExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseRelationalExpr, token.EqualEqual, token.NotEqual)
}

func (p *Parser) parseRelationalExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseAdditiveExpr,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) parseAdditiveExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseMultiplicativeExpr,
		token.Plus, token.Minus, token.Mod, token.ShiftLeft, token.ShiftRight)
}

func (p *Parser) parseMultiplicativeExpr() (ast.Expression, error) {
	return p.parseBinary((*Parser).parseUnaryExpr,
		token.Star, token.Slash, token.IntegerSlash, token.Power)
}

func (p *Parser) parseUnaryExpr() (ast.Expression, error) {
	if !p.checkAny(token.Not, token.Minus) {
		return p.parsePostfixExpr()
	}
	op := p.curr
	p.advance()
	value, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Value: value}, nil
}

// parsePostfixExpr applies calls and field accesses in any order:
// `a.b(c)::d()`.
func (p *Parser) parsePostfixExpr() (ast.Expression, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curr.Kind {
		case token.LeftParen:
			p.advance()
			args, err := p.parseList(token.RightParen)
			if err != nil {
				return nil, err
			}
			expr = &ast.FnCall{Callee: expr, Args: args}

		case token.Dot, token.StaticScopeGetter:
			static := p.check(token.StaticScopeGetter)
			p.advance()
			if err := p.require(token.Identifier); err != nil {
				return nil, err
			}
			expr = &ast.GetField{From: expr, Field: p.curr, Static: static}
			p.advance()

		default:
			return expr, nil
		}
	}
}

// parseList parses comma separated expressions up to and including the
// closing token. A trailing comma is allowed.
func (p *Parser) parseList(closing token.Kind) ([]ast.Expression, error) {
	var values []ast.Expression
	for !p.check(closing) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		if p.check(token.Comma) {
			p.advance()
			continue
		}
		if !p.check(closing) {
			return nil, p.unexpected(closing, "")
		}
	}
	p.advance()
	return values, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expression, error) {
	tok := p.curr
	switch tok.Kind {
	case token.Identifier, token.DontCare:
		p.advance()
		return &ast.Name{Token: tok}, nil

	case token.Integer, token.Double, token.String, token.True, token.False, token.Nil:
		p.advance()
		return &ast.Literal{Token: tok}, nil

	case token.BitAnd:
		p.advance()
		at := p.curr
		of, err := p.parsePrimaryExpr()
		if err != nil {
			return nil, err
		}
		if _, ok := of.(*ast.Name); !ok {
			return nil, &Error{Kind: InvalidAddressOfValue, Token: at}
		}
		return &ast.AddressOf{Amp: tok, Of: of}, nil

	case token.LeftSquare:
		p.advance()
		values, err := p.parseList(token.RightSquare)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Start: tok.Pos, Values: values}, nil

	case token.LeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.RightParen); err != nil {
			return nil, err
		}
		return &ast.Nested{Start: tok.Pos, Inner: inner}, nil
	}

	return nil, p.fail(InvalidExpression)
}

// ParseMatchPattern parses the restricted expression allowed before `->` in
// a match case: a name, a literal, or an integer range.
func (p *Parser) ParseMatchPattern() (ast.Expression, error) {
	tok := p.curr
	switch tok.Kind {
	case token.Identifier, token.DontCare:
		p.advance()
		return &ast.Name{Token: tok}, nil

	case token.Integer:
		p.advance()
		if !p.checkAny(token.SequenceUpTo, token.SequenceUpToIncluding) {
			return &ast.Literal{Token: tok}, nil
		}
		inclusive := p.check(token.SequenceUpToIncluding)
		p.advance()
		if err := p.require(token.Integer); err != nil {
			return nil, err
		}
		end := p.curr
		p.advance()

		from, err := parseInt(tok)
		if err != nil {
			return nil, err
		}
		to, err := parseInt(end)
		if err != nil {
			return nil, err
		}
		return &ast.Sequence{Start: tok.Pos, From: from, To: to, Inclusive: inclusive}, nil

	case token.Double, token.String, token.True, token.False, token.Nil:
		p.advance()
		return &ast.Literal{Token: tok}, nil
	}

	return nil, p.fail(InvalidExpression)
}

func parseInt(tok *token.Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return 0, &Error{
			Kind:    InvalidExpression,
			Token:   tok,
			Message: "integer literal " + tok.Lexeme + " does not fit in 64 bits.",
		}
	}
	return n, nil
}
