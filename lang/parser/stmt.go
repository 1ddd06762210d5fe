package parser

import (
	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/token"
)

// ParseStatement parses one statement. Errors inside nested blocks are
// reported and recovered from; only an error at this level is returned.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	return p.parseStatement()
}

// ParseScope parses a `{ ... }` block starting at the opening brace.
func (p *Parser) ParseScope() (*ast.Scope, error) {
	start := p.curr
	if err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}
	return p.parseScopeBlock(start)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curr.Kind {
	case token.If:
		return p.parseConditional()
	case token.Match:
		return p.parseMatch()
	case token.While:
		return p.parseWhile()
	case token.Loop:
		return p.parseLoop()
	case token.For:
		return p.parseFor()
	case token.Let:
		return p.parseVariableDeclaration()
	case token.LeftBrace:
		return p.ParseScope()
	case token.Defer:
		return p.parseDefer()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		kw := p.curr
		p.advance()
		if err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.Break{Keyword: kw}, nil
	case token.Continue:
		kw := p.curr
		p.advance()
		if err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.Continue{Keyword: kw}, nil
	}
	return p.parseExpressionStatement()
}

// parseScopeBlock parses statements up to the closing brace; the opening
// brace has already been consumed. A failing statement is reported and
// skipped up to the next `;` or `}` so that later statements still parse.
func (p *Parser) parseScopeBlock(open *token.Token) (*ast.Scope, error) {
	scope := &ast.Scope{Start: open.Pos}

	for !p.checkAny(token.RightBrace, token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.report(err)
			for !p.checkAny(token.Semicolon, token.RightBrace, token.EOF) {
				p.advance()
			}
			if p.check(token.Semicolon) {
				p.advance()
			}
			continue
		}
		scope.Body = append(scope.Body, stmt)
	}

	if err := p.consume(token.RightBrace); err != nil {
		return nil, err
	}
	return scope, nil
}

// parseBody parses the optional body of a loop: a block, or `;` for none.
func (p *Parser) parseBody() (*ast.Scope, error) {
	switch p.curr.Kind {
	case token.LeftBrace:
		return p.ParseScope()
	case token.Semicolon:
		p.advance()
		return nil, nil
	}
	return nil, p.fail(LoopBodyNotFound)
}

func (p *Parser) parseDefer() (ast.Statement, error) {
	kw := p.curr
	p.advance()

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.prev.Kind != token.Semicolon {
		if err := p.consume(token.Semicolon); err != nil {
			return nil, err
		}
	}
	return &ast.Defer{Keyword: kw, Stmt: stmt}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	ret := &ast.Return{Keyword: p.curr}
	p.advance()

	if !p.check(token.Semicolon) {
		value, err := p.parseAssignable()
		if err != nil {
			return nil, err
		}
		ret.Value = value
	}
	if err := p.consume(token.Semicolon); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseAssignable parses the value of a `let` or `return`: an expression or
// one of the block-valued statements.
func (p *Parser) parseAssignable() (ast.Statement, error) {
	switch p.curr.Kind {
	case token.If:
		return p.parseConditional()
	case token.Match:
		return p.parseMatch()
	case token.LeftBrace:
		return p.ParseScope()
	case token.While, token.Loop, token.For, token.Return, token.Let, token.Break, token.Continue:
		return nil, p.fail(InvalidVariableAssignment)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	p.advance()

	if !p.checkAny(token.Identifier, token.DontCare) {
		return nil, p.unexpected(token.Identifier, "")
	}
	decl := &ast.VariableDeclaration{Name: p.curr}
	p.advance()

	switch p.curr.Kind {
	case token.Colon:
		p.advance()
		typ, err := p.ParseDataType()
		if err != nil {
			return nil, err
		}
		if !p.check(token.Equal) {
			return nil, p.fail(InvalidVariableDeclaration)
		}
		decl.Type = typ
	case token.DynamicDefinition:
	default:
		return nil, p.fail(InvalidVariableDeclaration)
	}
	p.advance()

	value, err := p.parseAssignable()
	if err != nil {
		return nil, err
	}
	decl.Value = value

	if err := p.consume(token.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseConditional parses the condition with the or-expression grammar so
// that neither `?` nor an assignment can swallow the opening brace.
func (p *Parser) parseConditional() (ast.Statement, error) {
	cond := &ast.Conditional{Keyword: p.curr}
	p.advance()

	var err error
	if cond.Cond, err = p.parseOrExpr(); err != nil {
		return nil, err
	}
	if cond.Then, err = p.ParseScope(); err != nil {
		return nil, err
	}
	if !p.check(token.Else) {
		return cond, nil
	}
	p.advance()

	if p.check(token.If) {
		at := p.curr.Pos
		nested, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		cond.Else = &ast.Scope{Start: at, Body: []ast.Statement{nested}}
		return cond, nil
	}
	if cond.Else, err = p.ParseScope(); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseMatch keeps the first case for a repeated pattern and reports the
// repetition without failing the statement.
func (p *Parser) parseMatch() (ast.Statement, error) {
	m := &ast.Match{Keyword: p.curr}
	p.advance()

	on, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	m.On = on
	if err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for !p.check(token.RightBrace) {
		at := p.curr
		pattern, err := p.ParseMatchPattern()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.Arrow); err != nil {
			return nil, err
		}
		body, err := p.ParseScope()
		if err != nil {
			return nil, err
		}

		key := pattern.String()
		if seen[key] {
			p.report(&Error{Kind: DuplicateMatchPattern, Token: at, Operand: pattern})
		} else {
			seen[key] = true
			m.Cases = append(m.Cases, ast.MatchCase{Pattern: pattern, Body: body})
		}

		if p.check(token.Comma) {
			p.advance()
			continue
		}
		if !p.check(token.RightBrace) {
			return nil, p.unexpected(token.RightBrace, "")
		}
	}
	p.advance()
	return m, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	w := &ast.While{Keyword: p.curr}
	p.advance()

	var err error
	if w.Cond, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if w.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	l := &ast.Loop{Keyword: p.curr}
	p.advance()

	var err error
	if l.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return l, nil
}

// parseFor parses `for (init; cond; incr)` where every clause may be empty.
func (p *Parser) parseFor() (ast.Statement, error) {
	f := &ast.For{Keyword: p.curr}
	p.advance()

	if err := p.consume(token.LeftParen); err != nil {
		return nil, err
	}

	switch p.curr.Kind {
	case token.Let:
		init, err := p.parseVariableDeclaration()
		if err != nil {
			return nil, err
		}
		f.Init = init
	case token.Semicolon:
		p.advance()
	default:
		expr, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		f.Init = &ast.ExpressionStatement{Expr: expr}
	}

	if p.check(token.Semicolon) {
		p.advance()
	} else {
		cond, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		f.Cond = cond
	}

	if !p.check(token.RightParen) {
		incr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		f.Incr = incr
	}
	if err := p.consume(token.RightParen); err != nil {
		return nil, err
	}

	var err error
	if f.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return f, nil
}

// parseClause parses an expression terminated by `;`.
func (p *Parser) parseClause() (ast.Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.Semicolon); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseExpressionStatement turns a trailing expression without `;` right
// before `}` into an implicit return. The brace is left for the block.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch p.curr.Kind {
	case token.Semicolon:
		p.advance()
		return &ast.ExpressionStatement{Expr: expr}, nil
	case token.RightBrace:
		return &ast.ImplicitReturn{Value: expr}, nil
	}
	return nil, p.fail(InvalidExpression)
}
