// Package parser turns the token stream of one Ariel file into an AST.
//
// Parsing never stops at the first error: a failed statement is reported and
// skipped up to the next `;` or `}`, a failed declaration up to the next
// top-level keyword. Diagnostics go to the configured diag.Reporter.
package parser

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/lexer"
	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

// Importer is handed the path token of every `import "path";`. Import is
// called while the parser is still inside the file and must not block.
type Importer interface {
	Import(path *token.Token)
}

type ImporterFunc func(path *token.Token)

func (f ImporterFunc) Import(path *token.Token) { f(path) }

type Option func(*Parser)

func WithReporter(r diag.Reporter) Option {
	return func(p *Parser) {
		p.reporter = r
	}
}

func WithImporter(i Importer) Option {
	return func(p *Parser) {
		p.importer = i
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser holds a two token window over the tokenizer: curr is the token
// being looked at, prev the one consumed last.
type Parser struct {
	file     string
	lexer    *lexer.Tokenizer
	curr     *token.Token
	prev     *token.Token
	reporter diag.Reporter
	importer Importer
	log      commonlog.Logger
	reported int
}

func New(buf *source.Buffer, opts ...Option) *Parser {
	p := &Parser{
		file:     buf.Name(),
		lexer:    lexer.New(buf),
		prev:     &token.Token{Pos: token.Position{File: buf.Name(), Line: 1}},
		reporter: diag.Discard,
		log:      commonlog.GetLogger("ariel.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.curr = p.lexer.Next()
	return p
}

// Reported returns how many diagnostics the parser has emitted so far.
func (p *Parser) Reported() int { return p.reported }

func (p *Parser) advance() {
	p.prev = p.curr
	p.curr = p.lexer.Next()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.curr.Kind == kind
}

func (p *Parser) checkAny(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.curr.Kind == kind {
			return true
		}
	}
	return false
}

// require fails with UnexpectedToken unless the current token has the
// given kind. It does not consume the token.
func (p *Parser) require(kind token.Kind) error {
	if p.curr.Kind == kind {
		return nil
	}
	return p.unexpected(kind, "")
}

// consume is require followed by advance.
func (p *Parser) consume(kind token.Kind) error {
	if err := p.require(kind); err != nil {
		return err
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(expected token.Kind, msg string) *Error {
	return &Error{
		Kind:     UnexpectedToken,
		Token:    p.curr,
		Expected: expected,
		After:    p.prev.Lexeme,
		Message:  msg,
	}
}

func (p *Parser) fail(kind ErrorKind) *Error {
	return &Error{Kind: kind, Token: p.curr}
}

func (p *Parser) report(err error) {
	p.reported++
	if perr, ok := err.(*Error); ok {
		p.reporter.Report(perr.Diagnostic())
		return
	}
	p.reporter.Report(diag.Diagnostic{
		Pos:     p.curr.Pos,
		Message: err.Error(),
	})
}

// synchronize discards tokens until one that can start a top-level
// declaration.
func (p *Parser) synchronize() {
	for !p.checkAny(token.Import, token.Struct, token.Enum, token.Fn, token.EOF) {
		p.advance()
	}
}

// ParseFile parses declarations until the end of input. Errors are reported
// and recovered from, so the result holds every declaration that parsed.
func (p *Parser) ParseFile() *ast.ASTs {
	asts := &ast.ASTs{}

	for !p.check(token.EOF) {
		var err error
		switch p.curr.Kind {
		case token.Import:
			err = p.parseImport()
		case token.Fn:
			var fn *ast.Function
			if fn, err = p.parseFunction(); err == nil {
				asts.Functions = append(asts.Functions, fn)
			}
		case token.Struct:
			var st *ast.Struct
			if st, err = p.parseStruct(); err == nil {
				asts.Structs = append(asts.Structs, st)
			}
		case token.Enum:
			var en *ast.Enum
			if en, err = p.parseEnum(); err == nil {
				asts.Enums = append(asts.Enums, en)
			}
		default:
			err = p.fail(InvalidDeclaration)
			p.advance()
		}

		if err != nil {
			p.report(err)
			p.synchronize()
		}
	}

	p.log.Debugf("parsed %s: %d functions, %d structs, %d enums, %d diagnostics",
		p.file, len(asts.Functions), len(asts.Structs), len(asts.Enums), p.reported)
	return asts
}

// parseImport hands the path to the importer as soon as it is known, before
// the terminating semicolon is checked.
func (p *Parser) parseImport() error {
	p.advance()
	if err := p.require(token.String); err != nil {
		return err
	}
	path := p.curr
	if p.importer != nil {
		p.importer.Import(path)
	}
	p.advance()
	return p.consume(token.Semicolon)
}
