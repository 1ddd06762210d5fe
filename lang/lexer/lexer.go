// Package lexer turns a source.Buffer into a lazy stream of tokens.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

// Tokenizer is pull-based: every call to Next scans exactly one token. Its
// only state is the position of the underlying buffer.
type Tokenizer struct {
	buf *source.Buffer
}

func New(buf *source.Buffer) *Tokenizer {
	return &Tokenizer{buf: buf}
}

// All scans the remaining input, including the terminal EOF token.
func (l *Tokenizer) All() []*token.Token {
	var tokens []*token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Next skips whitespace and comments and returns the next token. Once the
// input is exhausted it keeps returning EOF.
func (l *Tokenizer) Next() *token.Token {
	l.skipWhitespace()
	l.buf.MarkStart()

	if l.buf.AtEOF() {
		return l.token(token.EOF)
	}

	ch := l.buf.Advance()
	switch {
	case ch == '"':
		return l.scanString()
	case isDigit(ch):
		return l.scanNumber()
	case isLetter(ch):
		return l.scanIdentOrKeyword()
	}
	return l.scanOperator(ch)
}

func (l *Tokenizer) skipWhitespace() {
	for !l.buf.AtEOF() {
		switch l.buf.Peek() {
		case ' ', '\t', '\r', '\n':
			l.buf.Advance()
		case '#':
			if l.buf.PeekAhead(1) == '#' {
				l.skipBlockComment()
			} else {
				l.skipLineComment()
			}
		default:
			return
		}
	}
}

func (l *Tokenizer) skipLineComment() {
	for !l.buf.AtEOF() && l.buf.Peek() != '\n' {
		l.buf.Advance()
	}
}

// skipBlockComment consumes `##...##`. An unterminated block comment runs to
// the end of the input.
func (l *Tokenizer) skipBlockComment() {
	l.buf.Advance()
	l.buf.Advance()
	for !l.buf.AtEOF() {
		if l.buf.Peek() == '#' && l.buf.PeekAhead(1) == '#' {
			l.buf.Advance()
			l.buf.Advance()
			return
		}
		l.buf.Advance()
	}
}

func (l *Tokenizer) scanNumber() *token.Token {
	for isDigit(l.buf.Peek()) {
		l.buf.Advance()
	}
	if l.buf.Peek() == '.' && isDigit(l.buf.PeekAhead(1)) {
		l.buf.Advance()
		for isDigit(l.buf.Peek()) {
			l.buf.Advance()
		}
		return l.token(token.Double)
	}
	return l.token(token.Integer)
}

func (l *Tokenizer) scanIdentOrKeyword() *token.Token {
	for isLetterOrDigit(l.buf.Peek()) {
		l.buf.Advance()
	}
	return l.token(token.LookupKeyword(string(l.buf.Lexeme())))
}

// scanString decodes escapes while scanning. The token's lexeme is the
// decoded content without quotes.
func (l *Tokenizer) scanString() *token.Token {
	var sb strings.Builder
	for !l.buf.AtEOF() && l.buf.Peek() != '"' {
		ch := l.buf.Advance()
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		if l.buf.AtEOF() {
			break
		}
		esc := l.buf.Advance()
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		default:
			l.skipRestOfString()
			return l.errorToken(string(rune(esc)), "Invalid escape sequence.")
		}
	}

	if l.buf.AtEOF() {
		return l.errorToken(string(l.buf.Lexeme()), "Unterminated string.")
	}
	l.buf.Advance()

	tok := l.token(token.String)
	tok.Lexeme = strings.ToValidUTF8(sb.String(), string(utf8.RuneError))
	return tok
}

// skipRestOfString moves past the closing quote so that a bad escape does
// not make the tail of the string look like code.
func (l *Tokenizer) skipRestOfString() {
	for !l.buf.AtEOF() {
		ch := l.buf.Advance()
		if ch == '\\' {
			l.buf.Advance()
			continue
		}
		if ch == '"' {
			return
		}
	}
}

func (l *Tokenizer) scanOperator(ch byte) *token.Token {
	switch ch {
	case '(':
		return l.token(token.LeftParen)
	case ')':
		return l.token(token.RightParen)
	case '[':
		return l.token(token.LeftSquare)
	case ']':
		return l.token(token.RightSquare)
	case '{':
		return l.token(token.LeftBrace)
	case '}':
		return l.token(token.RightBrace)
	case '?':
		return l.token(token.Question)
	case ',':
		return l.token(token.Comma)
	case ';':
		return l.token(token.Semicolon)
	case '%':
		return l.token(token.Mod)

	case '.':
		if l.match('.') {
			if l.match('=') {
				return l.token(token.SequenceUpToIncluding)
			}
			return l.token(token.SequenceUpTo)
		}
		return l.token(token.Dot)

	case ':':
		if l.match('=') {
			return l.token(token.DynamicDefinition)
		}
		if l.match(':') {
			return l.token(token.StaticScopeGetter)
		}
		return l.token(token.Colon)

	case '!':
		if l.match('=') {
			return l.token(token.NotEqual)
		}
		return l.token(token.Not)

	case '=':
		if l.match('=') {
			return l.token(token.EqualEqual)
		}
		return l.token(token.Equal)

	case '>':
		if l.match('=') {
			return l.token(token.GreaterEqual)
		}
		if l.match('>') {
			if l.match('=') {
				return l.token(token.ShiftRightEqual)
			}
			return l.token(token.ShiftRight)
		}
		return l.token(token.Greater)

	case '<':
		if l.match('=') {
			return l.token(token.LessEqual)
		}
		if l.match('<') {
			if l.match('=') {
				return l.token(token.ShiftLeftEqual)
			}
			return l.token(token.ShiftLeft)
		}
		return l.token(token.Less)

	case '&':
		if l.match('&') {
			return l.token(token.And)
		}
		return l.token(token.BitAnd)

	case '|':
		if l.match('|') {
			return l.token(token.Or)
		}
		return l.token(token.BitOr)

	case '-':
		if l.match('=') {
			return l.token(token.MinusEqual)
		}
		if l.match('>') {
			return l.token(token.Arrow)
		}
		return l.token(token.Minus)

	case '+':
		if l.match('=') {
			return l.token(token.PlusEqual)
		}
		return l.token(token.Plus)

	case '/':
		if l.match('=') {
			return l.token(token.SlashEqual)
		}
		if l.match('/') {
			if l.match('=') {
				return l.token(token.IntegerSlashEqual)
			}
			return l.token(token.IntegerSlash)
		}
		return l.token(token.Slash)

	case '*':
		if l.match('*') {
			if l.match('=') {
				return l.token(token.PowerEqual)
			}
			return l.token(token.Power)
		}
		if l.match('=') {
			return l.token(token.StarEqual)
		}
		return l.token(token.Star)
	}

	if ch >= utf8.RuneSelf {
		// consume the whole sequence so one bad rune yields one token
		for !l.buf.AtEOF() && !utf8.FullRune(l.buf.Lexeme()) {
			l.buf.Advance()
		}
		r, _ := utf8.DecodeRune(l.buf.Lexeme())
		if r == utf8.RuneError {
			return l.errorToken(string(l.buf.Lexeme()), "Invalid byte sequence.")
		}
	}
	return l.errorToken(string(l.buf.Lexeme()), "Unknown symbol.")
}

func (l *Tokenizer) match(expected byte) bool {
	if l.buf.Peek() != expected {
		return false
	}
	l.buf.Advance()
	return true
}

func (l *Tokenizer) token(kind token.Kind) *token.Token {
	offset, line, column := l.buf.Start()
	return &token.Token{
		Kind:   kind,
		Lexeme: string(l.buf.Lexeme()),
		Pos: token.Position{
			File:   l.buf.Name(),
			Offset: offset,
			Line:   line,
			Column: column,
		},
	}
}

func (l *Tokenizer) errorToken(lexeme, msg string) *token.Token {
	tok := l.token(token.Unknown)
	tok.Lexeme = lexeme
	tok.Message = msg
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
