package token

import "fmt"

// Position locates a token in its source file. Line is 1-based, Column is the
// 0-based byte offset within the line.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s %d:%d", p.File, p.Line, p.Column)
}

type Kind int

const (
	EOF Kind = iota
	Unknown

	LeftParen
	RightParen
	LeftSquare
	RightSquare
	LeftBrace
	RightBrace

	Dot
	SequenceUpTo
	SequenceUpToIncluding
	Comma
	Arrow
	Colon
	Semicolon
	DynamicDefinition
	StaticScopeGetter
	Question

	Mod
	Not
	NotEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	ShiftRight
	ShiftRightEqual
	Less
	LessEqual
	ShiftLeft
	ShiftLeftEqual
	And
	BitAnd
	Or
	BitOr
	Minus
	MinusEqual
	Plus
	PlusEqual
	Slash
	SlashEqual
	IntegerSlash
	IntegerSlashEqual
	Star
	StarEqual
	Power
	PowerEqual

	// Literals
	Identifier
	Integer
	Double
	String
	True
	False
	Nil

	// Types
	U8
	U16
	U32
	U64
	Usize
	I8
	I16
	I32
	I64
	Isize
	F32
	F64
	StringType
	Bool
	Void

	// Keywords
	DontCare
	Break
	Continue
	Defer
	Else
	Enum
	Fn
	For
	If
	Import
	Let
	Loop
	Main
	Match
	Return
	Struct
	While
)

var kindNames = map[Kind]string{
	EOF:                   "EOF",
	Unknown:               "unknown symbol",
	LeftParen:             "(",
	RightParen:            ")",
	LeftSquare:            "[",
	RightSquare:           "]",
	LeftBrace:             "{",
	RightBrace:            "}",
	Dot:                   ".",
	SequenceUpTo:          "..",
	SequenceUpToIncluding: "..=",
	Comma:                 ",",
	Arrow:                 "->",
	Colon:                 ":",
	Semicolon:             ";",
	DynamicDefinition:     ":=",
	StaticScopeGetter:     "::",
	Question:              "?",
	Mod:                   "%",
	Not:                   "!",
	NotEqual:              "!=",
	Equal:                 "=",
	EqualEqual:            "==",
	Greater:               ">",
	GreaterEqual:          ">=",
	ShiftRight:            ">>",
	ShiftRightEqual:       ">>=",
	Less:                  "<",
	LessEqual:             "<=",
	ShiftLeft:             "<<",
	ShiftLeftEqual:        "<<=",
	And:                   "&&",
	BitAnd:                "&",
	Or:                    "||",
	BitOr:                 "|",
	Minus:                 "-",
	MinusEqual:            "-=",
	Plus:                  "+",
	PlusEqual:             "+=",
	Slash:                 "/",
	SlashEqual:            "/=",
	IntegerSlash:          "//",
	IntegerSlashEqual:     "//=",
	Star:                  "*",
	StarEqual:             "*=",
	Power:                 "**",
	PowerEqual:            "**=",
	Identifier:            "identifier",
	Integer:               "integer number",
	Double:                "double precision number",
	String:                "string",
	True:                  "true",
	False:                 "false",
	Nil:                   "nil",
	U8:                    "u8",
	U16:                   "u16",
	U32:                   "u32",
	U64:                   "u64",
	Usize:                 "usize",
	I8:                    "i8",
	I16:                   "i16",
	I32:                   "i32",
	I64:                   "i64",
	Isize:                 "isize",
	F32:                   "f32",
	F64:                   "f64",
	StringType:            "str",
	Bool:                  "bool",
	Void:                  "void",
	DontCare:              "_",
	Break:                 "break",
	Continue:              "continue",
	Defer:                 "defer",
	Else:                  "else",
	Enum:                  "enum",
	Fn:                    "fn",
	For:                   "for",
	If:                    "if",
	Import:                "import",
	Let:                   "let",
	Loop:                  "loop",
	Main:                  "main",
	Match:                 "match",
	Return:                "return",
	Struct:                "struct",
	While:                 "while",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsAssignment reports whether k is `=` or one of the compound assignment
// operators.
func (k Kind) IsAssignment() bool {
	switch k {
	case Equal, PlusEqual, MinusEqual, StarEqual, SlashEqual,
		IntegerSlashEqual, PowerEqual, ShiftLeftEqual, ShiftRightEqual:
		return true
	}
	return false
}

// IsPrimitiveType reports whether k names a built-in data type.
func (k Kind) IsPrimitiveType() bool {
	return k >= U8 && k <= Void
}

// Token is immutable once produced by the tokenizer. Parsers and AST nodes
// share *Token handles freely, including across goroutines.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position

	// Message is set on Unknown tokens and describes what went wrong.
	Message string
}

func (t *Token) String() string {
	return t.Lexeme
}

var keywords = map[string]Kind{
	"_":        DontCare,
	"bool":     Bool,
	"break":    Break,
	"continue": Continue,
	"defer":    Defer,
	"else":     Else,
	"enum":     Enum,
	"false":    False,
	"fn":       Fn,
	"for":      For,
	"if":       If,
	"import":   Import,
	"let":      Let,
	"loop":     Loop,
	"main":     Main,
	"match":    Match,
	"nil":      Nil,
	"return":   Return,
	"struct":   Struct,
	"true":     True,
	"void":     Void,
	"while":    While,
	"u8":       U8,
	"u16":      U16,
	"u32":      U32,
	"u64":      U64,
	"usize":    Usize,
	"i8":       I8,
	"i16":      I16,
	"i32":      I32,
	"i64":      I64,
	"isize":    Isize,
	"f32":      F32,
	"f64":      F64,
	"str":      StringType,
}

func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// Keywords returns every reserved word in the language.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	return words
}
