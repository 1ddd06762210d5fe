// Package grammar holds the Ariel grammar as an EBNF document and checks it
// with golang.org/x/exp/ebnf.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ariel/lang/lexer"
	"github.com/dhamidi/ariel/lang/source"
)

// Name is the file name reported in errors about the embedded grammar.
const Name = "ariel.ebnf"

// Start is the production a complete source file is derived from.
const Start = "File"

//go:embed ariel.ebnf
var text []byte

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(text)
}

// Parse parses the embedded grammar.
func Parse() (ebnf.Grammar, error) {
	return ebnf.Parse(Name, bytes.NewReader(text))
}

// Verify parses and verifies the embedded grammar from Start.
func Verify() error {
	_, err := Check(Name, bytes.NewReader(text), Start)
	return err
}

var embedded = sync.OnceValues(func() (*Recognizer, error) {
	g, err := Parse()
	if err != nil {
		return nil, err
	}
	return NewRecognizer(g, Start)
})

// Recognize checks the tokens of buf against the embedded grammar.
func Recognize(buf *source.Buffer) error {
	r, err := embedded()
	if err != nil {
		return err
	}
	return r.Recognize(lexer.New(buf).All())
}

// Check parses a grammar read from r and, when start is not empty, verifies
// that every production is defined and reachable from start.
func Check(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return g, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Errors splits an error returned by Check into the individual problems
// the ebnf package found.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	orig := err
	for {
		v := reflect.ValueOf(err)
		if v.Kind() == reflect.Slice {
			errs := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if e, ok := v.Index(i).Interface().(error); ok {
					errs = append(errs, e)
				}
			}
			return errs
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return []error{orig}
		}
		err = u.Unwrap()
	}
}

// Keywords returns the identifier-shaped terminals used by the syntactic
// productions of g, sorted.
func Keywords(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		collectKeywords(prod.Expr, seen)
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func collectKeywords(expr ebnf.Expression, seen map[string]bool) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			collectKeywords(e, seen)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collectKeywords(e, seen)
		}
	case *ebnf.Group:
		collectKeywords(x.Body, seen)
	case *ebnf.Option:
		collectKeywords(x.Body, seen)
	case *ebnf.Repetition:
		collectKeywords(x.Body, seen)
	case *ebnf.Token:
		if isWord(x.String) {
			seen[x.String] = true
		}
	}
}

func isLexical(name string) bool {
	for _, r := range name {
		return !unicode.IsUpper(r)
	}
	return false
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
