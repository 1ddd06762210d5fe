package grammar

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ariel/lang/token"
)

// symbol is a grammar symbol after the EBNF operators have been rewritten
// into plain rules. Terminals are either a literal ("fn", "+=") or the name
// of a lexical production ("identifier").
type symbol struct {
	name     string
	terminal bool
	literal  bool
}

// rule is one alternative of a nonterminal.
type rule struct {
	name    string
	symbols []symbol
}

// Recognizer decides with an Earley chart whether a token sequence is
// derived from the start production. It does not build a tree; the
// hand-written parser does that.
type Recognizer struct {
	grammar  ebnf.Grammar
	start    string
	rules    map[string][]*rule
	nullable map[string]bool
	fresh    int
}

// NewRecognizer rewrites the syntactic productions of g into rules.
// Options, repetitions and groups become synthetic nonterminals.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if _, ok := g[start]; !ok || isLexical(start) {
		return nil, fmt.Errorf("no syntactic production %q", start)
	}

	r := &Recognizer{
		grammar: g,
		start:   start,
		rules:   make(map[string][]*rule),
	}
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		for _, alt := range r.alternatives(prod.Expr) {
			r.addRule(name, alt)
		}
	}
	r.computeNullable()
	return r, nil
}

func (r *Recognizer) addRule(name string, symbols []symbol) {
	r.rules[name] = append(r.rules[name], &rule{name: name, symbols: symbols})
}

func (r *Recognizer) alternatives(expr ebnf.Expression) [][]symbol {
	if alt, ok := expr.(ebnf.Alternative); ok {
		var out [][]symbol
		for _, e := range alt {
			out = append(out, r.alternatives(e)...)
		}
		return out
	}
	return [][]symbol{r.sequence(expr)}
}

func (r *Recognizer) sequence(expr ebnf.Expression) []symbol {
	switch e := expr.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		out := make([]symbol, 0, len(e))
		for _, item := range e {
			out = append(out, r.symbol(item))
		}
		return out
	}
	return []symbol{r.symbol(expr)}
}

func (r *Recognizer) symbol(expr ebnf.Expression) symbol {
	switch e := expr.(type) {
	case *ebnf.Token:
		return symbol{name: e.String, terminal: true, literal: true}
	case *ebnf.Name:
		return symbol{name: e.String, terminal: isLexical(e.String)}
	case *ebnf.Group:
		name := r.synthetic("group")
		for _, alt := range r.alternatives(e.Body) {
			r.addRule(name, alt)
		}
		return symbol{name: name}
	case *ebnf.Option:
		name := r.synthetic("option")
		for _, alt := range r.alternatives(e.Body) {
			r.addRule(name, alt)
		}
		r.addRule(name, nil)
		return symbol{name: name}
	case *ebnf.Repetition:
		name := r.synthetic("repeat")
		self := symbol{name: name}
		for _, alt := range r.alternatives(e.Body) {
			r.addRule(name, append(alt, self))
		}
		r.addRule(name, nil)
		return self
	}

	name := r.synthetic("inline")
	for _, alt := range r.alternatives(expr) {
		r.addRule(name, alt)
	}
	return symbol{name: name}
}

func (r *Recognizer) synthetic(kind string) string {
	r.fresh++
	return kind + "#" + strconv.Itoa(r.fresh)
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, rules := range r.rules {
			if r.nullable[name] {
				continue
			}
			for _, ru := range rules {
				if r.allNullable(ru.symbols) {
					r.nullable[name] = true
					changed = true
					break
				}
			}
		}
	}
}

func (r *Recognizer) allNullable(symbols []symbol) bool {
	for _, s := range symbols {
		if s.terminal || !r.nullable[s.name] {
			return false
		}
	}
	return true
}

type item struct {
	rule   *rule
	dot    int
	origin int
}

func (it item) next() (symbol, bool) {
	if it.dot < len(it.rule.symbols) {
		return it.rule.symbols[it.dot], true
	}
	return symbol{}, false
}

func (it item) advance() item {
	it.dot++
	return it
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// SyntaxError is returned by Recognize. Found is nil when the input ended
// too early.
type SyntaxError struct {
	Found *token.Token
}

func (e *SyntaxError) Error() string {
	if e.Found == nil || e.Found.Kind == token.EOF {
		return "unexpected end of input"
	}
	return fmt.Sprintf("[%s] :: unexpected %q", e.Found.Pos, e.Found.Lexeme)
}

// Recognize reports whether tokens form a sentence of the grammar. A
// trailing EOF token is ignored.
func (r *Recognizer) Recognize(tokens []*token.Token) error {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == token.EOF {
		tokens = tokens[:n-1]
	}
	n := len(tokens)

	chart := make([]itemSet, n+1)
	for _, ru := range r.rules[r.start] {
		chart[0].add(item{rule: ru})
	}

	for i := 0; i <= n; i++ {
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			sym, ok := it.next()
			switch {
			case !ok:
				r.complete(chart, i, it)
			case sym.terminal:
				if i < n && r.matches(sym, tokens[i]) {
					chart[i+1].add(it.advance())
				}
			default:
				for _, ru := range r.rules[sym.name] {
					chart[i].add(item{rule: ru, origin: i})
				}
				if r.nullable[sym.name] {
					chart[i].add(it.advance())
				}
			}
		}
	}

	for _, it := range chart[n].items {
		if _, more := it.next(); !more && it.origin == 0 && it.rule.name == r.start {
			return nil
		}
	}

	furthest := 0
	for i := n; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}
	if furthest < n {
		return &SyntaxError{Found: tokens[furthest]}
	}
	return &SyntaxError{}
}

func (r *Recognizer) complete(chart []itemSet, i int, done item) {
	origin := &chart[done.origin]
	for k := 0; k < len(origin.items); k++ {
		waiting := origin.items[k]
		if sym, ok := waiting.next(); ok && !sym.terminal && sym.name == done.rule.name {
			chart[i].add(waiting.advance())
		}
	}
}

// matches compares a token with a terminal. Keywords and operators match
// by lexeme, the literal classes by token kind; identifiers and numbers are
// also checked against their lexical production.
func (r *Recognizer) matches(sym symbol, tok *token.Token) bool {
	var class string
	switch tok.Kind {
	case token.Identifier:
		class = "identifier"
	case token.Integer:
		class = "integer"
	case token.Double:
		class = "double"
	case token.String:
		return !sym.literal && sym.name == "string"
	case token.Unknown, token.EOF:
		return false
	default:
		return sym.literal && sym.name == tok.Lexeme
	}
	return !sym.literal && sym.name == class && MatchLexical(r.grammar, class, tok.Lexeme)
}
