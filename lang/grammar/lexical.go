package grammar

import (
	"golang.org/x/exp/ebnf"
)

// MatchLexical reports whether text as a whole is derived from the lexical
// production name of g.
func MatchLexical(g ebnf.Grammar, name, text string) bool {
	m := &lexicalMatcher{
		grammar: g,
		input:   text,
		memo:    make(map[memoKey]int),
		active:  make(map[memoKey]bool),
	}
	return m.matchName(name, 0) == len(text)
}

type memoKey struct {
	name   string
	offset int
}

// lexicalMatcher matches greedily without backtracking, which is enough
// for the token classes of the grammar. A result of -1 means no match.
type lexicalMatcher struct {
	grammar ebnf.Grammar
	input   string
	memo    map[memoKey]int
	active  map[memoKey]bool
}

func (m *lexicalMatcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		end := offset + len(e.String)
		if end <= len(m.input) && m.input[offset:end] == e.String {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		if offset >= len(m.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return -1
		}
		if ch := m.input[offset]; ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1
		}
		return -1

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *lexicalMatcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.active[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.active[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.active, key)

	m.memo[key] = n
	return n
}
