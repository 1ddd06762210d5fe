package format

import (
	"strings"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/token"
)

// Node is the encoder-neutral view of one AST node. Role names the slot a
// child fills in its parent when the kind alone is ambiguous, e.g. the
// condition and the increment of a for loop.
type Node struct {
	Kind     string
	Role     string
	Label    string
	Pos      token.Position
	Children []*Node
}

func (n *Node) add(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

func withRole(n *Node, role string) *Node {
	if n != nil {
		n.Role = role
	}
	return n
}

// Tree converts a whole program. Functions come first, then structs, then
// enums, each in declaration order.
func Tree(asts *ast.ASTs) *Node {
	root := &Node{Kind: "Program"}
	if asts == nil {
		return root
	}
	for _, fn := range asts.Functions {
		root.add(fromFunction(fn))
	}
	for _, st := range asts.Structs {
		root.add(fromStruct(st))
	}
	for _, en := range asts.Enums {
		root.add(fromEnum(en))
	}
	return root
}

func fromFunction(fn *ast.Function) *Node {
	var sig strings.Builder
	sig.WriteString(fn.Name.Lexeme)
	sig.WriteByte('(')
	for i, arg := range fn.Args {
		if i > 0 {
			sig.WriteString(", ")
		}
		sig.WriteString(arg.String())
	}
	sig.WriteByte(')')
	if fn.Return != nil {
		sig.WriteString(" -> ")
		sig.WriteString(fn.Return.String())
	}

	n := &Node{Kind: "Function", Label: sig.String(), Pos: fn.Pos()}
	switch {
	case fn.IsForwardDecl():
		n.Kind = "ForwardDeclaration"
	case fn.IsEntry():
		n.Kind = "EntryFunction"
	}
	if fn.Body != nil {
		n.add(fromScope(fn.Body))
	}
	return n
}

func fromStruct(st *ast.Struct) *Node {
	n := &Node{Kind: "Struct", Label: st.Name.Lexeme, Pos: st.Pos()}
	for _, f := range st.Fields {
		n.add(&Node{Kind: "Field", Label: f.String(), Pos: f.Name.Pos})
	}
	return n
}

func fromEnum(en *ast.Enum) *Node {
	n := &Node{Kind: "Enum", Label: en.Name.Lexeme, Pos: en.Pos()}
	for _, v := range en.Variants {
		n.add(&Node{Kind: "Variant", Label: v.String(), Pos: v.Name.Pos})
	}
	return n
}

func fromScope(s *ast.Scope) *Node {
	if s == nil {
		return nil
	}
	n := &Node{Kind: "Scope", Pos: s.Start}
	for _, stmt := range s.Body {
		n.add(fromStatement(stmt))
	}
	return n
}

func fromStatement(stmt ast.Statement) *Node {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.Scope:
		return fromScope(s)
	case *ast.VariableDeclaration:
		n := &Node{Kind: "VariableDeclaration", Label: s.Name.Lexeme, Pos: s.Pos()}
		if s.Type != nil {
			n.Label += ": " + s.Type.String()
		}
		n.add(fromStatement(s.Value))
		return n
	case *ast.Return:
		n := &Node{Kind: "Return", Pos: s.Pos()}
		n.add(fromStatement(s.Value))
		return n
	case *ast.ImplicitReturn:
		n := &Node{Kind: "ImplicitReturn", Pos: s.Pos()}
		n.add(fromExpression(s.Value))
		return n
	case *ast.ExpressionStatement:
		n := &Node{Kind: "ExpressionStatement", Pos: s.Pos()}
		n.add(fromExpression(s.Expr))
		return n
	case *ast.Defer:
		n := &Node{Kind: "Defer", Pos: s.Pos()}
		n.add(fromStatement(s.Stmt))
		return n
	case *ast.Conditional:
		n := &Node{Kind: "Conditional", Pos: s.Pos()}
		n.add(
			withRole(fromExpression(s.Cond), "cond"),
			withRole(fromScope(s.Then), "then"),
			withRole(fromScope(s.Else), "else"),
		)
		return n
	case *ast.Match:
		n := &Node{Kind: "Match", Pos: s.Pos()}
		n.add(withRole(fromExpression(s.On), "on"))
		for _, c := range s.Cases {
			mc := &Node{Kind: "MatchCase", Label: c.Pattern.String(), Pos: c.Pattern.Pos()}
			mc.add(fromScope(c.Body))
			n.add(mc)
		}
		return n
	case *ast.Loop:
		n := &Node{Kind: "Loop", Pos: s.Pos()}
		n.add(fromScope(s.Body))
		return n
	case *ast.While:
		n := &Node{Kind: "While", Pos: s.Pos()}
		n.add(withRole(fromExpression(s.Cond), "cond"), fromScope(s.Body))
		return n
	case *ast.For:
		n := &Node{Kind: "For", Pos: s.Pos()}
		n.add(
			withRole(fromStatement(s.Init), "init"),
			withRole(fromExpression(s.Cond), "cond"),
			withRole(fromExpression(s.Incr), "incr"),
			fromScope(s.Body),
		)
		return n
	case *ast.Break:
		return &Node{Kind: "Break", Pos: s.Pos()}
	case *ast.Continue:
		return &Node{Kind: "Continue", Pos: s.Pos()}
	}
	return &Node{Kind: "Statement", Label: stmt.String(), Pos: stmt.Pos()}
}

func fromExpression(expr ast.Expression) *Node {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.Name:
		return &Node{Kind: "Name", Label: e.Token.Lexeme, Pos: e.Pos()}
	case *ast.Literal:
		return &Node{Kind: "Literal", Label: e.String(), Pos: e.Pos()}
	case *ast.GetField:
		sep := "."
		if e.Static {
			sep = "::"
		}
		n := &Node{Kind: "GetField", Label: sep + e.Field.Lexeme, Pos: e.Pos()}
		n.add(fromExpression(e.From))
		return n
	case *ast.Binary:
		kind := "Binary"
		if e.IsAssignment() {
			kind = "Assignment"
		}
		n := &Node{Kind: kind, Label: e.Op.Lexeme, Pos: e.Pos()}
		n.add(fromExpression(e.Left), fromExpression(e.Right))
		return n
	case *ast.Unary:
		n := &Node{Kind: "Unary", Label: e.Op.Lexeme, Pos: e.Pos()}
		n.add(fromExpression(e.Value))
		return n
	case *ast.FnCall:
		n := &Node{Kind: "FnCall", Pos: e.Pos()}
		n.add(withRole(fromExpression(e.Callee), "callee"))
		for _, arg := range e.Args {
			n.add(withRole(fromExpression(arg), "arg"))
		}
		return n
	case *ast.Nested:
		n := &Node{Kind: "Nested", Pos: e.Pos()}
		n.add(fromExpression(e.Inner))
		return n
	case *ast.Ternary:
		n := &Node{Kind: "Ternary", Pos: e.Pos()}
		n.add(
			withRole(fromExpression(e.Cond), "cond"),
			withRole(fromExpression(e.Then), "then"),
			withRole(fromExpression(e.Else), "else"),
		)
		return n
	case *ast.Monad:
		n := &Node{Kind: "Monad", Pos: e.Pos()}
		n.add(fromExpression(e.Value))
		return n
	case *ast.Sequence:
		return &Node{Kind: "Sequence", Label: e.String(), Pos: e.Pos()}
	case *ast.AddressOf:
		n := &Node{Kind: "AddressOf", Pos: e.Pos()}
		n.add(fromExpression(e.Of))
		return n
	case *ast.ArrayLiteral:
		n := &Node{Kind: "ArrayLiteral", Pos: e.Pos()}
		for _, v := range e.Values {
			n.add(fromExpression(v))
		}
		return n
	}
	return &Node{Kind: "Expression", Label: expr.String(), Pos: expr.Pos()}
}
