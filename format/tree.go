package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ariel/lang/ast"
)

// TreeEncoder writes one line per node, children indented by two spaces:
//
//	EntryFunction main() <1:3>
//	  Scope <1:10>
//	    ImplicitReturn <1:12>
type TreeEncoder struct {
	w    io.Writer
	asts *ast.ASTs
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(asts *ast.ASTs) error {
	e.asts = asts
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, child := range Tree(e.asts).Children {
		writeTree(&buf, child, 0)
	}
	return buf.Bytes(), nil
}

func writeTree(buf *bytes.Buffer, n *Node, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	if n.Role != "" {
		buf.WriteString(n.Role)
		buf.WriteString(": ")
	}
	buf.WriteString(n.Kind)
	if n.Label != "" {
		buf.WriteByte(' ')
		buf.WriteString(n.Label)
	}
	if n.Pos.Line > 0 {
		fmt.Fprintf(buf, " <%d:%d>", n.Pos.Line, n.Pos.Column)
	}
	buf.WriteByte('\n')

	for _, child := range n.Children {
		writeTree(buf, child, depth+1)
	}
}
