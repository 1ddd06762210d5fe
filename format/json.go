package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ariel/lang/ast"
)

type JSONEncoder struct {
	w    io.Writer
	asts *ast.ASTs
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(asts *ast.ASTs) error {
	e.asts = asts
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(Tree(e.asts), ""), "", "  ")
}

type jsonNode struct {
	Kind     string        `json:"kind"`
	Role     string        `json:"role,omitempty"`
	Label    string        `json:"label,omitempty"`
	Pos      *jsonPosition `json:"pos,omitempty"`
	Children []*jsonNode   `json:"children,omitempty"`
}

// jsonPosition carries the file name only where it differs from the
// enclosing node's, which in practice means on top-level declarations.
type jsonPosition struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func nodeToJSON(n *Node, file string) *jsonNode {
	jn := &jsonNode{
		Kind:  n.Kind,
		Role:  n.Role,
		Label: n.Label,
	}

	if n.Pos.Line != 0 {
		jn.Pos = &jsonPosition{Line: n.Pos.Line, Column: n.Pos.Column}
		if n.Pos.File != file {
			jn.Pos.File = n.Pos.File
			file = n.Pos.File
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child, file)
		}
	}

	return jn
}
