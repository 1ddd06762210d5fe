// Package format renders parsed Ariel programs for people and tools.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/ariel/lang/ast"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(asts *ast.ASTs) error
}

// Formats lists the names accepted by New.
func Formats() []string {
	return []string{"tree", "json"}
}

// New returns the encoder registered under name, writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree", "":
		return NewTreeEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
