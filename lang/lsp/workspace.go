// Package lsp serves parse diagnostics and document symbols for Ariel files
// over the language server protocol.
package lsp

import (
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/ariel/lang/ast"
	"github.com/dhamidi/ariel/lang/diag"
	"github.com/dhamidi/ariel/lang/parser"
	"github.com/dhamidi/ariel/lang/source"
	"github.com/dhamidi/ariel/lang/token"
)

// Workspace holds the documents an editor has open. Every update reparses
// the whole document; imports are not followed.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	docs    map[string]*Document
}

type Document struct {
	Path        string
	Version     int32
	Content     []byte
	ASTs        *ast.ASTs
	Diagnostics []diag.Diagnostic
}

func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Update replaces the content of the document at path and reparses it.
func (w *Workspace) Update(path string, version int32, content []byte) *Document {
	doc := parseDocument(path, version, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return doc
}

// Reload rereads the document from disk, keeping its version.
func (w *Workspace) Reload(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var version int32
	if doc := w.Get(path); doc != nil {
		version = doc.Version
	}
	return w.Update(path, version, content), nil
}

func (w *Workspace) Get(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func parseDocument(path string, version int32, content []byte) *Document {
	c := &diag.Collector{}
	p := parser.New(source.FromBytes(path, content), parser.WithReporter(c))
	asts := p.ParseFile()

	return &Document{
		Path:        path,
		Version:     version,
		Content:     content,
		ASTs:        asts,
		Diagnostics: c.Diagnostics(),
	}
}

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolStruct
	SymbolEnum
	SymbolField
	SymbolVariant
)

// Symbol is a declaration of a document, with its fields or variants as
// children.
type Symbol struct {
	Name     string
	Detail   string
	Kind     SymbolKind
	Pos      token.Position
	Children []Symbol
}

// Symbols lists the declarations of the document at path in source order.
func (w *Workspace) Symbols(path string) []Symbol {
	doc := w.Get(path)
	if doc == nil || doc.ASTs == nil {
		return nil
	}

	var symbols []Symbol
	for _, fn := range doc.ASTs.Functions {
		detail := "fn"
		if fn.Return != nil {
			detail = "fn -> " + fn.Return.String()
		}
		symbols = append(symbols, Symbol{
			Name:   fn.Name.Lexeme,
			Detail: detail,
			Kind:   SymbolFunction,
			Pos:    fn.Pos(),
		})
	}
	for _, st := range doc.ASTs.Structs {
		sym := Symbol{Name: st.Name.Lexeme, Detail: "struct", Kind: SymbolStruct, Pos: st.Pos()}
		for _, f := range st.Fields {
			sym.Children = append(sym.Children, Symbol{
				Name:   f.Name.Lexeme,
				Detail: f.Type.String(),
				Kind:   SymbolField,
				Pos:    f.Name.Pos,
			})
		}
		symbols = append(symbols, sym)
	}
	for _, en := range doc.ASTs.Enums {
		sym := Symbol{Name: en.Name.Lexeme, Detail: "enum", Kind: SymbolEnum, Pos: en.Pos()}
		for _, v := range en.Variants {
			child := Symbol{Name: v.Name.Lexeme, Kind: SymbolVariant, Pos: v.Name.Pos}
			if v.Type != nil {
				child.Detail = v.Type.String()
			}
			sym.Children = append(sym.Children, child)
		}
		symbols = append(symbols, sym)
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Pos.Offset < symbols[j].Pos.Offset
	})
	return symbols
}
