package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/ariel/lang/diag"
)

const lsName = "ariel"

type Server struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	log       commonlog.Logger
}

func NewServer(version string) *Server {
	ls := &Server{
		workspace: NewWorkspace("."),
		version:   version,
		log:       commonlog.GetLogger("ariel.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) Workspace() *Workspace {
	return ls.workspace
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.workspace = NewWorkspace(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Infof("serving %s", ls.workspace.RootDir())
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := ls.workspace.Update(path, params.TextDocument.Version, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}

	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		if change.Range != nil {
			ls.log.Warningf("ignoring incremental change to %s", path)
			return nil
		}
		text = change.Text
	default:
		return nil
	}

	doc := ls.workspace.Update(path, params.TextDocument.Version, []byte(text))
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.Remove(path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	var doc *Document
	if params.Text != nil {
		var version int32
		if old := ls.workspace.Get(path); old != nil {
			version = old.Version
		}
		doc = ls.workspace.Update(path, version, []byte(*params.Text))
	} else if doc, err = ls.workspace.Reload(path); err != nil {
		ls.log.Errorf("reload %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	symbols := ls.workspace.Symbols(path)
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		result = append(result, toProtocolSymbol(sym))
	}
	return result, nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *Document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		diagnostics = append(diagnostics, toProtocolDiagnostic(d))
	}
	ls.log.Debugf("%s: %d diagnostics", doc.Path, len(diagnostics))

	version := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// pointRange covers the single character at a diagnostic's position. The
// protocol counts lines from zero.
func pointRange(line, column int) protocol.Range {
	if line > 0 {
		line--
	}
	start := protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(column)}
	end := start
	end.Character++
	return protocol.Range{Start: start, End: end}
}

func toProtocolDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Severity == diag.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := lsName
	return protocol.Diagnostic{
		Range:    pointRange(d.Pos.Line, d.Pos.Column),
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

func toProtocolSymbol(sym Symbol) protocol.DocumentSymbol {
	r := pointRange(sym.Pos.Line, sym.Pos.Column)
	r.End.Character = r.Start.Character + protocol.UInteger(len(sym.Name))

	ds := protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           toProtocolKind(sym.Kind),
		Range:          r,
		SelectionRange: r,
	}
	if sym.Detail != "" {
		detail := sym.Detail
		ds.Detail = &detail
	}
	for _, child := range sym.Children {
		ds.Children = append(ds.Children, toProtocolSymbol(child))
	}
	return ds
}

func toProtocolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolFunction:
		return protocol.SymbolKindFunction
	case SymbolStruct:
		return protocol.SymbolKindStruct
	case SymbolEnum:
		return protocol.SymbolKindEnum
	case SymbolField:
		return protocol.SymbolKindField
	case SymbolVariant:
		return protocol.SymbolKindEnumMember
	default:
		return protocol.SymbolKindVariable
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
