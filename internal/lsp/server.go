// Package lsp serves jsxlint diagnostics to editors over the Language Server Protocol.
package lsp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

const serverName = "jsxlint"

const methodPublishDiagnostics = "textDocument/publishDiagnostics"

// Linter lints in-memory sources. *engine.Engine satisfies it.
type Linter interface {
	LintSource(ctx context.Context, path string, content []byte) ([]lint.Diagnostic, error)
}

// Config holds server configuration.
type Config struct {
	Linter  Linter
	Version string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Server implements the Language Server Protocol for jsxlint.
type Server struct {
	documents *DocumentStore
	linter    Linter
	version   string
	handler   protocol.Handler
	ctx       context.Context
	logger    *slog.Logger
}

// NewServer creates a new LSP server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		documents: NewDocumentStore(),
		linter:    cfg.Linter,
		version:   cfg.Version,
		ctx:       context.Background(),
		logger:    logger,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidSave:   s.didSave,
		TextDocumentDidClose:  s.didClose,
	}

	return s
}

// Run serves on stdio until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.ctx = ctx
	s.logger.Info("jsxlint LSP server starting")

	lspServer := server.NewServer(&s.handler, serverName, false)
	return lspServer.RunStdio()
}

// Documents returns the open document store.
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil {
		s.logger.Info("initializing", "root", URIToPath(*params.RootURI))
	}

	capabilities := s.handler.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
		Save:      true,
	}

	version := s.version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.documents.Set(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	text, ok := lastFullText(params.ContentChanges)
	if !ok {
		s.logger.Debug("ignoring incremental change", "uri", params.TextDocument.URI)
		return nil
	}

	doc := s.documents.Set(params.TextDocument.URI, text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	var doc *Document
	if params.Text != nil {
		prev, _ := s.documents.Get(uri)
		version := int32(0)
		if prev != nil {
			version = prev.Version
		}
		doc = s.documents.Set(uri, *params.Text, version)
	} else if existing, ok := s.documents.Get(uri); ok {
		doc = existing
	}

	if doc != nil {
		s.publishDiagnostics(ctx, doc)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.documents.Close(uri)

	ctx.Notify(methodPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// lastFullText returns the text of the last whole-document change.
func lastFullText(changes []any) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		switch change := changes[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return change.Text, true
			}
		case map[string]any:
			if _, hasRange := change["range"]; hasRange {
				continue
			}
			if text, ok := change["text"].(string); ok {
				return text, true
			}
		}
	}
	return "", false
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	diagnostics := s.lint(doc)

	ctx.Notify(methodPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diagnostics,
	})
}

func (s *Server) lint(doc *Document) []protocol.Diagnostic {
	if s.linter == nil {
		return []protocol.Diagnostic{}
	}

	path := URIToPath(doc.URI)
	diags, err := s.linter.LintSource(s.ctx, path, []byte(doc.Content))
	if err != nil {
		if !errors.Is(err, jsx.ErrUnsupportedLanguage) {
			s.logger.Error("lint failed", "uri", doc.URI, "error", err)
		}
		return []protocol.Diagnostic{}
	}

	s.logger.Debug("published diagnostics", "uri", doc.URI, "count", len(diags))
	return toLSPDiagnostics(doc, diags)
}
