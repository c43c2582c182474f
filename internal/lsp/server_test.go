package lsp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/leapstack-labs/jsxlint/internal/testutil"
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

type fakeLinter struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeLinter) LintSource(_ context.Context, path string, content []byte) ([]lint.Diagnostic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path+"|"+string(content))
	if f.err != nil {
		return nil, f.err
	}
	return []lint.Diagnostic{{
		RuleID:   "NX01",
		Severity: core.SeverityError,
		Message:  "bad image",
		Pos:      token.Position{Line: 1, Column: 1},
		EndPos:   token.Position{Line: 1, Column: 5},
	}}, nil
}

type notifications struct {
	methods []string
	params  []*protocol.PublishDiagnosticsParams
}

func (n *notifications) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			n.methods = append(n.methods, method)
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				n.params = append(n.params, p)
			}
		},
	}
}

func (n *notifications) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, n.params)
	return n.params[len(n.params)-1]
}

func newTestServer(t *testing.T, linter Linter) *Server {
	t.Helper()
	return NewServer(Config{Linter: linter, Version: "test", Logger: testutil.NewTestLogger(t)})
}

func TestServer_Initialize(t *testing.T) {
	s := newTestServer(t, &fakeLinter{})
	root := "file:///project"

	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{RootURI: &root})
	require.NoError(t, err)

	result, ok := res.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "jsxlint", result.ServerInfo.Name)
	assert.Equal(t, "test", *result.ServerInfo.Version)

	syncOpts, ok := result.Capabilities.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *syncOpts.Change)
	assert.True(t, *syncOpts.OpenClose)
}

func TestServer_DocumentLifecycle(t *testing.T) {
	linter := &fakeLinter{}
	s := newTestServer(t, linter)
	n := &notifications{}
	uri := "file:///app/page.tsx"

	require.NoError(t, s.didOpen(n.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "typescriptreact", Version: 1, Text: "v1"},
	}))
	pub := n.last(t)
	assert.Equal(t, uri, pub.URI)
	require.Len(t, pub.Diagnostics, 1)
	assert.Equal(t, "bad image", pub.Diagnostics[0].Message)

	require.NoError(t, s.didChange(n.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "v2"}},
	}))
	doc, ok := s.Documents().Get(uri)
	require.True(t, ok)
	assert.Equal(t, "v2", doc.Content)
	assert.Equal(t, int32(2), doc.Version)

	text := "v3"
	require.NoError(t, s.didSave(n.context(), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}))

	require.NoError(t, s.didClose(n.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Empty(t, n.last(t).Diagnostics)
	assert.Equal(t, 0, s.Documents().Len())

	assert.Equal(t, []string{"/app/page.tsx|v1", "/app/page.tsx|v2", "/app/page.tsx|v3"}, linter.calls)
	assert.Len(t, n.methods, 4)
	for _, m := range n.methods {
		assert.Equal(t, "textDocument/publishDiagnostics", m)
	}
}

func TestServer_SaveUnknownDocument(t *testing.T) {
	s := newTestServer(t, &fakeLinter{})
	n := &notifications{}

	require.NoError(t, s.didSave(n.context(), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nope.tsx"},
	}))
	assert.Empty(t, n.methods)
}

func TestServer_LintErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unsupported language", jsx.ErrUnsupportedLanguage},
		{"other failure", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeLinter{err: tt.err})
			n := &notifications{}

			require.NoError(t, s.didOpen(n.context(), &protocol.DidOpenTextDocumentParams{
				TextDocument: protocol.TextDocumentItem{URI: "file:///readme.md", Version: 1, Text: "# hi"},
			}))
			pub := n.last(t)
			assert.NotNil(t, pub.Diagnostics)
			assert.Empty(t, pub.Diagnostics)
		})
	}
}

func TestServer_NilLinter(t *testing.T) {
	s := newTestServer(t, nil)
	n := &notifications{}
	require.NoError(t, s.didOpen(n.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.tsx", Version: 1, Text: "x"},
	}))
	assert.Empty(t, n.last(t).Diagnostics)
}

func TestLastFullText(t *testing.T) {
	r := &protocol.Range{}
	tests := []struct {
		name    string
		changes []any
		want    string
		ok      bool
	}{
		{"whole", []any{protocol.TextDocumentContentChangeEventWhole{Text: "a"}}, "a", true},
		{"event without range", []any{protocol.TextDocumentContentChangeEvent{Text: "b"}}, "b", true},
		{"incremental only", []any{protocol.TextDocumentContentChangeEvent{Range: r, Text: "c"}}, "", false},
		{"last whole wins", []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "first"},
			protocol.TextDocumentContentChangeEventWhole{Text: "second"},
		}, "second", true},
		{"raw map", []any{map[string]any{"text": "d"}}, "d", true},
		{"raw map with range", []any{map[string]any{"text": "e", "range": map[string]any{}}}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lastFullText(tt.changes)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
