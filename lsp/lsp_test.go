// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"testing"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = "file:///tmp/test.nl"

const testSource = `(defndynamic square (x)
  "Multiplies x by itself."
  (* x x))
(square 3)
`

// testServer creates a server documenting the builtin library.
func testServer(t *testing.T) *Server {
	t.Helper()
	scope, err := lisplib.NewDocScope()
	require.NoError(t, err)
	return New(WithScope(scope))
}

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

func openParams(uri, text string) *protocol.DidOpenTextDocumentParams {
	return &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "neolisp",
			Version:    1,
			Text:       text,
		},
	}
}

func positionParams(line, col int) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: safeUint(line), Character: safeUint(col)},
	}
}

// completionLabels extracts labels from a completion result.
func completionLabels(t *testing.T, result any) []string {
	t.Helper()
	require.NotNil(t, result, "completion result should not be nil")
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok, "completion result should be []CompletionItem, got %T", result)
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func TestPositionConversion(t *testing.T) {
	pos := toLSPPosition(lisp.DirectLocation("test.nl", 1, 1, 0, 1))
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, pos)
	pos = toLSPPosition(lisp.DirectLocation("test.nl", 5, 10, 42, 1))
	assert.Equal(t, protocol.Position{Line: 4, Character: 9}, pos)
	assert.Equal(t, protocol.Position{}, toLSPPosition(lisp.NoLocation()))

	r := toLSPRange(lisp.DirectLocation("test.nl", 3, 5, 20, 5), 5)
	assert.Equal(t, protocol.Position{Line: 2, Character: 4}, r.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 9}, r.End)

	assert.True(t, containsPosition(lisp.DirectLocation("test.nl", 1, 2, 1, 3), 3, 0, 1))
	assert.False(t, containsPosition(lisp.DirectLocation("test.nl", 1, 2, 1, 3), 3, 1, 1))
}

func TestWordAtPosition(t *testing.T) {
	content := "(foo bar-baz)\n  (is-nil? x)"
	assert.Equal(t, "foo", wordAtPosition(content, 0, 2))
	assert.Equal(t, "foo", wordAtPosition(content, 0, 4))
	assert.Equal(t, "bar-baz", wordAtPosition(content, 0, 5))
	assert.Equal(t, "is-nil?", wordAtPosition(content, 1, 5))
	assert.Equal(t, "", wordAtPosition(content, 0, 0))
	assert.Equal(t, "", wordAtPosition(content, 5, 0))
	assert.Equal(t, "f", prefixAtPosition(content, 0, 2))
	assert.Equal(t, "is", prefixAtPosition(content, 1, 5))
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/test.nl", uriToPath(testURI))
	assert.Equal(t, testURI, pathToURI("/tmp/test.nl"))
	assert.Equal(t, "rel.nl", pathToURI("rel.nl"))
}

func TestCollectDefinitions(t *testing.T) {
	doc := NewDocumentStore().Open(testURI, 1, testSource+`(defmacro unless (c body) (list 'if c nil body))
(defndynamic bad 3 4)`)
	require.NoError(t, doc.parseErr)
	require.Len(t, doc.defs, 2)

	sq := doc.defs[0]
	assert.Equal(t, "square", sq.Name)
	assert.Equal(t, lisp.BindDynamic, sq.Kind)
	assert.Equal(t, []string{"x"}, sq.Params)
	assert.Equal(t, "Multiplies x by itself.", sq.Doc)
	assert.Equal(t, lisp.DirectLocation("/tmp/test.nl", 1, 14, 13, 6), sq.Source)

	unless := doc.defs[1]
	assert.Equal(t, "unless", unless.Name)
	assert.Equal(t, lisp.BindMacro, unless.Kind)
	assert.Equal(t, "", unless.Doc)
}

func TestDocumentKeepsDefinitionsOnSyntaxError(t *testing.T) {
	store := NewDocumentStore()
	store.Open(testURI, 1, testSource)
	doc := store.Change(testURI, 2, testSource+"(squ")
	assert.Error(t, doc.parseErr)
	assert.Nil(t, doc.exprs)
	require.Len(t, doc.defs, 1)
	assert.Same(t, doc, store.Get(testURI))

	store.Close(testURI)
	assert.Nil(t, store.Get(testURI))
}

func TestPublishDiagnostics(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()

	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, "(+ 1 2))")))
	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Equal(t, "neolisp", *diags[0].Source)
	assert.Equal(t, protocol.UInteger(0), diags[0].Range.Start.Line)
	assert.NotEmpty(t, diags[0].Message)

	err := s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 2)

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 3)
	assert.Empty(t, (*captured)[2].Diagnostics)
	assert.Nil(t, s.docs.Get(testURI))
}

func TestPublishNoDiagnostics(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()
	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource)))
	require.Len(t, *captured, 1)
	assert.NotNil(t, (*captured)[0].Diagnostics)
	assert.Empty(t, (*captured)[0].Diagnostics)
}

func TestHover(t *testing.T) {
	s := testServer(t)
	ctx, _ := capturingContext()
	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource)))

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: positionParams(3, 2)})
	require.NoError(t, err)
	require.NotNil(t, hover)
	text := hover.Contents.(protocol.MarkupContent).Value
	assert.Contains(t, text, "**dynamic-form** `square`")
	assert.Contains(t, text, "(square x)")
	assert.Contains(t, text, "Multiplies x by itself.")
	assert.Contains(t, text, "*Defined in /tmp/test.nl:1*")

	hover, err = s.textDocumentHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: positionParams(0, 3)})
	require.NoError(t, err)
	require.NotNil(t, hover)
	text = hover.Contents.(protocol.MarkupContent).Value
	assert.Contains(t, text, "**special-form** `defndynamic`")
	assert.Contains(t, text, "Defines a function")

	hover, err = s.textDocumentHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: positionParams(2, 6)})
	require.NoError(t, err)
	assert.Nil(t, hover, "parameters have no documentation")
}

func TestCompletion(t *testing.T) {
	s := testServer(t)
	ctx, _ := capturingContext()
	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource+"(squ")))
	// The document cannot be read and has no previous version.
	result, err := s.textDocumentCompletion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: positionParams(4, 4)})
	require.NoError(t, err)
	assert.Empty(t, result)

	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource)))
	s.docs.Change(testURI, 2, testSource+"(squ")
	result, err = s.textDocumentCompletion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: positionParams(4, 4)})
	require.NoError(t, err)
	assert.Equal(t, []string{"square"}, completionLabels(t, result))

	s.docs.Change(testURI, 3, testSource+"(def")
	result, err = s.textDocumentCompletion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: positionParams(4, 4)})
	require.NoError(t, err)
	labels := completionLabels(t, result)
	assert.Contains(t, labels, "defndynamic")
	assert.Contains(t, labels, "defmacro")
	assert.IsIncreasing(t, labels)
	item := result.([]protocol.CompletionItem)[0]
	assert.Equal(t, protocol.CompletionItemKindKeyword, *item.Kind)
}

func TestDefinition(t *testing.T) {
	s := testServer(t)
	ctx, _ := capturingContext()
	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource)))

	result, err := s.textDocumentDefinition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: positionParams(3, 3)})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok)
	assert.Equal(t, testURI, loc.URI)
	assert.Equal(t, protocol.Position{Line: 0, Character: 13}, loc.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 19}, loc.Range.End)

	result, err = s.textDocumentDefinition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: positionParams(2, 4)})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDocumentSymbols(t *testing.T) {
	s := testServer(t)
	ctx, _ := capturingContext()
	require.NoError(t, s.textDocumentDidOpen(ctx, openParams(testURI, testSource)))

	result, err := s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)
	assert.Equal(t, "square", symbols[0].Name)
	assert.Equal(t, "(square x)", *symbols[0].Detail)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
}

func TestLifecycle(t *testing.T) {
	s := testServer(t)
	exitCode := -1
	s.exitFn = func(code int) { exitCode = code }
	ctx, _ := capturingContext()

	root := "file:///tmp/project"
	result, err := s.initialize(ctx, &protocol.InitializeParams{RootURI: &root})
	require.NoError(t, err)
	res, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, serverName, res.ServerInfo.Name)
	assert.Equal(t, lisp.Version, *res.ServerInfo.Version)
	assert.Equal(t, "/tmp/project", s.rootPath)

	require.NoError(t, s.setTrace(ctx, &protocol.SetTraceParams{Value: protocol.TraceValueOff}))
	require.NoError(t, s.shutdown(ctx))
	require.NoError(t, s.exit(ctx))
	assert.Equal(t, 0, exitCode)
}
