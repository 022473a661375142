// Copyright © 2024 The NeoLisp authors

// Package lsp implements a Language Server Protocol server for NeoLisp.
// It publishes syntax diagnostics and provides hover, completion,
// go-to-definition and document symbols.
package lsp

import (
	"os"
	"sync"
	"time"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/sirupsen/logrus"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "neolisp-lsp"

// Server is the NeoLisp language server.
type Server struct {
	handler  protocol.Handler
	glspSrv  *glspserver.Server
	docs     *DocumentStore
	rootURI  string
	rootPath string
	log      logrus.FieldLogger

	// scope holds the builtin forms documented by hover and completion.
	scope     *lisp.Scope
	scopeOnce sync.Once

	// Debouncer for didChange notifications.
	debounceMu sync.Mutex
	debounce   map[string]*time.Timer

	// Context for sending notifications (captured from latest request).
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	// exitFn is called on the LSP exit notification. Defaults to os.Exit.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithScope injects the scope whose bindings are offered by hover and
// completion.  By default a scope holding the builtin library is used.
func WithScope(s *lisp.Scope) Option {
	return func(srv *Server) { srv.scope = s }
}

// WithLogger sets the logger of the server.
func WithLogger(log logrus.FieldLogger) Option {
	return func(srv *Server) { srv.log = log }
}

// New creates a new NeoLisp LSP server.
func New(opts ...Option) *Server {
	s := &Server{
		docs:     NewDocumentStore(),
		log:      logrus.StandardLogger(),
		debounce: make(map[string]*time.Timer),
		exitFn:   os.Exit,
	}
	for _, o := range opts {
		o(s)
	}

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentCompletion:     s.textDocumentCompletion,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// builtins returns the scope of builtin forms, creating it on first use.
func (s *Server) builtins() *lisp.Scope {
	s.scopeOnce.Do(func() {
		if s.scope != nil {
			return
		}
		scope, err := lisplib.NewDocScope()
		if err != nil {
			s.log.WithError(err).Error("unable to load the builtin library")
			return
		}
		s.scope = scope
	})
	return s.scope
}

// builtinBinding returns the binding of name in the builtin scope, or nil.
func (s *Server) builtinBinding(name string) *lisp.Binding {
	scope := s.builtins()
	if scope == nil {
		return nil
	}
	return scope.GetBinding(name)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	if params.RootURI != nil {
		s.rootURI = *params.RootURI
		s.rootPath = uriToPath(s.rootURI)
	} else if params.RootPath != nil {
		s.rootPath = *params.RootPath
		s.rootURI = pathToURI(s.rootPath)
	}
	s.log.WithField("root", s.rootPath).Info("lsp client initialized")

	capabilities := s.handler.CreateServerCapabilities()

	// Override text document sync to full.
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"("},
	}

	version := lisp.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// shutdown handles the LSP shutdown request.
func (s *Server) shutdown(_ *glsp.Context) error {
	s.debounceMu.Lock()
	for _, t := range s.debounce {
		t.Stop()
	}
	s.debounce = make(map[string]*time.Timer)
	s.debounceMu.Unlock()
	s.log.Info("lsp shutdown")
	return nil
}

// exit handles the LSP exit notification by terminating the process.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	s.log.WithField("value", params.Value).Debug("lsp set trace")
	return nil
}

// captureNotify stores the notification function from the context for
// async use (e.g., publishing diagnostics after a debounce).
func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

// sendNotification sends a notification to the client.
func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
