// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"strings"
	"sync"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/parser"
)

// Definition is a form defined by a document with defndynamic or defmacro.
type Definition struct {
	Name   string
	Kind   lisp.BindingKind
	Params []string
	Doc    string
	// Source is the location of the defined name.
	Source lisp.Location
}

// Document represents an open text document tracked by the LSP server.
type Document struct {
	mu       sync.Mutex
	URI      string
	Version  int32
	Content  string
	exprs    []*lisp.Value
	parseErr error
	defs     []*Definition
}

// parse reads the document content.  When the content cannot be read the
// definitions of the last readable version are kept so that hover and
// completion keep working while the user types.
func (d *Document) parse() {
	exprs, err := parser.NewReader().Read(uriToPath(d.URI), strings.NewReader(d.Content))
	d.parseErr = err
	if err != nil {
		d.exprs = nil
		return
	}
	d.exprs = exprs
	d.defs = collectDefinitions(exprs)
}

// snapshot returns the parse state of the document.
func (d *Document) snapshot() (content string, defs []*Definition, parseErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Content, d.defs, d.parseErr
}

// lookup returns the last definition of name in the document, or nil.
func (d *Document) lookup(name string) *Definition {
	_, defs, _ := d.snapshot()
	for i := len(defs) - 1; i >= 0; i-- {
		if defs[i].Name == name {
			return defs[i]
		}
	}
	return nil
}

var definitionKinds = map[string]lisp.BindingKind{
	"defndynamic": lisp.BindDynamic,
	"defmacro":    lisp.BindMacro,
}

// collectDefinitions walks exprs, depth first, for definition forms.
func collectDefinitions(exprs []*lisp.Value) []*Definition {
	var defs []*Definition
	var walk func(v *lisp.Value)
	walk = func(v *lisp.Value) {
		if v.Type != lisp.LList {
			return
		}
		if def := definitionOf(v); def != nil {
			defs = append(defs, def)
		}
		for _, c := range v.Cells {
			walk(c)
		}
	}
	for _, expr := range exprs {
		walk(expr)
	}
	return defs
}

func definitionOf(v *lisp.Value) *Definition {
	if len(v.Cells) < 4 || v.Cells[0].Type != lisp.LSymbol {
		return nil
	}
	kind, ok := definitionKinds[v.Cells[0].Str]
	if !ok {
		return nil
	}
	name, params := v.Cells[1], v.Cells[2]
	if name.Type != lisp.LSymbol || (params.Type != lisp.LList && params.Type != lisp.LNil) {
		return nil
	}
	def := &Definition{Name: name.Str, Kind: kind, Source: name.Info}
	for _, p := range params.Cells {
		if p.Type != lisp.LSymbol {
			return nil
		}
		def.Params = append(def.Params, p.Str)
	}
	if body := v.Cells[3:]; len(body) > 1 && body[0].Type == lisp.LString {
		def.Doc = body[0].Str
	}
	return def
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and parses it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	doc.parse()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change updates a document's content (full sync) and re-parses it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.parse()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
