// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"sort"
	"strings"

	"github.com/neolisp/nl/lisp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentCompletion handles the textDocument/completion request.  The
// candidates are the forms defined in the document and the builtin
// bindings whose name starts with the word before the cursor.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, defs, _ := doc.snapshot()
	prefix := prefixAtPosition(content, int(params.Position.Line), int(params.Position.Character))

	seen := make(map[string]bool)
	var items []protocol.CompletionItem
	add := func(name string, kind lisp.BindingKind, signature []string) {
		if seen[name] || !strings.HasPrefix(name, prefix) {
			return
		}
		seen[name] = true
		itemKind := completionItemKind(kind)
		item := protocol.CompletionItem{Label: name, Kind: &itemKind}
		if kind.IsForm() {
			detail := lisp.FormatFormals(name, signature)
			item.Detail = &detail
		}
		items = append(items, item)
	}
	for i := len(defs) - 1; i >= 0; i-- {
		add(defs[i].Name, defs[i].Kind, defs[i].Params)
	}
	if scope := s.builtins(); scope != nil {
		for _, name := range scope.Names() {
			b := scope.GetBinding(name)
			add(name, b.Kind, b.Signature())
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items, nil
}

func completionItemKind(kind lisp.BindingKind) protocol.CompletionItemKind {
	switch kind {
	case lisp.BindEval, lisp.BindDynamic:
		return protocol.CompletionItemKindFunction
	case lisp.BindSpecial, lisp.BindMacro:
		return protocol.CompletionItemKindKeyword
	case lisp.BindConstant:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindVariable
	}
}
