// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"github.com/neolisp/nl/lisp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol request.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	_, defs, _ := doc.snapshot()
	symbols := make([]protocol.DocumentSymbol, 0, len(defs))
	for _, def := range defs {
		r := toLSPRange(def.Source, len([]rune(def.Name)))
		detail := lisp.FormatFormals(def.Name, def.Params)
		kind := protocol.SymbolKindFunction
		if def.Kind == lisp.BindMacro {
			kind = protocol.SymbolKindOperator
		}
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           def.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols, nil
}
