// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDefinition handles the textDocument/definition request for
// forms defined in the same document.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, _ := doc.snapshot()
	name := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	def := doc.lookup(name)
	if def == nil {
		return nil, nil
	}
	return protocol.Location{
		URI:   params.TextDocument.URI,
		Range: toLSPRange(def.Source, len([]rune(def.Name))),
	}, nil
}
