// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/libhelp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentHover handles the textDocument/hover request.  Forms defined
// in the document take precedence over builtins of the same name.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content, _, _ := doc.snapshot()
	name := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	if name == "" {
		return nil, nil
	}

	var text string
	if def := doc.lookup(name); def != nil {
		text = definitionHover(def)
	} else if b := s.builtinBinding(name); b != nil {
		text = bindingHover(name, b)
	}
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

// definitionHover builds Markdown hover text for a document definition.
func definitionHover(def *Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", def.Kind, def.Name)
	fmt.Fprintf(&sb, "\n\n```lisp\n%s\n```", lisp.FormatFormals(def.Name, def.Params))
	if doc := libhelp.CleanDocstring(def.Doc); doc != "" {
		fmt.Fprintf(&sb, "\n\n%s", strings.TrimSpace(doc))
	}
	if direct, ok := def.Source.Direct(); ok {
		fmt.Fprintf(&sb, "\n\n*Defined in %s:%d*", direct.File, direct.Line)
	}
	return sb.String()
}

// bindingHover builds Markdown hover text for a builtin binding.
func bindingHover(name string, b *lisp.Binding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", b.Kind, name)
	if !b.Kind.IsForm() {
		if b.Value != nil {
			fmt.Fprintf(&sb, "\n\n```lisp\n%s\n```", b.Value.Stringify(-1))
		}
		return sb.String()
	}
	fmt.Fprintf(&sb, "\n\n```lisp\n%s\n```", lisp.FormatFormals(name, b.Signature()))
	if doc := libhelp.CleanDocstring(b.Docstring()); doc != "" {
		fmt.Fprintf(&sb, "\n\n%s", strings.TrimSpace(doc))
	}
	return sb.String()
}
