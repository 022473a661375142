// Copyright © 2024 The NeoLisp authors

package libhelp

import (
	"fmt"
	"io"
	"strings"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// MissingDoc describes a form with no documentation.
type MissingDoc struct {
	// Kind is the binding kind of the form, e.g. "special-form".
	Kind string

	// Name is the name the form is bound to.
	Name string
}

// CheckMissing reports the forms visible in s which have no documentation.
func CheckMissing(s *lisp.Scope) []MissingDoc {
	var missing []MissingDoc
	for _, name := range s.Names() {
		b := s.GetBinding(name)
		if !b.Kind.IsForm() {
			continue
		}
		if strings.TrimSpace(b.Docstring()) == "" {
			missing = append(missing, MissingDoc{Kind: b.Kind.String(), Name: name})
		}
	}
	return missing
}

// LoadPackage adds the help forms to s.  Documentation is written to the
// Stdout of the runtime of s.
func LoadPackage(s *lisp.Scope) error {
	s.AddBuiltins(
		libutil.SpecialDoc("help", lisp.Formals("name"), opHelp,
			`
			Prints documentation for the given unevaluated name.  Forms have
			their kind, signature and any docstring rendered.  Variables and
			constants have their kind and current value printed.
			`),
		libutil.SpecialDoc("help-forms", lisp.Formals(), opHelpForms,
			`
			Prints the names of all visible forms, one per line, in
			lexical order.
			`),
	)
	return nil
}

func opHelp(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	name := args[0]
	if name.Type != lisp.LSymbol {
		return lisp.Fail(lisp.TypeErrorf("'help' requires a symbol, got a %v instead.", name.Type))
	}
	err := RenderVar(s.Runtime.Out(), s, name.Str)
	if err != nil {
		return lisp.Fail(lisp.AsError(err))
	}
	return lisp.Ok(lisp.Nil())
}

func opHelpForms(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	err := RenderFormList(s.Runtime.Out(), s)
	if err != nil {
		return lisp.Fail(lisp.AsError(err))
	}
	return lisp.Ok(lisp.Nil())
}

// RenderFormList writes the sorted names of the forms visible in s to w.
func RenderFormList(w io.Writer, s *lisp.Scope) error {
	for _, name := range s.Names() {
		if !s.GetBinding(name).Kind.IsForm() {
			continue
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// RenderVar writes to w formatted documentation for the binding of sym in
// s.  The exact formatting of the rendered documentation is subject to
// change.
func RenderVar(w io.Writer, s *lisp.Scope, sym string) error {
	b := s.GetBinding(sym)
	if b == nil {
		return lisp.Errorf(lisp.ErrUnboundSymbol, "unbound symbol '%s'", sym)
	}
	if !b.Kind.IsForm() {
		return renderVal(w, sym, b)
	}
	return renderFun(w, sym, b)
}

func renderVal(w io.Writer, sym string, b *lisp.Binding) error {
	_, err := fmt.Fprintf(w, "%s %s %v\n", b.Kind, sym, b.Value)
	return err
}

func renderFun(w io.Writer, sym string, b *lisp.Binding) error {
	_, err := fmt.Fprintf(w, "%s %s\n", b.Kind, lisp.FormatFormals(sym, b.Signature()))
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	doc := CleanDocstring(b.Docstring())
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
		return err
	}
	return nil
}

// CleanDocstring dedents doc, wraps it at 72 columns and indents it by two
// spaces.
func CleanDocstring(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	doc = strings.TrimRight(doc, " \n")
	return doc
}

// dedentDoc removes common leading whitespace from all non-empty lines.  The
// first line of a raw string literal usually has less indentation than the
// lines following it, so it is ignored when measuring.  Tabs count as four
// spaces.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")

	minWS := -1
	start := 0
	if len(lines) > 1 {
		start = 1
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0 && len(lines[i]) >= minWS:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
