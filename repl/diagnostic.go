// Copyright © 2024 The NeoLisp authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/neolisp/nl/diagnostic"
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/parser"
)

// RenderError writes err to w as an annotated diagnostic.  Sources supplies
// the text of inputs which are not files.
func RenderError(w io.Writer, err error, mode diagnostic.ColorMode, sources map[string]string) {
	r := &diagnostic.Renderer{Color: mode, Sources: sources}
	_ = r.Render(w, ErrorDiagnostic(err, false))
}

// ErrorDiagnostic converts an evaluation or syntax error into a Diagnostic.
// The innermost located frame is annotated and every frame becomes a note.
// Internal frames are skipped when light is true.
func ErrorDiagnostic(err error, light bool) diagnostic.Diagnostic {
	var serr *parser.SyntaxError
	if errors.As(err, &serr) {
		return diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "syntax-error",
			Message:  serr.Message,
			Spans:    []diagnostic.Span{locationSpan(serr.Source)},
		}
	}
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		return diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Message:  err.Error(),
		}
	}
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     lerr.Kind.String(),
		Message:  lerr.Message,
	}
	if loc, ok := lerr.Source(); ok {
		d.Spans = append(d.Spans, locationSpan(loc))
	}
	for _, f := range lerr.Frames {
		if light && strings.HasPrefix(f.Name, lisp.InternalFramePrefix) {
			continue
		}
		d.Notes = append(d.Notes, fmt.Sprintf("in '%s' at %s", f.Name, frameLocation(f.Source)))
	}
	return d
}

func locationSpan(loc lisp.Location) diagnostic.Span {
	return diagnostic.Span{File: loc.File, Line: loc.Line, Col: loc.Column}
}

// frameLocation renders loc on a single line.
func frameLocation(loc lisp.Location) string {
	switch loc.Kind {
	case lisp.LocDirect:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
	case lisp.LocExpansion:
		direct, ok := loc.Direct()
		where := "unknown location"
		if ok {
			where = frameLocation(direct)
		}
		return fmt.Sprintf("%s (expansion of '%s')", where, loc.Chain[0].MacroName)
	case lisp.LocIntern:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return "unknown location"
	}
}
