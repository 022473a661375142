// Copyright © 2024 The NeoLisp authors

// Package pretty renders values with terminal colors.
package pretty

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/neolisp/nl/diagnostic"
	"github.com/neolisp/nl/lisp"
)

// ProfileFor returns the color profile suited to w.  Colors are disabled
// when w is not a terminal or when NO_COLOR is set.
func ProfileFor(w io.Writer) termenv.Profile {
	return diagnostic.Profile(diagnostic.ColorAuto, w)
}

// Sprint returns the display form of v colored for profile.  Lists nested
// maxDepth levels deep collapse to "(...)"; a negative maxDepth disables the
// limit.  With the Ascii profile the result equals v.Stringify(maxDepth).
func Sprint(v *lisp.Value, maxDepth int, profile termenv.Profile) string {
	p := printer{profile: profile}
	p.print(v, maxDepth, 0)
	return p.b.String()
}

type printer struct {
	profile termenv.Profile
	b       strings.Builder
}

func (p *printer) print(v *lisp.Value, maxDepth int, depth int) {
	if v.Type != lisp.LList {
		p.b.WriteString(p.atom(v))
		return
	}
	if maxDepth >= 0 && depth >= maxDepth {
		p.b.WriteString(p.style("(...)", "6", false))
		return
	}
	p.b.WriteString(p.style("(", "6", false))
	for i, c := range v.Cells {
		if i > 0 {
			p.b.WriteString(" ")
		}
		p.print(c, maxDepth, depth+1)
	}
	p.b.WriteString(p.style(")", "6", false))
}

func (p *printer) atom(v *lisp.Value) string {
	text := v.Stringify(0)
	switch v.Type {
	case lisp.LNil, lisp.LBool:
		return p.style(text, "5", true)
	case lisp.LInt, lisp.LFloat:
		return p.style(text, "3", false)
	case lisp.LChar, lisp.LString:
		return p.style(text, "3", true)
	case lisp.LKeyword, lisp.LSymbol:
		return p.style(text, "5", false)
	default:
		return text
	}
}

func (p *printer) style(s string, color string, bold bool) string {
	st := p.profile.String(s).Foreground(p.profile.Color(color))
	if bold {
		st = st.Bold()
	}
	return st.String()
}
