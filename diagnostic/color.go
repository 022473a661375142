// Copyright © 2024 The NeoLisp authors

package diagnostic

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps the values accepted by the --color flag to a
// ColorMode.  Unknown values select ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Profile returns the color profile to use when writing to w.  In ColorAuto
// mode colors are enabled only when w is a terminal and NO_COLOR is unset.
func Profile(mode ColorMode, w io.Writer) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI
	case ColorNever:
		return termenv.Ascii
	default:
		if os.Getenv("NO_COLOR") != "" || !IsTerminal(w) {
			return termenv.Ascii
		}
		return termenv.ANSI
	}
}

// IsTerminal reports whether w is a file connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ANSI color numbers used by the renderer.
const (
	colorRed    = "1"
	colorYellow = "3"
	colorBlue   = "4"
	colorCyan   = "6"
)

type palette struct {
	profile termenv.Profile
}

func (p palette) paint(s string, color string, bold bool) string {
	style := p.profile.String(s)
	if color != "" {
		style = style.Foreground(p.profile.Color(color))
	}
	if bold {
		style = style.Bold()
	}
	return style.String()
}

func (p palette) bold(s string) string     { return p.paint(s, "", true) }
func (p palette) gutter(s string) string   { return p.paint(s, colorBlue, true) }
func (p palette) note(s string) string     { return p.paint(s, colorCyan, true) }
func (p palette) emphasis(s string) string { return p.paint(s, colorRed, true) }

// title paints the header word of d, including its code.
func (p palette) title(d Diagnostic) string {
	switch d.Severity {
	case SeverityError:
		return p.paint(d.title(), colorRed, true)
	case SeverityWarning:
		return p.paint(d.title(), colorYellow, true)
	case SeverityNote:
		return p.paint(d.title(), colorCyan, true)
	default:
		return d.title()
	}
}
