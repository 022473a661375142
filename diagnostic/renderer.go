// Copyright © 2024 The NeoLisp authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Renderer formats diagnostics as annotated source snippets:
//
//	error[unbound-symbol]: unbound symbol 'y'
//	  --> test.nl:1:25
//	   |
//	 1 |  (defndynamic f (x) (+ x y))
//	   |                          ^
//	   |
//	   = note: in 'f' at test.nl:2:2
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds source text by file name.  It is consulted before
	// SourceReader so that text which never lived in a file (REPL input,
	// command line expressions) can be annotated.
	Sources map[string]string

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := palette{profile: Profile(r.Color, w)}
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	ew.printf("%s: %s\n", p.title(d), p.bold(d.Message))
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s note: %s\n", p.note("="), note)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	ew.printf("  %s %s\n", p.gutter("-->"), loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s\n", p.gutter("|"))
		return
	}
	line := []rune(source)
	num := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(num))
	bar := p.gutter(pad + " |")

	ew.printf(" %s\n", bar)
	ew.printf(" %s  %s\n", p.gutter(num+" |"), expandTabs(line))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := col + span.Width - 1
	if span.Width <= 0 {
		endCol = tokenEnd(line, col)
	}
	if endCol < col {
		endCol = col
	}
	prefix := line[:clamp(col-1, 0, len(line))]
	marker := strings.Repeat(" ", displayWidth(prefix)) + p.emphasis(strings.Repeat("^", endCol-col+1))
	if span.Label != "" {
		marker += " " + p.emphasis(span.Label)
	}
	ew.printf(" %s  %s\n", bar, marker)
	ew.printf(" %s\n", bar)
}

// sourceLine returns the text of line in file, without its newline.
func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	text, ok := r.Sources[file]
	if !ok {
		reader := r.SourceReader
		if reader == nil {
			reader = os.ReadFile
		}
		data, err := reader(file)
		if err != nil {
			return "", false
		}
		text = string(data)
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// tokenEnd returns the column of the last rune of the token starting at col.
func tokenEnd(line []rune, col int) int {
	if col > len(line) {
		return col
	}
	end := col - 1
	for end < len(line) {
		switch line[end] {
		case ' ', '\t', '(', ')':
			if end == col-1 {
				return col
			}
			return end
		}
		end++
	}
	return end
}

func expandTabs(line []rune) string {
	return strings.ReplaceAll(string(line), "\t", "    ")
}

// displayWidth returns the display width of runes, expanding tabs to 4
// spaces.
func displayWidth(rs []rune) int {
	w := 0
	for _, ch := range rs {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
