// Copyright © 2024 The NeoLisp authors

package diagnostic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, errors.New("not found: " + name)
			}
			return []byte(s), nil
		},
	}
}

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderLayout(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.nl": "(defndynamic f (x) (+ x y))\n(f 1)",
	})
	d := Diagnostic{
		Severity: SeverityError,
		Code:     "unbound-symbol",
		Message:  "unbound symbol 'y'",
		Spans:    []Span{{File: "test.nl", Line: 1, Col: 25}},
		Notes:    []string{"in 'f' at test.nl:2:2"},
	}
	expect := "error[unbound-symbol]: unbound symbol 'y'\n" +
		"  --> test.nl:1:25\n" +
		"   |\n" +
		" 1 |  (defndynamic f (x) (+ x y))\n" +
		"   |                          ^\n" +
		"   |\n" +
		"   = note: in 'f' at test.nl:2:2\n"
	assert.Equal(t, expect, render(t, r, d))
}

func TestRenderLabel(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.nl": "(set k 42)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "'k' is a constant.",
		Spans:    []Span{{File: "test.nl", Line: 1, Col: 6, Width: 1, Label: "defined with defconst"}},
	})
	assert.Contains(t, got, "--> test.nl:1:6")
	assert.Contains(t, got, "     ^ defined with defconst\n")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.nl": "(set x 1)\n(set x 2)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityWarning,
		Message:  "x is set twice",
		Spans:    []Span{{File: "test.nl", Line: 2, Col: 1, Width: 9}},
	})
	assert.True(t, strings.HasPrefix(got, "warning: x is set twice\n"))
	assert.Contains(t, got, " 2 |  (set x 2)\n")
	assert.Contains(t, got, "^^^^^^^^^")
}

func TestRenderTokenEnd(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.nl": "(help undefined-name)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol 'undefined-name'",
		Spans:    []Span{{File: "test.nl", Line: 1, Col: 7}},
	})
	assert.Contains(t, got, "      "+strings.Repeat("^", len("undefined-name"))+"\n")
}

func TestRenderRuneColumns(t *testing.T) {
	r := testRenderer(map[string]string{
		"u.nl": "(\"été\" oops)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol 'oops'",
		Spans:    []Span{{File: "u.nl", Line: 1, Col: 8}},
	})
	assert.Contains(t, got, "|         ^^^^\n")
}

func TestRenderSources(t *testing.T) {
	r := testRenderer(nil)
	r.Sources = map[string]string{"REPL": "(car 1)"}
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol 'car'",
		Spans:    []Span{{File: "REPL", Line: 1, Col: 2}},
	})
	assert.Contains(t, got, " 1 |  (car 1)\n")
	assert.Contains(t, got, "^^^")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans:    []Span{{File: "missing.nl", Line: 5, Col: 3}},
	})
	assert.Equal(t, "error: some error\n  --> missing.nl:5:3\n   |\n", got)
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "load main.nl: file does not exist",
	})
	assert.Equal(t, "error: load main.nl: file does not exist\n", got)
}

func TestHeader(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Message: "unused"}
	assert.Equal(t, "warning: unused", d.Header())
	d.Code = "style"
	assert.Equal(t, "warning[style]: unused", d.Header())
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestRenderAll(t *testing.T) {
	r := testRenderer(nil)
	var buf bytes.Buffer
	err := r.RenderAll(&buf, []Diagnostic{
		{Severity: SeverityWarning, Message: "first"},
		{Severity: SeverityNote, Message: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "warning: first\n\nnote: second\n", buf.String())
}

func TestRenderColor(t *testing.T) {
	r := &Renderer{Color: ColorAlways}
	got := render(t, r, Diagnostic{Severity: SeverityError, Message: "boom"})
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "boom")
}

func TestProfile(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, termenv.ANSI, Profile(ColorAlways, &buf))
	assert.Equal(t, termenv.Ascii, Profile(ColorNever, &buf))
	assert.Equal(t, termenv.Ascii, Profile(ColorAuto, &buf))
	assert.False(t, IsTerminal(&buf))

	assert.Equal(t, ColorAlways, ParseColorMode("always"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode("auto"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}
