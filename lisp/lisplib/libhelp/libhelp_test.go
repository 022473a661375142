// Copyright © 2024 The NeoLisp authors

package libhelp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/lisp/lisplib/libhelp"
	"github.com/neolisp/nl/nltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVar(t *testing.T) {
	s, err := lisplib.NewDocScope()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, libhelp.RenderVar(&buf, s, "if"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "special-form (if condition then &optional else)\n"), out)
	assert.Contains(t, out, "  Conditional branch.")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 74, line)
	}

	_, err = s.LoadString("test.nl", `(defndynamic add (a b) "Adds a and b." (+ a b))`)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, libhelp.RenderVar(&buf, s, "add"))
	assert.Equal(t, "dynamic-form (add a b)\n  Adds a and b.\n", buf.String())

	buf.Reset()
	require.NoError(t, libhelp.RenderVar(&buf, s, "pi"))
	assert.Equal(t, "constant pi 3.1415927\n", buf.String())

	buf.Reset()
	assert.Error(t, libhelp.RenderVar(&buf, s, "no-such-name"))
}

func TestCleanDocstring(t *testing.T) {
	doc := `
		First line of the
		documentation.
		`
	assert.Equal(t, "  First line of the\n  documentation.", libhelp.CleanDocstring(doc))
	assert.Equal(t, "", libhelp.CleanDocstring(""))
}

func TestHelp(t *testing.T) {
	tests := nltest.TestSuite{
		{"help", nltest.TestSequence{
			{"(define x 3)", "3", ""},
			{"(help x)", "nil", "variable x 3\n"},
			{"(help 1)", "'help' requires a symbol, got a Integer instead.", ""},
			{"(help y)", "unbound symbol 'y'", ""},
		}},
	}
	nltest.RunTestSuite(t, tests)
}

func TestCheckMissing(t *testing.T) {
	s, err := lisplib.NewDocScope()
	require.NoError(t, err)
	_, err = s.LoadString("test.nl", `(defndynamic undocumented (x) x)`)
	require.NoError(t, err)
	missing := libhelp.CheckMissing(s)
	require.Len(t, missing, 1)
	assert.Equal(t, "undocumented", missing[0].Name)
	assert.Equal(t, "dynamic-form", missing[0].Kind)
}
