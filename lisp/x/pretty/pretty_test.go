// Copyright © 2024 The NeoLisp authors

package pretty_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/x/pretty"
	"github.com/stretchr/testify/assert"
)

func TestSprintAscii(t *testing.T) {
	values := []*lisp.Value{
		lisp.Nil(),
		lisp.Int(4),
		lisp.String("a\nb"),
		lisp.List(lisp.Symbol("f"), lisp.List(lisp.Keyword("k"), lisp.List(lisp.Char(' ')))),
	}
	for _, v := range values {
		for _, depth := range []int{-1, 0, 1, 2} {
			assert.Equal(t, v.Stringify(depth), pretty.Sprint(v, depth, termenv.Ascii))
		}
	}
}

func TestSprintANSI(t *testing.T) {
	out := pretty.Sprint(lisp.List(lisp.Int(1), lisp.Bool(true)), -1, termenv.ANSI)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "true")
	assert.NotEqual(t, "(1 true)", out)
}

func TestProfileFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, termenv.Ascii, pretty.ProfileFor(&buf))
}
