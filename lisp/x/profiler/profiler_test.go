// Copyright © 2024 The NeoLisp authors

package profiler_test

import (
	"testing"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/parser"
	"github.com/stretchr/testify/require"
)

const testSource = `(defndynamic add-it (x y)
  "@trace{ Add It }"
  (+ x y))
(defndynamic add-more (x)
  "@trace"
  (add-it x 1))
(defndynamic twice (x) (* x 2))
(add-more (twice 3))
`

func newScope(t *testing.T) *lisp.Scope {
	t.Helper()
	s, err := lisp.NewInitializedScope(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	require.NoError(t, lisplib.LoadLibrary(s))
	return s
}

func evalTestSource(t *testing.T, s *lisp.Scope) {
	t.Helper()
	v, err := s.LoadString("test.nl", testSource)
	require.NoError(t, err)
	require.Equal(t, lisp.LInt, v.Type)
	require.Equal(t, int32(7), v.Int)
}
