// Copyright © 2024 The NeoLisp authors

package lisplib_test

import (
	"testing"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/lisp/lisplib/libhelp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibrary(t *testing.T) {
	s, err := lisp.NewInitializedScope()
	require.NoError(t, err)
	require.NoError(t, lisplib.LoadLibrary(s))

	for _, name := range []string{"if", "let", "while", "is-nil?", "to-string", "+", "list", "println", "macroexpand", "help"} {
		b := s.GetBinding(name)
		if assert.NotNilf(t, b, "%s should be bound", name) {
			assert.Truef(t, b.Kind.IsForm(), "%s should be a form", name)
		}
	}
	assert.Equal(t, 1, s.Depth(), "the library is loaded in the global level")
}

func TestLibraryDocumented(t *testing.T) {
	s, err := lisplib.NewDocScope()
	require.NoError(t, err)
	assert.Empty(t, libhelp.CheckMissing(s))
}
