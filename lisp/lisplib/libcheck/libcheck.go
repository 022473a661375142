// Copyright © 2024 The NeoLisp authors

// Package libcheck provides kind predicates.
package libcheck

import (
	"strings"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the predicates to s.
func LoadPackage(s *lisp.Scope) error {
	s.AddBuiltins(builtins...)
	return nil
}

var builtins = []*lisp.Builtin{
	libutil.Predicate("is-nil?", lisp.LNil, `Returns true if value is nil.`),
	libutil.Predicate("is-bool?", lisp.LBool, `Returns true if value is true or false.`),
	libutil.Predicate("is-integer?", lisp.LInt, `Returns true if value is an integer.`),
	libutil.Predicate("is-float?", lisp.LFloat, `Returns true if value is a float.`),
	libutil.Predicate("is-char?", lisp.LChar, `Returns true if value is a character.`),
	libutil.Predicate("is-string?", lisp.LString, `Returns true if value is a string.`),
	libutil.Predicate("is-keyword?", lisp.LKeyword, `Returns true if value is a keyword.`),
	libutil.Predicate("is-symbol?", lisp.LSymbol, `Returns true if value is a symbol.`),
	libutil.Predicate("is-list?", lisp.LList, `Returns true if value is a list, empty or not.`),
	libutil.FunctionDoc("kind-of", lisp.Formals("value"), builtinKindOf,
		`Returns the kind of value as a keyword: :nil, :bool, :integer,
		:float, :char, :string, :keyword, :symbol or :list.`),
}

func builtinKindOf(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Keyword(strings.ToLower(args[0].Type.String())), nil
}
