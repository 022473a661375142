// Copyright © 2024 The NeoLisp authors

// Package libconv exposes the value coercions as functions.
package libconv

import (
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the conversion functions to s.
func LoadPackage(s *lisp.Scope) error {
	s.AddBuiltins(builtins...)
	return nil
}

var builtins = []*lisp.Builtin{
	libutil.FunctionDoc("to-bool", lisp.Formals("value"), builtinToBool,
		`Returns the truth value of value. Nil, false, zero, the NUL
		character and empty strings, keywords, symbols and lists are false.`),
	libutil.FunctionDoc("to-integer", lisp.Formals("value"), builtinToInteger,
		`Converts value to an integer. Floats are truncated. Strings,
		keywords and symbols yield their length, not a parsed number, and
		lists their number of elements.`),
	libutil.FunctionDoc("to-float", lisp.Formals("value"), builtinToFloat,
		`Converts value to a float, following the rules of to-integer.`),
	libutil.FunctionDoc("to-char", lisp.Formals("value"), builtinToChar,
		`Converts value to the character of the code given by to-integer.`),
	libutil.FunctionDoc("to-string", lisp.Formals("value"), builtinToString,
		`Converts value to a string. Lists render each element followed by
		a space inside parentheses.`),
	libutil.FunctionDoc("to-keyword", lisp.Formals("value"), builtinToKeyword,
		`Returns the keyword named by the to-string text of value.`),
	libutil.FunctionDoc("to-symbol", lisp.Formals("value"), builtinToSymbol,
		`Returns the symbol named by the to-string text of value.`),
	libutil.FunctionDoc("to-list", lisp.Formals("value"), builtinToList,
		`Converts value to a list. Nil is the empty list, lists are copied
		and any other value is wrapped in a one element list.`),
}

func builtinToBool(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Bool(args[0].ToBool()), nil
}

func builtinToInteger(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Int(args[0].ToInteger()), nil
}

func builtinToFloat(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Float(args[0].ToFloat()), nil
}

func builtinToChar(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Char(args[0].ToChar()), nil
}

func builtinToString(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.String(args[0].ToString()), nil
}

func builtinToKeyword(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Keyword(args[0].ToKeyword()), nil
}

func builtinToSymbol(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Symbol(args[0].ToSymbol()), nil
}

func builtinToList(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.List(args[0].ToList()...), nil
}
