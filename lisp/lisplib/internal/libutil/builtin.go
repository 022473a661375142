// Copyright © 2024 The NeoLisp authors

package libutil

import "github.com/neolisp/nl/lisp"

func Function(name string, formals []string, fun lisp.EvalFunc) *lisp.Builtin {
	return lisp.Function(name, formals, fun, "")
}

func FunctionDoc(name string, formals []string, fun lisp.EvalFunc, docs string) *lisp.Builtin {
	return lisp.Function(name, formals, fun, docs)
}

func SpecialDoc(name string, formals []string, fun lisp.SpecialFunc, docs string) *lisp.Builtin {
	return lisp.SpecialOp(name, formals, fun, docs)
}

// Predicate returns a one argument function testing the kind of its
// argument.
func Predicate(name string, typ lisp.LType, docs string) *lisp.Builtin {
	return lisp.Function(name, lisp.Formals("value"), func(args []*lisp.Value) (*lisp.Value, error) {
		return lisp.Bool(args[0].Type == typ), nil
	}, docs)
}

// EvalTo evaluates v in s.  When ok is false the returned command must be
// handed back to the caller.
func EvalTo(s *lisp.Scope, v *lisp.Value) (result *lisp.Value, c lisp.Command, ok bool) {
	c = s.EvalCommand(v)
	if !c.IsValue() {
		return nil, c, false
	}
	return c.Value(), c, true
}
