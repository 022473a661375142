// Copyright © 2024 The NeoLisp authors

// Package libio provides output, evaluation of data and source loading.
package libio

import (
	"fmt"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the io forms to s.  Output forms write to the Stdout of
// the runtime of s.
func LoadPackage(s *lisp.Scope) error {
	rt := s.Runtime
	s.AddBuiltins(
		libutil.FunctionDoc("println", lisp.Formals("text"), func(args []*lisp.Value) (*lisp.Value, error) {
			return write(rt, "println", args[0], "\n")
		},
			`Writes text followed by a newline to the standard output. Text
			must be a string.`),
		libutil.FunctionDoc("print", lisp.Formals("text"), func(args []*lisp.Value) (*lisp.Value, error) {
			return write(rt, "print", args[0], "")
		},
			`Writes text to the standard output. Text must be a string.`),
		libutil.FunctionDoc("display", lisp.Formals("value"), func(args []*lisp.Value) (*lisp.Value, error) {
			_, err := fmt.Fprintln(rt.Out(), args[0].String())
			if err != nil {
				return nil, err
			}
			return lisp.Nil(), nil
		},
			`Writes the display form of value, as shown by the REPL, followed
			by a newline to the standard output.`),
		libutil.FunctionDoc("error", lisp.Formals("message"), func(args []*lisp.Value) (*lisp.Value, error) {
			return nil, lisp.Errorf(lisp.ErrCustom, "%s", args[0].ToString())
		},
			`Raises an error carrying message.  Message is converted with
			to-string when it is not a string.`),
		libutil.FunctionDoc("load-file", lisp.Formals("path"), func(args []*lisp.Value) (*lisp.Value, error) {
			if err := lisp.ExpectType("load-file", args[0], lisp.LString); err != nil {
				return nil, err
			}
			return s.LoadFile(args[0].Str)
		},
			`Reads and evaluates the expressions of the source file at path
			and returns the value of the last one.`),
	)
	s.AddBuiltins(ops...)
	return nil
}

var ops = []*lisp.Builtin{
	libutil.SpecialDoc("eval", lisp.Formals("expr"), opEval,
		`Evaluates expr, then evaluates the resulting value as code.`),
	libutil.SpecialDoc("macroexpand", lisp.Formals("expr"), opMacroexpand,
		`Evaluates expr in data expansion mode: a macro call returns its
		expansion without evaluating it.`),
}

func write(rt *lisp.Runtime, name string, text *lisp.Value, suffix string) (*lisp.Value, error) {
	if err := lisp.ExpectType(name, text, lisp.LString); err != nil {
		return nil, err
	}
	_, err := fmt.Fprint(rt.Out(), text.Str+suffix)
	if err != nil {
		return nil, err
	}
	return lisp.Nil(), nil
}

func opEval(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	code, c, ok := libutil.EvalTo(s, args[0])
	if !ok {
		return c
	}
	return s.EvalCommand(code)
}

func opMacroexpand(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	s.EnterMode(lisp.ModeDataExpansion)
	defer s.Leave()
	return s.EvalCommand(args[0])
}
