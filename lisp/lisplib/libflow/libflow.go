// Copyright © 2024 The NeoLisp authors

// Package libflow provides conditionals, local bindings and loops.
package libflow

import (
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// ElseSymbol matches unconditionally when used as the test of a cond clause.
const ElseSymbol = "else"

// LoadPackage adds the control flow forms to s.
func LoadPackage(s *lisp.Scope) error {
	s.AddBuiltins(ops...)
	return nil
}

var ops = []*lisp.Builtin{
	libutil.SpecialDoc("if", lisp.Formals("condition", "then", lisp.OptArgSymbol, "else"), opIf,
		`Conditional branch. Evaluates condition; if truthy, evaluates and
		returns then, otherwise evaluates and returns else (nil when
		omitted). Only one branch is evaluated.`),
	libutil.SpecialDoc("when", lisp.Formals("condition", lisp.VarArgSymbol, "body"), opWhen,
		`Evaluates the body forms in order when condition is truthy and
		returns the last value. Returns nil otherwise.`),
	libutil.SpecialDoc("unless", lisp.Formals("condition", lisp.VarArgSymbol, "body"), opUnless,
		`Evaluates the body forms in order when condition is falsey and
		returns the last value. Returns nil otherwise.`),
	libutil.SpecialDoc("cond", lisp.Formals(lisp.VarArgSymbol, "clauses"), opCond,
		`Multi-way conditional. Each clause is a list (test body ...).
		Clauses are tried in order: for the first truthy test the body
		forms are evaluated and the last value returned. Use 'else' as the
		test of the final clause to match unconditionally. Returns nil if
		no clause matches.`),
	libutil.SpecialDoc("progn", lisp.Formals(lisp.VarArgSymbol, "body"), opProgn,
		`Evaluates its body forms sequentially and returns the value of the
		last form. Returns nil if no forms are given.`),
	libutil.SpecialDoc("let", lisp.Formals("bindings", lisp.VarArgSymbol, "body"), opLet,
		`Evaluates the body in a new scope level holding the given
		bindings, a list of (symbol value) pairs. Values are evaluated in
		order, each seeing the bindings before it. Returns the last body
		value.`),
	libutil.SpecialDoc("set", lisp.Formals("name", "value"), opSet,
		`Assigns the value of value to the innermost binding of the
		unevaluated symbol name, creating a variable in the current level
		when name is unbound. Constants cannot be assigned.`),
	libutil.SpecialDoc("define", lisp.Formals("name", "value"), opDefine,
		`Binds the unevaluated symbol name to the value of value in the
		current scope level, shadowing any outer binding.`),
	libutil.SpecialDoc("defconst", lisp.Formals("name", "value"), opDefconst,
		`Binds the unevaluated symbol name to the value of value in the
		current scope level. The binding cannot be assigned with set.`),
	libutil.SpecialDoc("while", lisp.Formals("condition", lisp.VarArgSymbol, "body"), opWhile,
		`Evaluates the body forms repeatedly while condition is truthy.
		Returns the last body value, or the value given to break.`),
	libutil.SpecialDoc("loop", lisp.Formals(lisp.VarArgSymbol, "body"), opLoop,
		`Evaluates the body forms repeatedly until break is called and
		returns the value given to break.`),
	libutil.SpecialDoc("and", lisp.Formals(lisp.VarArgSymbol, "exprs"), opAnd,
		`Short-circuit logical conjunction. Evaluates arguments left to
		right and returns the first falsey value. If all arguments are
		truthy, returns the last value. Returns true with no arguments.`),
	libutil.SpecialDoc("or", lisp.Formals(lisp.VarArgSymbol, "exprs"), opOr,
		`Short-circuit logical disjunction. Evaluates arguments left to
		right and returns the first truthy value. If no argument is
		truthy, returns the last value. Returns false with no arguments.`),
}

func opIf(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	test, c, ok := libutil.EvalTo(s, args[0])
	if !ok {
		return c
	}
	if test.ToBool() {
		return s.EvalCommand(args[1])
	}
	if len(args) > 2 {
		return s.EvalCommand(args[2])
	}
	return lisp.Ok(lisp.Nil())
}

func opWhen(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	test, c, ok := libutil.EvalTo(s, args[0])
	if !ok {
		return c
	}
	if !test.ToBool() {
		return lisp.Ok(lisp.Nil())
	}
	return s.EvalBody(args[1:])
}

func opUnless(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	test, c, ok := libutil.EvalTo(s, args[0])
	if !ok {
		return c
	}
	if test.ToBool() {
		return lisp.Ok(lisp.Nil())
	}
	return s.EvalBody(args[1:])
}

// (cond (test-form then-form)*)
func opCond(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	for i, clause := range args {
		if clause.Type != lisp.LList || len(clause.Cells) == 0 {
			return lisp.Failf(lisp.ErrType, "'cond' clauses must be non-empty lists, got : %v", clause)
		}
		test := clause.Cells[0]
		if test.IsSymbol(ElseSymbol) {
			if i != len(args)-1 {
				return lisp.Failf(lisp.ErrType, "'cond' only accepts 'else' in its last clause")
			}
			return s.EvalBody(clause.Cells[1:])
		}
		v, c, ok := libutil.EvalTo(s, test)
		if !ok {
			return c
		}
		if !v.ToBool() {
			continue
		}
		if len(clause.Cells) == 1 {
			return lisp.Ok(v)
		}
		return s.EvalBody(clause.Cells[1:])
	}
	return lisp.Ok(lisp.Nil())
}

func opProgn(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	return s.EvalBody(args)
}

func opLet(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	bindings := args[0]
	if bindings.Type != lisp.LList && bindings.Type != lisp.LNil {
		return lisp.Failf(lisp.ErrType, "'let' requires a list of bindings as its first argument, got : %v", bindings)
	}
	s.Enter()
	defer s.Leave()
	for _, b := range bindings.Cells {
		if b.Type != lisp.LList || len(b.Cells) != 2 || b.Cells[0].Type != lisp.LSymbol {
			return lisp.Failf(lisp.ErrType, "'let' bindings must be (symbol value) pairs, got : %v", b)
		}
		v, c, ok := libutil.EvalTo(s, b.Cells[1])
		if !ok {
			return c
		}
		s.Insert(b.Cells[0].Str, lisp.Variable(v))
	}
	return s.EvalBody(args[1:])
}

func bindingName(op string, v *lisp.Value) (string, *lisp.Error) {
	if v.Type != lisp.LSymbol {
		return "", lisp.Errorf(lisp.ErrType, "'%s' requires a symbol as its first argument, got : %v", op, v)
	}
	return v.Str, nil
}

func opSet(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	name, err := bindingName("set", args[0])
	if err != nil {
		return lisp.Fail(err)
	}
	if b := s.GetBinding(name); b != nil && b.Kind == lisp.BindConstant {
		return lisp.Failf(lisp.ErrWrongBindingKind, "'%s' is a constant.", name)
	}
	v, c, ok := libutil.EvalTo(s, args[1])
	if !ok {
		return c
	}
	s.Set(name, lisp.Variable(v))
	return lisp.Ok(v)
}

func opDefine(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	name, err := bindingName("define", args[0])
	if err != nil {
		return lisp.Fail(err)
	}
	v, c, ok := libutil.EvalTo(s, args[1])
	if !ok {
		return c
	}
	s.Insert(name, lisp.Variable(v))
	return lisp.Ok(v)
}

func opDefconst(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	name, err := bindingName("defconst", args[0])
	if err != nil {
		return lisp.Fail(err)
	}
	v, c, ok := libutil.EvalTo(s, args[1])
	if !ok {
		return c
	}
	s.Insert(name, lisp.Constant(v))
	return lisp.Ok(v)
}

func opWhile(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	s.EnterLoop()
	defer s.Leave()
	result := lisp.Nil()
	for {
		c := s.EvalCommand(args[0])
		if c.IsEndLoop() {
			return lisp.Ok(c.Value())
		}
		if !c.IsValue() {
			return c
		}
		if !c.Value().ToBool() {
			return lisp.Ok(result)
		}
		c = s.EvalBody(args[1:])
		if c.IsEndLoop() {
			return lisp.Ok(c.Value())
		}
		if !c.IsValue() {
			return c
		}
		result = c.Value()
		if s.IsLoopBroken() {
			return lisp.Ok(result)
		}
	}
}

func opLoop(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	s.EnterLoop()
	defer s.Leave()
	for {
		c := s.EvalBody(args)
		if c.IsEndLoop() {
			return lisp.Ok(c.Value())
		}
		if !c.IsValue() {
			return c
		}
		if s.IsLoopBroken() {
			return c
		}
	}
}

func opAnd(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	result := lisp.Bool(true)
	for _, arg := range args {
		v, c, ok := libutil.EvalTo(s, arg)
		if !ok {
			return c
		}
		if !v.ToBool() {
			return lisp.Ok(v)
		}
		result = v
	}
	return lisp.Ok(result)
}

func opOr(s *lisp.Scope, args []*lisp.Value) lisp.Command {
	result := lisp.Bool(false)
	for _, arg := range args {
		v, c, ok := libutil.EvalTo(s, arg)
		if !ok {
			return c
		}
		if v.ToBool() {
			return lisp.Ok(v)
		}
		result = v
	}
	return lisp.Ok(result)
}
