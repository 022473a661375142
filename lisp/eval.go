// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Eval evaluates v in s.  It is equivalent to s.Eval(v).
func Eval(s *Scope, v *Value) (*Value, error) {
	return s.Eval(v)
}

// Eval evaluates v and returns its value.  A return or break signal which
// is not caught by any boundary is reported as an ErrControlFlow error.
func (s *Scope) Eval(v *Value) (*Value, error) {
	c := s.EvalCommand(v)
	switch c.kind {
	case cmdValue:
		return c.value, nil
	case cmdError:
		return nil, c.err
	case cmdEndCall:
		s.Runtime.Log().Debug("return signal reached top level")
		return nil, errReturnOutsideCall().Push("return", v.Info)
	case cmdEndLoop:
		s.Runtime.Log().Debug("break signal reached top level")
		return nil, errBreakOutsideLoop().Push("break", v.Info)
	default:
		panic(fmt.Sprintf("invalid command kind: %d", c.kind))
	}
}

// EvalCommand evaluates v and returns the resulting command without
// resolving signals.  Special forms use it to evaluate their operands.
func (s *Scope) EvalCommand(v *Value) Command {
	switch v.Type {
	case LSymbol:
		return s.evalSymbol(v)
	case LList:
		return s.evalList(v)
	case LNil, LBool, LInt, LFloat, LChar, LString, LKeyword:
		return Ok(v)
	default:
		panic(fmt.Sprintf("invalid type: %v", v.Type))
	}
}

// EvalBody evaluates exprs in order and returns the command of the last one.
// Evaluation stops at the first command which is not a value.
func (s *Scope) EvalBody(exprs []*Value) Command {
	result := Ok(Nil())
	for _, expr := range exprs {
		result = s.EvalCommand(expr)
		if !result.IsValue() {
			return result
		}
	}
	return result
}

func (s *Scope) evalSymbol(v *Value) Command {
	b := s.GetBinding(v.Str)
	if b == nil {
		return Fail(errUnbound(v.Str).Push(v.Str, v.Info))
	}
	switch b.Kind {
	case BindConstant, BindVariable:
		return Ok(b.Value)
	case BindSpecial, BindEval, BindDynamic, BindMacro:
		err := Errorf(ErrWrongBindingKind, "'%s' is not a variable.", v.Str)
		return Fail(err.Push(v.Str, v.Info))
	default:
		panic(fmt.Sprintf("invalid binding kind: %d", b.Kind))
	}
}

func (s *Scope) evalList(v *Value) Command {
	if len(v.Cells) == 0 {
		return Ok(Nil())
	}
	head := v.Cells[0]
	if head.Type != LSymbol {
		err := Errorf(ErrInvalidExpression, "invalid s-expression : %v", head)
		return Fail(err.Push("neolisp", Intern()))
	}
	name := head.Str
	b := s.GetBinding(name)
	if b == nil {
		return Fail(errUnbound(name).Push(name, head.Info))
	}
	if p := s.Runtime.profiling(); p != nil {
		defer p.Start(name, head.Info)()
	}
	args := v.Cells[1:]
	var c Command
	switch b.Kind {
	case BindConstant, BindVariable:
		c = Failf(ErrWrongBindingKind, "'%s' : expected an operator, got a variable.", name)
	case BindSpecial:
		c = b.Special(s, args)
	case BindEval:
		c = s.callEval(b.Eval, args)
	case BindDynamic:
		c = s.callDynamic(name, b.Form, args)
	case BindMacro:
		c = s.callMacro(name, b.Form, v, args)
	default:
		panic(fmt.Sprintf("invalid binding kind: %d", b.Kind))
	}
	return c.Rethrow(name, head.Info)
}

// evalArgs evaluates args left to right.  The returned command is a value
// when every argument succeeded.
func (s *Scope) evalArgs(args []*Value) ([]*Value, Command) {
	vals := make([]*Value, len(args))
	for i, arg := range args {
		c := s.EvalCommand(arg)
		if !c.IsValue() {
			return nil, c
		}
		vals[i] = c.value
	}
	return vals, Ok(nil)
}

func (s *Scope) callEval(fn EvalFunc, args []*Value) Command {
	vals, c := s.evalArgs(args)
	if !c.IsValue() {
		return c
	}
	result, err := fn(vals)
	if err != nil {
		return Fail(AsError(err))
	}
	if result == nil {
		return Ok(Nil())
	}
	return Ok(result)
}

func (s *Scope) callDynamic(name string, form *Form, args []*Value) Command {
	if len(args) != len(form.Params) {
		return Fail(errArity(name, len(form.Params), len(args)))
	}
	vals, c := s.evalArgs(args)
	if !c.IsValue() {
		return c
	}
	s.enterCall(ModeEvaluate)
	defer s.Leave()
	for i, param := range form.Params {
		s.Insert(param, Variable(vals[i]))
	}
	return s.evalFormBody(form)
}

func (s *Scope) callMacro(name string, form *Form, call *Value, args []*Value) Command {
	if len(args) != len(form.Params) {
		return Fail(errArity(name, len(form.Params), len(args)))
	}
	mode := s.Mode()
	c := s.expandMacro(form, args)
	if !c.IsValue() {
		return c
	}
	expansion := stampExpansion(c.value, name, call)
	if mode == ModeDataExpansion {
		return Ok(expansion)
	}
	return s.EvalCommand(expansion).Rethrow(InternalFramePrefix+"expansion", expansion.Info)
}

// expandMacro evaluates the body of a macro with the raw argument nodes bound
// to its parameters.
func (s *Scope) expandMacro(form *Form, args []*Value) Command {
	s.enterCall(ModeCodeExpansion)
	defer s.Leave()
	for i, param := range form.Params {
		s.Insert(param, Variable(args[i]))
	}
	return s.evalFormBody(form)
}

// evalFormBody evaluates the body of a user form in the call level pushed by
// the caller.  A return signal ends the call with its value.
func (s *Scope) evalFormBody(form *Form) Command {
	c := s.EvalBody(form.Body)
	switch c.kind {
	case cmdValue, cmdError:
		return c
	case cmdEndCall:
		return Ok(c.value)
	case cmdEndLoop:
		// break cannot cross the call boundary; reaching this point means a
		// special form returned EndLoop without checking IsInLoop.
		return Fail(errBreakOutsideLoop())
	default:
		panic(fmt.Sprintf("invalid command kind: %d", c.kind))
	}
}

// Define binds a user form in the innermost level.
func (s *Scope) Define(name string, b *Binding) {
	s.Insert(name, b)
	if b.Form == nil {
		return
	}
	s.Runtime.Log().WithFields(logrus.Fields{
		"form": name,
		"kind": b.Kind.String(),
		"file": b.Form.Source.File,
		"line": b.Form.Source.Line,
	}).Debug("defined form")
}

func errUnbound(name string) *Error {
	return Errorf(ErrUnboundSymbol, "unbound symbol '%s'", name)
}

func errArity(name string, expected, got int) *Error {
	return Errorf(ErrArity, "'%s' requires %d arguments, got %d instead.", name, expected, got)
}

func errBreakOutsideLoop() *Error {
	return Errorf(ErrControlFlow, "'break' called outside of a loop.")
}

func errReturnOutsideCall() *Error {
	return Errorf(ErrControlFlow, "'return' called outside of a function.")
}
