// Copyright © 2024 The NeoLisp authors

package lisp

// Names of the core special forms.
const (
	QuoteSymbol       = "quote"
	EquoteSymbol      = "equote"
	EscapeQuoteSymbol = "escape-quote"
)

var langSpecialOps = []*Builtin{
	SpecialOp(QuoteSymbol, nil, opQuote,
		`Returns its argument unevaluated, location included. This is the
		operator behind the ' prefix syntax.`),
	SpecialOp(EquoteSymbol, nil, opEquote,
		`Returns a quoted template in which every (escape-quote expr) form
		is replaced by the value of expr. All other subexpressions remain
		unevaluated. This is the operator behind the backquote syntax.`),
	SpecialOp(EscapeQuoteSymbol, nil, opEscapeQuote,
		`Marks an expression for evaluation inside an equote template. It
		is an error to evaluate escape-quote anywhere else.`),
	SpecialOp("defndynamic", nil, opDefndynamic,
		`Defines a function: (defndynamic name (param ...) body ...).
		Arguments are evaluated in the caller's scope and bound to the
		parameters in a fresh call level. Free names in the body are
		resolved when the function is called. A string preceding the body
		serves as a documentation string.`),
	SpecialOp("defmacro", nil, opDefmacro,
		`Defines a macro: (defmacro name (param ...) body ...). Arguments
		are bound unevaluated. The value of the body replaces the call
		and is evaluated, unless the call is being expanded by
		macroexpand.`),
	SpecialOp("return", Formals(OptArgSymbol, "value"), opReturn,
		`Ends the innermost function call, which returns value (or nil).
		It is an error to return outside of a function.`),
	SpecialOp("break", Formals(OptArgSymbol, "value"), opBreak,
		`Ends the innermost loop, which evaluates to value (or nil). A
		function call hides the loops of its caller, so break cannot end
		them.`),
}

// DefaultSpecialOps returns the core special forms installed by
// InitializeScope.
func DefaultSpecialOps() []*Builtin {
	ops := make([]*Builtin, len(langSpecialOps))
	copy(ops, langSpecialOps)
	return ops
}

func opQuote(s *Scope, args []*Value) Command {
	if len(args) != 1 {
		err := Errorf(ErrArity, "'quote' only receives 1 argument, got %d instead.", len(args))
		return Fail(err.Push(QuoteSymbol, Intern()))
	}
	return Ok(args[0])
}

func opEquote(s *Scope, args []*Value) Command {
	if len(args) != 1 {
		err := Errorf(ErrArity, "'equote' only receives 1 argument, got %d instead.", len(args))
		return Fail(err.Push(EquoteSymbol, Intern()))
	}
	return unquoteTree(s, args[0]).Rethrow(EquoteSymbol, Intern())
}

// unquoteTree rebuilds v, replacing each (escape-quote x) with the value of
// x.  Nodes are processed depth first, left to right.
func unquoteTree(s *Scope, v *Value) Command {
	if v.Type != LList || len(v.Cells) == 0 {
		return Ok(v)
	}
	if v.Cells[0].IsSymbol(EscapeQuoteSymbol) {
		operands := v.Cells[1:]
		if len(operands) != 1 {
			err := Errorf(ErrEscapeQuote, "'escape-quote' requires 1 argument, got %d instead.", len(operands))
			return Fail(err.Push(EscapeQuoteSymbol, Intern()))
		}
		return s.EvalCommand(operands[0]).Rethrow(EscapeQuoteSymbol, Intern())
	}
	cells := make([]*Value, len(v.Cells))
	for i, cell := range v.Cells {
		c := unquoteTree(s, cell)
		if !c.IsValue() {
			return c
		}
		cells[i] = c.value
	}
	return Ok(List(cells...).WithInfo(v.Info))
}

func opEscapeQuote(s *Scope, args []*Value) Command {
	err := Errorf(ErrEscapeQuote, "'escape-quote' must be within a 'equote' form.")
	return Fail(err.Push(EscapeQuoteSymbol, Intern()))
}

func opDefndynamic(s *Scope, args []*Value) Command {
	form, err := parseFormDefinition("defndynamic", args)
	if err != nil {
		return Fail(err)
	}
	s.Define(args[0].Str, DynamicForm(form))
	return Ok(Nil())
}

func opDefmacro(s *Scope, args []*Value) Command {
	form, err := parseFormDefinition("defmacro", args)
	if err != nil {
		return Fail(err)
	}
	s.Define(args[0].Str, MacroForm(form))
	return Ok(Nil())
}

// parseFormDefinition validates (name (param ...) [doc] body ...) and
// returns the described form.  The form is located at its name.
func parseFormDefinition(op string, args []*Value) (*Form, *Error) {
	fail := func(format string, v ...interface{}) (*Form, *Error) {
		return nil, Errorf(ErrType, format, v...).Push(op, Intern())
	}
	if len(args) < 3 {
		err := Errorf(ErrArity, "'%s' requires at least 3 arguments, got %d instead.", op, len(args))
		return nil, err.Push(op, Intern())
	}
	if args[0].Type != LSymbol {
		return fail("'%s' requires a symbol as its first argument, got : %v", op, args[0])
	}
	if args[1].Type != LList && args[1].Type != LNil {
		return fail("'%s' requires a list of symbol as its second argument, got : %v", op, args[1])
	}
	params := make([]string, 0, len(args[1].Cells))
	for i, p := range args[1].Cells {
		if p.Type != LSymbol {
			return fail("'%s' only accepts symbols for the argument list, for the %d argument, got : %v", op, i+1, p)
		}
		params = append(params, p.Str)
	}
	body := args[2:]
	var doc string
	if len(body) > 1 && body[0].Type == LString {
		doc = body[0].Str
		body = body[1:]
	}
	return &Form{
		Source: args[0].Info,
		Params: params,
		Body:   body,
		Doc:    doc,
	}, nil
}

func opReturn(s *Scope, args []*Value) Command {
	if !s.IsInCall() {
		return Fail(errReturnOutsideCall().Push("return", Intern()))
	}
	value := Nil()
	if len(args) > 0 {
		c := s.EvalCommand(args[0])
		if !c.IsValue() {
			return c
		}
		value = c.value
	}
	return EndCall(value)
}

func opBreak(s *Scope, args []*Value) Command {
	if !s.IsInLoop() {
		return Fail(errBreakOutsideLoop().Push("break", Intern()))
	}
	value := Nil()
	if len(args) > 0 {
		c := s.EvalCommand(args[0])
		if !c.IsValue() {
			return c
		}
		value = c.value
	}
	s.BreakLoop()
	return EndLoop(value)
}
