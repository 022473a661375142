// Copyright © 2024 The NeoLisp authors

package lisp

import "fmt"

// BindingKind tells which fields of a Binding are meaningful.
type BindingKind uint8

// Possible BindingKind values.
const (
	BindConstant BindingKind = iota
	BindVariable
	BindSpecial
	BindEval
	BindDynamic
	BindMacro
)

var bindingKindStrings = []string{
	BindConstant: "constant",
	BindVariable: "variable",
	BindSpecial:  "special-form",
	BindEval:     "eval-form",
	BindDynamic:  "dynamic-form",
	BindMacro:    "macro-form",
}

func (k BindingKind) String() string {
	if int(k) >= len(bindingKindStrings) {
		return "invalid"
	}
	return bindingKindStrings[k]
}

// IsForm returns true for callable bindings.
func (k BindingKind) IsForm() bool {
	switch k {
	case BindConstant, BindVariable:
		return false
	case BindSpecial, BindEval, BindDynamic, BindMacro:
		return true
	default:
		panic(fmt.Sprintf("invalid binding kind: %d", k))
	}
}

// SpecialFunc implements a special form.  It receives the unevaluated
// argument nodes and may evaluate them, or mutate the scope, as it sees fit.
type SpecialFunc func(s *Scope, args []*Value) Command

// EvalFunc implements an eval form.  It receives argument values which have
// already been evaluated, left to right.
type EvalFunc func(args []*Value) (*Value, error)

// Form is a user defined function or macro.
type Form struct {
	Source Location
	Params []string
	Body   []*Value
	Doc    string
}

// Binding is the object a name resolves to in a Scope.
type Binding struct {
	Kind    BindingKind
	Value   *Value
	Special SpecialFunc
	Eval    EvalFunc
	Form    *Form

	// Formals and Doc describe builtin forms for interactive help.  User
	// forms keep their documentation in Form.
	Formals []string
	Doc     string
}

// Constant returns a constant binding of v.
func Constant(v *Value) *Binding {
	return &Binding{Kind: BindConstant, Value: v}
}

// Variable returns a mutable binding of v.
func Variable(v *Value) *Binding {
	return &Binding{Kind: BindVariable, Value: v}
}

// SpecialForm returns a binding of a special form.
func SpecialForm(fn SpecialFunc) *Binding {
	return &Binding{Kind: BindSpecial, Special: fn}
}

// EvalForm returns a binding of an eval form.
func EvalForm(fn EvalFunc) *Binding {
	return &Binding{Kind: BindEval, Eval: fn}
}

// DynamicForm returns a binding of a user defined function.
func DynamicForm(form *Form) *Binding {
	return &Binding{Kind: BindDynamic, Form: form}
}

// MacroForm returns a binding of a user defined macro.
func MacroForm(form *Form) *Binding {
	return &Binding{Kind: BindMacro, Form: form}
}

// Signature returns the list of parameter names accepted by the bound form.
func (b *Binding) Signature() []string {
	switch b.Kind {
	case BindDynamic, BindMacro:
		return b.Form.Params
	case BindSpecial, BindEval:
		return b.Formals
	case BindConstant, BindVariable:
		return nil
	default:
		panic(fmt.Sprintf("invalid binding kind: %d", b.Kind))
	}
}

// Docstring returns the documentation attached to the binding.
func (b *Binding) Docstring() string {
	if b.Form != nil {
		return b.Form.Doc
	}
	return b.Doc
}
