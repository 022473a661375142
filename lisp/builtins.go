// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"fmt"
	"strings"
)

// Symbols with special meaning in a list of formals.
const (
	// OptArgSymbol precedes the formals which may be omitted.
	OptArgSymbol = "&optional"
	// VarArgSymbol precedes the formal collecting any remaining arguments.
	VarArgSymbol = "&rest"
)

// Formals returns a list of formal argument names.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

// Builtin is a documented form implemented in Go.  Exactly one of Special and
// Eval is set.
type Builtin struct {
	name    string
	formals []string
	special SpecialFunc
	eval    EvalFunc
	docs    string
}

// Function returns an eval form builtin.
func Function(name string, formals []string, fn EvalFunc, docs string) *Builtin {
	return &Builtin{name: name, formals: formals, eval: fn, docs: docs}
}

// SpecialOp returns a special form builtin.
func SpecialOp(name string, formals []string, fn SpecialFunc, docs string) *Builtin {
	return &Builtin{name: name, formals: formals, special: fn, docs: docs}
}

// Name returns the name the builtin is bound to.
func (fun *Builtin) Name() string { return fun.name }

// Formals returns the formal argument names of the builtin.
func (fun *Builtin) Formals() []string { return fun.formals }

// Docstring returns the documentation of the builtin.
func (fun *Builtin) Docstring() string { return fun.docs }

// Binding returns the binding installed for the builtin.  Argument counts
// are checked against the formals before the builtin runs.  A nil formals
// list disables the check.
func (fun *Builtin) Binding() *Binding {
	var b *Binding
	if fun.special != nil {
		fn := fun.special
		b = SpecialForm(func(s *Scope, args []*Value) Command {
			if err := CheckArity(fun.name, fun.formals, len(args)); err != nil {
				return Fail(err)
			}
			return fn(s, args)
		})
	} else {
		fn := fun.eval
		b = EvalForm(func(args []*Value) (*Value, error) {
			if err := CheckArity(fun.name, fun.formals, len(args)); err != nil {
				return nil, err
			}
			return fn(args)
		})
	}
	b.Formals = fun.formals
	b.Doc = fun.docs
	return b
}

// AddBuiltins binds each builtin in the innermost level.
func (s *Scope) AddBuiltins(defs ...*Builtin) {
	for _, def := range defs {
		s.Insert(def.name, def.Binding())
	}
}

// CheckArity returns an ErrArity error when n arguments do not satisfy
// formals.
func CheckArity(name string, formals []string, n int) *Error {
	if formals == nil {
		return nil
	}
	min, max := arity(formals)
	switch {
	case max < 0 && n < min:
		return Errorf(ErrArity, "'%s' requires at least %d arguments, got %d instead.", name, min, n)
	case max < 0:
		return nil
	case min == max && n != min:
		return errArity(name, min, n)
	case n < min || n > max:
		return Errorf(ErrArity, "'%s' requires between %d and %d arguments, got %d instead.", name, min, max, n)
	}
	return nil
}

// arity returns the minimum and maximum number of arguments accepted by
// formals.  The maximum is negative for variadic formals.
func arity(formals []string) (min int, max int) {
	optional := false
	for _, f := range formals {
		switch f {
		case VarArgSymbol:
			return min, -1
		case OptArgSymbol:
			optional = true
			continue
		}
		if !optional {
			min++
		}
		max++
	}
	return min, max
}

// FormatFormals renders formals the way they appear in a call.
func FormatFormals(name string, formals []string) string {
	parts := append([]string{name}, formals...)
	return "(" + strings.Join(parts, " ") + ")"
}

// TypeErrorf returns an ErrType error.
func TypeErrorf(format string, v ...interface{}) *Error {
	return Errorf(ErrType, format, v...)
}

// ExpectType returns an ErrType error when v is not of one of the given
// types.
func ExpectType(name string, v *Value, types ...LType) *Error {
	for _, t := range types {
		if v.Type == t {
			return nil
		}
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return TypeErrorf("'%s' only receives a %s, got a %s instead.", name, strings.Join(names, " or "), v.Type)
}

// BuiltinDocs renders the signature and documentation of a binding for
// interactive help.
func BuiltinDocs(name string, b *Binding) string {
	sig := FormatFormals(name, b.Signature())
	doc := strings.TrimSpace(b.Docstring())
	if doc == "" {
		return fmt.Sprintf("%s %s", b.Kind, sig)
	}
	return fmt.Sprintf("%s %s\n%s", b.Kind, sig, doc)
}
