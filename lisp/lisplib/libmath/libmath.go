// Copyright © 2024 The NeoLisp authors

// Package libmath provides arithmetic and comparison.
package libmath

import (
	"math"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the math functions to s.
func LoadPackage(s *lisp.Scope) error {
	s.Insert("pi", lisp.Constant(lisp.Float(math.Pi)))
	s.AddBuiltins(builtins...)
	return nil
}

var builtins = []*lisp.Builtin{
	libutil.FunctionDoc("+", lisp.Formals(lisp.VarArgSymbol, "numbers"), builtinAdd,
		`Returns the sum of numbers, 0 when none are given. The result is
		a float if any argument is a float. Integer arithmetic wraps
		around on overflow.`),
	libutil.FunctionDoc("-", lisp.Formals("x", lisp.VarArgSymbol, "numbers"), builtinSub,
		`Subtracts numbers from x in order. With a single argument, returns
		the negation of x.`),
	libutil.FunctionDoc("*", lisp.Formals(lisp.VarArgSymbol, "numbers"), builtinMul,
		`Returns the product of numbers, 1 when none are given.`),
	libutil.FunctionDoc("/", lisp.Formals("x", lisp.VarArgSymbol, "numbers"), builtinDiv,
		`Divides x by numbers in order. Integer division truncates toward
		zero. Division of an integer by zero is an error.`),
	libutil.FunctionDoc("%", lisp.Formals("x", "y"), builtinMod,
		`Returns the remainder of the division of x by y, with the sign
		of x.`),
	libutil.FunctionDoc("=", lisp.Formals("a", lisp.VarArgSymbol, "rest"), builtinEq,
		`Returns true if all arguments are equal. Numbers compare by value
		across integers and floats, other values compare structurally.`),
	libutil.FunctionDoc("/=", lisp.Formals("a", "b"), builtinNeq,
		`Returns true if a and b are not equal in the sense of =.`),
	libutil.FunctionDoc("<", lisp.Formals("a", lisp.VarArgSymbol, "rest"), builtinLT,
		`Returns true if the numeric arguments are strictly increasing.`),
	libutil.FunctionDoc("<=", lisp.Formals("a", lisp.VarArgSymbol, "rest"), builtinLEq,
		`Returns true if the numeric arguments are non-decreasing.`),
	libutil.FunctionDoc(">", lisp.Formals("a", lisp.VarArgSymbol, "rest"), builtinGT,
		`Returns true if the numeric arguments are strictly decreasing.`),
	libutil.FunctionDoc(">=", lisp.Formals("a", lisp.VarArgSymbol, "rest"), builtinGEq,
		`Returns true if the numeric arguments are non-increasing.`),
	libutil.FunctionDoc("not", lisp.Formals("value"), builtinNot,
		`Returns true if value is falsey and false otherwise.`),
}

func checkNumbers(name string, args []*lisp.Value) (anyFloat bool, err error) {
	for _, arg := range args {
		if err := lisp.ExpectType(name, arg, lisp.LInt, lisp.LFloat); err != nil {
			return false, err
		}
		if arg.Type == lisp.LFloat {
			anyFloat = true
		}
	}
	return anyFloat, nil
}

type arith struct {
	name  string
	ints  func(a, b int32) (int32, error)
	float func(a, b float32) float32
}

func (op *arith) fold(init *lisp.Value, args []*lisp.Value) (*lisp.Value, error) {
	all := append([]*lisp.Value{init}, args...)
	anyFloat, err := checkNumbers(op.name, all)
	if err != nil {
		return nil, err
	}
	if anyFloat {
		acc := init.ToFloat()
		for _, arg := range args {
			acc = op.float(acc, arg.ToFloat())
		}
		return lisp.Float(acc), nil
	}
	acc := init.Int
	for _, arg := range args {
		acc, err = op.ints(acc, arg.Int)
		if err != nil {
			return nil, err
		}
	}
	return lisp.Int(acc), nil
}

var (
	opAdd = &arith{"+",
		func(a, b int32) (int32, error) { return a + b, nil },
		func(a, b float32) float32 { return a + b }}
	opSub = &arith{"-",
		func(a, b int32) (int32, error) { return a - b, nil },
		func(a, b float32) float32 { return a - b }}
	opMul = &arith{"*",
		func(a, b int32) (int32, error) { return a * b, nil },
		func(a, b float32) float32 { return a * b }}
	opDiv = &arith{"/",
		func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, lisp.TypeErrorf("'/' division by zero.")
			}
			return a / b, nil
		},
		func(a, b float32) float32 { return a / b }}
)

func builtinAdd(args []*lisp.Value) (*lisp.Value, error) {
	return opAdd.fold(lisp.Int(0), args)
}

func builtinSub(args []*lisp.Value) (*lisp.Value, error) {
	if len(args) == 1 {
		return opSub.fold(lisp.Int(0), args)
	}
	return opSub.fold(args[0], args[1:])
}

func builtinMul(args []*lisp.Value) (*lisp.Value, error) {
	return opMul.fold(lisp.Int(1), args)
}

func builtinDiv(args []*lisp.Value) (*lisp.Value, error) {
	if len(args) == 1 {
		return opDiv.fold(lisp.Int(1), args)
	}
	return opDiv.fold(args[0], args[1:])
}

func builtinMod(args []*lisp.Value) (*lisp.Value, error) {
	anyFloat, err := checkNumbers("%", args)
	if err != nil {
		return nil, err
	}
	if anyFloat {
		return lisp.Float(float32(math.Mod(float64(args[0].ToFloat()), float64(args[1].ToFloat())))), nil
	}
	if args[1].Int == 0 {
		return nil, lisp.TypeErrorf("'%%' division by zero.")
	}
	return lisp.Int(args[0].Int % args[1].Int), nil
}

func equal(a, b *lisp.Value) bool {
	if a.IsNumeric() && b.IsNumeric() && a.Type != b.Type {
		return a.ToFloat() == b.ToFloat()
	}
	return lisp.Equal(a, b)
}

func builtinEq(args []*lisp.Value) (*lisp.Value, error) {
	for i := 1; i < len(args); i++ {
		if !equal(args[0], args[i]) {
			return lisp.Bool(false), nil
		}
	}
	return lisp.Bool(true), nil
}

func builtinNeq(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Bool(!equal(args[0], args[1])), nil
}

func compare(name string, args []*lisp.Value, ok func(cmp int) bool) (*lisp.Value, error) {
	anyFloat, err := checkNumbers(name, args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		a, b := args[i-1], args[i]
		var cmp int
		if anyFloat {
			cmp = compareFloat(a.ToFloat(), b.ToFloat())
		} else {
			cmp = compareInt(a.Int, b.Int)
		}
		if !ok(cmp) {
			return lisp.Bool(false), nil
		}
	}
	return lisp.Bool(true), nil
}

func compareInt(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func builtinLT(args []*lisp.Value) (*lisp.Value, error) {
	return compare("<", args, func(cmp int) bool { return cmp < 0 })
}

func builtinLEq(args []*lisp.Value) (*lisp.Value, error) {
	return compare("<=", args, func(cmp int) bool { return cmp <= 0 })
}

func builtinGT(args []*lisp.Value) (*lisp.Value, error) {
	return compare(">", args, func(cmp int) bool { return cmp > 0 })
}

func builtinGEq(args []*lisp.Value) (*lisp.Value, error) {
	return compare(">=", args, func(cmp int) bool { return cmp >= 0 })
}

func builtinNot(args []*lisp.Value) (*lisp.Value, error) {
	return lisp.Bool(!args[0].ToBool()), nil
}
