// Copyright © 2024 The NeoLisp authors

// Package liblist provides list construction and access.
package liblist

import (
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the list functions to s.
func LoadPackage(s *lisp.Scope) error {
	s.AddBuiltins(builtins...)
	return nil
}

var builtins = []*lisp.Builtin{
	libutil.FunctionDoc("list", lisp.Formals(lisp.VarArgSymbol, "values"), builtinList,
		`Returns a list holding the given values in order.`),
	libutil.FunctionDoc("cons", lisp.Formals("head", "tail"), builtinCons,
		`Returns a list starting with head followed by the elements of tail.
		Tail must be a list or nil.`),
	libutil.FunctionDoc("head", lisp.Formals("lis"), builtinHead,
		`Returns the first element of lis, or nil when lis is empty.`),
	libutil.FunctionDoc("tail", lisp.Formals("lis"), builtinTail,
		`Returns a list of all elements of lis except the first.`),
	libutil.FunctionDoc("length", lisp.Formals("lis"), builtinLength,
		`Returns the number of elements of lis.`),
	libutil.FunctionDoc("nth", lisp.Formals("lis", "n"), builtinNth,
		`Returns the element of lis at the zero based index n, or nil when
		n is out of range.`),
	libutil.FunctionDoc("append", lisp.Formals(lisp.VarArgSymbol, "lists"), builtinAppend,
		`Returns a list holding the elements of every given list in order.`),
	libutil.FunctionDoc("reverse", lisp.Formals("lis"), builtinReverse,
		`Returns a list holding the elements of lis in reverse order.`),
}

// listArg returns the elements of v, which must be a list or nil.
func listArg(name string, v *lisp.Value) ([]*lisp.Value, error) {
	if err := lisp.ExpectType(name, v, lisp.LList, lisp.LNil); err != nil {
		return nil, err
	}
	return v.Cells, nil
}

func builtinList(args []*lisp.Value) (*lisp.Value, error) {
	cells := make([]*lisp.Value, len(args))
	copy(cells, args)
	return lisp.List(cells...), nil
}

func builtinCons(args []*lisp.Value) (*lisp.Value, error) {
	tail, err := listArg("cons", args[1])
	if err != nil {
		return nil, err
	}
	cells := make([]*lisp.Value, 0, len(tail)+1)
	cells = append(cells, args[0])
	cells = append(cells, tail...)
	return lisp.List(cells...), nil
}

func builtinHead(args []*lisp.Value) (*lisp.Value, error) {
	cells, err := listArg("head", args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return lisp.Nil(), nil
	}
	return cells[0], nil
}

func builtinTail(args []*lisp.Value) (*lisp.Value, error) {
	cells, err := listArg("tail", args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return lisp.List(), nil
	}
	rest := make([]*lisp.Value, len(cells)-1)
	copy(rest, cells[1:])
	return lisp.List(rest...), nil
}

func builtinLength(args []*lisp.Value) (*lisp.Value, error) {
	cells, err := listArg("length", args[0])
	if err != nil {
		return nil, err
	}
	return lisp.Int(int32(len(cells))), nil
}

func builtinNth(args []*lisp.Value) (*lisp.Value, error) {
	cells, err := listArg("nth", args[0])
	if err != nil {
		return nil, err
	}
	if err := lisp.ExpectType("nth", args[1], lisp.LInt); err != nil {
		return nil, err
	}
	n := int(args[1].Int)
	if n < 0 || n >= len(cells) {
		return lisp.Nil(), nil
	}
	return cells[n], nil
}

func builtinAppend(args []*lisp.Value) (*lisp.Value, error) {
	var cells []*lisp.Value
	for _, arg := range args {
		elems, err := listArg("append", arg)
		if err != nil {
			return nil, err
		}
		cells = append(cells, elems...)
	}
	return lisp.List(cells...), nil
}

func builtinReverse(args []*lisp.Value) (*lisp.Value, error) {
	cells, err := listArg("reverse", args[0])
	if err != nil {
		return nil, err
	}
	rev := make([]*lisp.Value, len(cells))
	for i, c := range cells {
		rev[len(cells)-1-i] = c
	}
	return lisp.List(rev...), nil
}
