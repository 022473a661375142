// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ToBool returns the truthiness of o.  Empty texts and empty lists are false.
func (o *Object[T]) ToBool() bool {
	switch o.Type {
	case LNil:
		return false
	case LBool:
		return o.Bool
	case LInt:
		return o.Int != 0
	case LFloat:
		return o.Float != 0
	case LChar:
		return o.Char != 0
	case LString, LKeyword, LSymbol:
		return o.Str != ""
	case LList:
		return len(o.Cells) != 0
	default:
		panic("invalid type: " + o.Type.String())
	}
}

// ToInteger converts o to an integer.  Texts convert to their length, not to
// the number they may spell.
func (o *Object[T]) ToInteger() int32 {
	switch o.Type {
	case LNil:
		return 0
	case LBool:
		if o.Bool {
			return 1
		}
		return 0
	case LInt:
		return o.Int
	case LFloat:
		return int32(o.Float)
	case LChar:
		return int32(o.Char)
	case LString, LKeyword, LSymbol:
		return int32(utf8.RuneCountInString(o.Str))
	case LList:
		return int32(len(o.Cells))
	default:
		panic("invalid type: " + o.Type.String())
	}
}

// ToFloat converts o to a float following the ToInteger rules.
func (o *Object[T]) ToFloat() float32 {
	switch o.Type {
	case LFloat:
		return o.Float
	case LNil, LBool, LInt, LChar, LString, LKeyword, LSymbol, LList:
		return float32(o.ToInteger())
	default:
		panic("invalid type: " + o.Type.String())
	}
}

// ToChar converts o to a character following the ToInteger rules.
func (o *Object[T]) ToChar() rune {
	switch o.Type {
	case LChar:
		return o.Char
	case LFloat:
		return rune(int32(o.Float))
	case LNil, LBool, LInt, LString, LKeyword, LSymbol, LList:
		return rune(o.ToInteger())
	default:
		panic("invalid type: " + o.Type.String())
	}
}

// ToString converts o to text.  Strings, keywords and symbols yield their raw
// name.  Lists render each element followed by a space, so (1 2) gives
// "(1 2 )".
func (o *Object[T]) ToString() string {
	switch o.Type {
	case LNil:
		return "nil"
	case LBool:
		return strconv.FormatBool(o.Bool)
	case LInt:
		return strconv.FormatInt(int64(o.Int), 10)
	case LFloat:
		return formatFloat(o.Float)
	case LChar:
		return string(o.Char)
	case LString, LKeyword, LSymbol:
		return o.Str
	case LList:
		var b strings.Builder
		b.WriteString("(")
		for _, c := range o.Cells {
			b.WriteString(c.ToString())
			b.WriteString(" ")
		}
		b.WriteString(")")
		return b.String()
	default:
		panic("invalid type: " + o.Type.String())
	}
}

// ToKeyword converts o to a keyword name using the ToString rules.
func (o *Object[T]) ToKeyword() string { return o.ToString() }

// ToSymbol converts o to a symbol name using the ToString rules.
func (o *Object[T]) ToSymbol() string { return o.ToString() }

// ToList converts o to a sequence.  Nil is the empty list and any other atom
// becomes a one element list holding a copy of o.
func (o *Object[T]) ToList() []*Object[T] {
	switch o.Type {
	case LNil:
		return []*Object[T]{}
	case LList:
		cells := make([]*Object[T], len(o.Cells))
		for i, c := range o.Cells {
			cells[i] = c.Copy()
		}
		return cells
	case LBool, LInt, LFloat, LChar, LString, LKeyword, LSymbol:
		return []*Object[T]{o.Copy()}
	default:
		panic("invalid type: " + o.Type.String())
	}
}
