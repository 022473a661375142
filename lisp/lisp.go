// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"strconv"
	"strings"
)

// LType is the kind of an Object.
type LType uint8

// Possible LType values.  The set is closed; switches over LType panic on an
// unknown value.
const (
	LNil LType = iota
	LBool
	LInt
	LFloat
	LChar
	LString
	LKeyword
	LSymbol
	LList
)

var ltypeStrings = []string{
	LNil:     "Nil",
	LBool:    "Bool",
	LInt:     "Integer",
	LFloat:   "Float",
	LChar:    "Char",
	LString:  "String",
	LKeyword: "Keyword",
	LSymbol:  "Symbol",
	LList:    "List",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return "Invalid"
	}
	return ltypeStrings[t]
}

// Object is a node in an expression tree.  The Info payload is generic so the
// reader can attach raw source spans which are later transformed into
// Locations (see Transform and CompleteLocations).
//
// Only the fields relevant to Type are meaningful.  Str holds the payload of
// strings, keywords and symbols.
type Object[T any] struct {
	Type  LType
	Info  T
	Bool  bool
	Int   int32
	Float float32
	Char  rune
	Str   string
	Cells []*Object[T]
}

// Value is the object type manipulated by the evaluator.
type Value = Object[Location]

// Nil returns a nil value without location.
func Nil() *Value {
	return &Value{Type: LNil}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{Type: LBool, Bool: b}
}

// Int returns an integer value.
func Int(x int32) *Value {
	return &Value{Type: LInt, Int: x}
}

// Float returns a float value.
func Float(x float32) *Value {
	return &Value{Type: LFloat, Float: x}
}

// Char returns a character value.
func Char(c rune) *Value {
	return &Value{Type: LChar, Char: c}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{Type: LString, Str: s}
}

// Keyword returns a keyword value.  The name does not include the leading
// colon.
func Keyword(name string) *Value {
	return &Value{Type: LKeyword, Str: name}
}

// Symbol returns a symbol value.
func Symbol(name string) *Value {
	return &Value{Type: LSymbol, Str: name}
}

// List returns a list owning cells.
func List(cells ...*Value) *Value {
	if cells == nil {
		cells = []*Value{}
	}
	return &Value{Type: LList, Cells: cells}
}

// WithInfo sets the info payload of o and returns o.
func (o *Object[T]) WithInfo(info T) *Object[T] {
	o.Info = info
	return o
}

// Len returns the number of children of a list and 0 for any other kind.
func (o *Object[T]) Len() int {
	if o.Type != LList {
		return 0
	}
	return len(o.Cells)
}

// IsNil returns true if o is nil.
func (o *Object[T]) IsNil() bool { return o.Type == LNil }

// IsList returns true if o is a list.
func (o *Object[T]) IsList() bool { return o.Type == LList }

// IsSymbol returns true if o is a symbol, optionally with one of the given
// names.
func (o *Object[T]) IsSymbol(names ...string) bool {
	if o.Type != LSymbol {
		return false
	}
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if o.Str == name {
			return true
		}
	}
	return false
}

// IsNumeric returns true for integers and floats.
func (o *Object[T]) IsNumeric() bool {
	return o.Type == LInt || o.Type == LFloat
}

// Copy returns a deep copy of o.  Info payloads are copied by value.
func (o *Object[T]) Copy() *Object[T] {
	if o == nil {
		return nil
	}
	cp := *o
	if o.Cells != nil {
		cp.Cells = make([]*Object[T], len(o.Cells))
		for i := range o.Cells {
			cp.Cells[i] = o.Cells[i].Copy()
		}
	}
	return &cp
}

// Set replaces the variant and payload of o with those of other.  The info of
// o is kept.  The children of other are not copied.
func (o *Object[T]) Set(other *Object[T]) {
	info := o.Info
	*o = *other
	o.Info = info
}

func (o *Object[T]) reset(typ LType) {
	info := o.Info
	*o = Object[T]{Type: typ, Info: info}
}

// SetNil replaces o with nil.
func (o *Object[T]) SetNil() { o.reset(LNil) }

// SetBool replaces o with a boolean.
func (o *Object[T]) SetBool(b bool) {
	o.reset(LBool)
	o.Bool = b
}

// SetInt replaces o with an integer.
func (o *Object[T]) SetInt(x int32) {
	o.reset(LInt)
	o.Int = x
}

// SetFloat replaces o with a float.
func (o *Object[T]) SetFloat(x float32) {
	o.reset(LFloat)
	o.Float = x
}

// SetChar replaces o with a character.
func (o *Object[T]) SetChar(c rune) {
	o.reset(LChar)
	o.Char = c
}

// SetString replaces o with a string.
func (o *Object[T]) SetString(s string) {
	o.reset(LString)
	o.Str = s
}

// SetKeyword replaces o with a keyword.
func (o *Object[T]) SetKeyword(name string) {
	o.reset(LKeyword)
	o.Str = name
}

// SetSymbol replaces o with a symbol.
func (o *Object[T]) SetSymbol(name string) {
	o.reset(LSymbol)
	o.Str = name
}

// SetList replaces o with a list owning cells.
func (o *Object[T]) SetList(cells []*Object[T]) {
	o.reset(LList)
	o.Cells = cells
}

// Transform maps fn over the info payload of every node of o, depth-first and
// left to right, and returns a new tree carrying the results.
func Transform[T, U any](o *Object[T], fn func(T) U) *Object[U] {
	if o == nil {
		return nil
	}
	out := &Object[U]{
		Type:  o.Type,
		Info:  fn(o.Info),
		Bool:  o.Bool,
		Int:   o.Int,
		Float: o.Float,
		Char:  o.Char,
		Str:   o.Str,
	}
	if o.Type == LList {
		out.Cells = make([]*Object[U], len(o.Cells))
		for i, c := range o.Cells {
			out.Cells[i] = Transform(c, fn)
		}
	}
	return out
}

// Equal reports whether a and b are structurally equal, ignoring info.
func Equal[T any](a, b *Object[T]) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNil:
		return true
	case LBool:
		return a.Bool == b.Bool
	case LInt:
		return a.Int == b.Int
	case LFloat:
		return a.Float == b.Float
	case LChar:
		return a.Char == b.Char
	case LString, LKeyword, LSymbol:
		return a.Str == b.Str
	case LList:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	default:
		panic("invalid type: " + a.Type.String())
	}
}

// String returns the display form of o.
func (o *Object[T]) String() string {
	return o.Stringify(-1)
}

// Stringify returns the display form of o.  Lists nested maxDepth levels deep
// are collapsed to "(...)".  A negative maxDepth disables the limit.
func (o *Object[T]) Stringify(maxDepth int) string {
	var b strings.Builder
	o.stringify(&b, maxDepth, 0)
	return b.String()
}

func (o *Object[T]) stringify(b *strings.Builder, maxDepth int, depth int) {
	if o.Type != LList {
		b.WriteString(o.atomString())
		return
	}
	if maxDepth >= 0 && depth >= maxDepth {
		b.WriteString("(...)")
		return
	}
	b.WriteString("(")
	for i, c := range o.Cells {
		if i > 0 {
			b.WriteString(" ")
		}
		c.stringify(b, maxDepth, depth+1)
	}
	b.WriteString(")")
}

// atomString returns the display form of a non-list object.
func (o *Object[T]) atomString() string {
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
		return CharName(o.Char)
	case LString:
		return strconv.Quote(o.Str)
	case LKeyword:
		return ":" + o.Str
	case LSymbol:
		return o.Str
	default:
		panic("not an atom: " + o.Type.String())
	}
}

// CharName returns the reader syntax of a character.
func CharName(c rune) string {
	switch c {
	case '\n':
		return "#newline"
	case '\t':
		return "#tab"
	case '\r':
		return "#carriage-return"
	case ' ':
		return "#space"
	default:
		return "#" + string(c)
	}
}

func formatFloat(x float32) string {
	return strconv.FormatFloat(float64(x), 'f', -1, 32)
}
