// Copyright © 2024 The NeoLisp authors

package regexparser_test

import (
	"strings"
	"testing"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/parser/regexparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOne(t *testing.T, source string) *lisp.Value {
	t.Helper()
	vals, err := regexparser.ReadString("test", source)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	return vals[0]
}

func TestAtoms(t *testing.T) {
	tests := []struct {
		source string
		typ    lisp.LType
		str    string
	}{
		{"nil", lisp.LNil, "nil"},
		{"true", lisp.LBool, "true"},
		{"false", lisp.LBool, "false"},
		{"42", lisp.LInt, "42"},
		{"1_000", lisp.LInt, "1000"},
		{"0x1F", lisp.LInt, "31"},
		{"0o17", lisp.LInt, "15"},
		{"0b1010", lisp.LInt, "10"},
		{"2.5", lisp.LFloat, "2.5"},
		{"#a", lisp.LChar, "#a"},
		{"#space", lisp.LChar, "#space"},
		{`#\n`, lisp.LChar, "#newline"},
		{`"hello"`, lisp.LString, `"hello"`},
		{`"a\"b"`, lisp.LString, `"a\"b"`},
		{`r"say ""hi"""`, lisp.LString, `"say \"hi\""`},
		{":key", lisp.LKeyword, ":key"},
		{"foo-bar?", lisp.LSymbol, "foo-bar?"},
		{"+", lisp.LSymbol, "+"},
		{"nil?", lisp.LSymbol, "nil?"},
		{"truex", lisp.LSymbol, "truex"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			v := readOne(t, test.source)
			assert.Equal(t, test.typ, v.Type)
			assert.Equal(t, test.str, v.String())
		})
	}
}

func TestStringEscapes(t *testing.T) {
	v := readOne(t, `"a\tb\nc\\"`)
	assert.Equal(t, "a\tb\nc\\", v.Str)
}

func TestSugar(t *testing.T) {
	tests := []struct {
		source string
		head   string
	}{
		{"'x", lisp.QuoteSymbol},
		{"`x", lisp.EquoteSymbol},
		{",x", lisp.EscapeQuoteSymbol},
	}
	for _, test := range tests {
		v := readOne(t, test.source)
		require.Equal(t, lisp.LList, v.Type, test.source)
		require.Len(t, v.Cells, 2)
		assert.True(t, v.Cells[0].IsSymbol(test.head))
		assert.Equal(t, 0, v.Cells[0].Info.Index)
		assert.Equal(t, 1, v.Cells[0].Info.Length)
		assert.Equal(t, 2, v.Info.Length)
		assert.True(t, v.Cells[1].IsSymbol("x"))
	}
}

func TestNestedLists(t *testing.T) {
	v := readOne(t, "(a (b c) ())")
	require.Equal(t, lisp.LList, v.Type)
	require.Len(t, v.Cells, 3)
	assert.Equal(t, "(a (b c) ())", v.String())
	assert.Len(t, v.Cells[2].Cells, 0)
}

func TestComments(t *testing.T) {
	vals, err := regexparser.ReadString("test", "; leading\n(a ; inner\n b)\n; trailing")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, "(a b)", vals[0].String())
}

func TestLocations(t *testing.T) {
	vals, err := regexparser.ReadString("file.nl", "(a\n  b)\n  c")
	require.NoError(t, err)
	require.Len(t, vals, 2)

	list := vals[0]
	assert.Equal(t, lisp.LocDirect, list.Info.Kind)
	assert.Equal(t, "file.nl", list.Info.File)
	assert.Equal(t, 1, list.Info.Line)
	assert.Equal(t, 1, list.Info.Column)
	assert.Equal(t, 0, list.Info.Index)
	assert.Equal(t, 7, list.Info.Length)

	b := list.Cells[1]
	assert.Equal(t, 2, b.Info.Line)
	assert.Equal(t, 3, b.Info.Column)
	assert.Equal(t, 5, b.Info.Index)

	c := vals[1]
	assert.Equal(t, 3, c.Info.Line)
	assert.Equal(t, 3, c.Info.Column)
	assert.Equal(t, "in file 'file.nl', at 3:3", c.Info.String())
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"unmatched open", "(a b", "unmatched"},
		{"extra close", "(a b))", "unexpected source text"},
		{"integer overflow", "2147483648", "bad number"},
		{"unknown escape", `"\q"`, "unknown escape"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := regexparser.ReadString("test", test.source)
			require.Error(t, err)
			serr, ok := err.(*regexparser.SyntaxError)
			require.True(t, ok, "%T", err)
			assert.Contains(t, serr.Message, test.msg)
			assert.Equal(t, "test", serr.Source.File)
		})
	}
}

func TestIntegerLimits(t *testing.T) {
	v := readOne(t, "2147483647")
	assert.Equal(t, int32(2147483647), v.Int)
}

func BenchmarkReader(b *testing.B) {
	source := strings.Repeat("(defndynamic add (a b) \"docs\" (+ a b 0x10 2.5 #space))\n", 100)
	b.SetBytes(int64(len(source)))
	for i := 0; i < b.N; i++ {
		_, err := regexparser.NewReader().Read("bench", strings.NewReader(source))
		if err != nil {
			b.Fatalf("Parse failure: %v", err)
		}
	}
}
