// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	source := "(a b)\n  (c\nd)"
	tests := []struct {
		index  int
		line   int
		column int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{6, 2, 1},
		{8, 2, 3},
		{11, 3, 1},
		{12, 3, 2},
		{len(source), 3, 3},
	}
	for _, test := range tests {
		loc := LightLocation(test.index, 1)
		loc.Complete("f.nl", source)
		assert.Equal(t, "f.nl", loc.File)
		assert.Equal(t, test.line, loc.Line, "index %d", test.index)
		assert.Equal(t, test.column, loc.Column, "index %d", test.index)
		assert.Equal(t, test.index, loc.Index)
	}
}

func TestCompleteCountsRunes(t *testing.T) {
	source := "\"é\" x"
	loc := LightLocation(strings.Index(source, "x"), 1)
	loc.Complete("u.nl", source)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 5, loc.Column)
}

func TestCompleteIgnoresOtherKinds(t *testing.T) {
	loc := NoLocation()
	loc.Complete("f.nl", "abc")
	assert.True(t, loc.IsNone())
	assert.Empty(t, loc.File)
}

func TestCompleteLocations(t *testing.T) {
	source := "(f\n 1)"
	tree := &Object[Span]{Type: LList, Info: Span{0, 6}, Cells: []*Object[Span]{
		{Type: LSymbol, Str: "f", Info: Span{1, 1}},
		{Type: LInt, Int: 1, Info: Span{4, 1}},
	}}
	v := CompleteLocations(tree, "t.nl", source)
	assert.Equal(t, DirectLocation("t.nl", 1, 1, 0, 6), v.Info)
	assert.Equal(t, DirectLocation("t.nl", 1, 2, 1, 1), v.Cells[0].Info)
	assert.Equal(t, DirectLocation("t.nl", 2, 2, 4, 1), v.Cells[1].Info)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "no location", NoLocation().String())
	assert.Equal(t, "in file 'a.nl', at 3:7", DirectLocation("a.nl", 3, 7, 40, 2).String())
	assert.Equal(t, "in 'op.go' line 12", Location{Kind: LocIntern, File: "op.go", Line: 12}.String())

	intern := Intern()
	assert.Equal(t, LocIntern, intern.Kind)
	assert.Equal(t, "location_test.go", intern.File)

	form := List(Symbol("m"))
	exp := ExpansionLocation(Expansion{MacroName: "m", Form: form, Direct: DirectLocation("a.nl", 1, 1, 0, 3)})
	assert.Equal(t, "from the expansion of 'm', in file 'a.nl', at 1:1, from the expression (m)", exp.String())
}

func TestDirect(t *testing.T) {
	d := DirectLocation("a.nl", 2, 1, 5, 1)
	loc, ok := d.Direct()
	assert.True(t, ok)
	assert.Equal(t, d, loc)

	_, ok = NoLocation().Direct()
	assert.False(t, ok)

	exp := ExpansionLocation(
		Expansion{MacroName: "inner"},
		Expansion{MacroName: "outer", Direct: d},
	)
	loc, ok = exp.Direct()
	assert.True(t, ok)
	assert.Equal(t, d, loc)
}

func TestStampExpansion(t *testing.T) {
	call := List(Symbol("m"), Int(1)).WithInfo(DirectLocation("a.nl", 4, 1, 30, 7))
	argLoc := DirectLocation("a.nl", 4, 4, 33, 1)
	expansion := List(Symbol("+").WithInfo(Intern()), Int(1).WithInfo(argLoc))

	stamped := stampExpansion(expansion, "m", call)
	require.Equal(t, LocExpansion, stamped.Info.Kind)
	require.Len(t, stamped.Info.Chain, 1)
	assert.Equal(t, "m", stamped.Info.Chain[0].MacroName)
	assert.Same(t, call, stamped.Info.Chain[0].Form)
	// nodes without a source position fall back to the call site
	assert.Equal(t, call.Info, stamped.Cells[0].Info.Chain[0].Direct)
	assert.Equal(t, argLoc, stamped.Cells[1].Info.Chain[0].Direct)
	// the input is left untouched
	assert.Equal(t, argLoc, expansion.Cells[1].Info)

	outer := List(Symbol("n")).WithInfo(DirectLocation("a.nl", 9, 1, 80, 3))
	restamped := stampExpansion(stamped, "n", outer)
	chain := restamped.Cells[1].Info.Chain
	require.Len(t, chain, 2)
	assert.Equal(t, "n", chain[0].MacroName)
	assert.Equal(t, argLoc, chain[0].Direct)
	assert.Equal(t, "m", chain[1].MacroName)
}
