// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeShadowing(t *testing.T) {
	s := NewScope()
	s.Insert("x", Variable(Int(1)))
	s.Enter()
	s.Insert("x", Variable(Int(2)))
	assert.Equal(t, int32(2), s.GetBinding("x").Value.Int)
	assert.Equal(t, 2, s.Depth())

	s.Leave()
	assert.Equal(t, int32(1), s.GetBinding("x").Value.Int)
	assert.Nil(t, s.GetBinding("y"))
	assert.False(t, s.HasBinding("y"))
}

func TestScopeSet(t *testing.T) {
	s := NewScope()
	s.Insert("x", Variable(Int(1)))
	s.Enter()
	s.Set("x", Variable(Int(5)))
	s.Set("y", Variable(Int(6)))
	s.Leave()
	assert.Equal(t, int32(5), s.GetBinding("x").Value.Int)
	assert.Nil(t, s.GetBinding("y"), "unbound names are set in the innermost level")
}

func TestScopeLoops(t *testing.T) {
	s := NewScope()
	assert.False(t, s.IsInLoop())
	assert.False(t, s.IsInCall())

	s.EnterLoop()
	assert.True(t, s.IsInLoop())
	assert.False(t, s.IsLoopBroken())

	s.Enter()
	assert.True(t, s.IsInLoop(), "plain levels do not hide loops")

	s.enterCall(ModeEvaluate)
	assert.False(t, s.IsInLoop())
	assert.True(t, s.IsInCall())
	s.BreakLoop()
	s.Leave()

	assert.False(t, s.IsLoopBroken(), "break cannot cross a call boundary")
	s.BreakLoop()
	assert.True(t, s.IsLoopBroken())
	s.Leave()
	s.Leave()
	assert.False(t, s.IsLoopBroken())

	s.EnterLoop()
	s.EnterLoopBoundary()
	assert.False(t, s.IsInLoop())
	assert.False(t, s.IsInCall())
}

func TestScopeMode(t *testing.T) {
	s := NewScope()
	assert.Equal(t, ModeEvaluate, s.Mode())
	s.Enter()
	assert.Equal(t, ModeEvaluate, s.Mode())
	s.EnterMode(ModeDataExpansion)
	s.Enter()
	assert.Equal(t, ModeDataExpansion, s.Mode())
	s.enterCall(ModeCodeExpansion)
	assert.Equal(t, ModeCodeExpansion, s.Mode())
	s.Leave()
	s.Leave()
	s.Leave()
	assert.Equal(t, ModeEvaluate, s.Mode())
	assert.Equal(t, "data-expansion", ModeDataExpansion.String())
}

func TestScopeNames(t *testing.T) {
	s := NewScope()
	s.Insert("b", Variable(Nil()))
	s.Enter()
	s.Insert("a", Variable(Nil()))
	s.Insert("b", Variable(Nil()))
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func TestScopeEmptyStack(t *testing.T) {
	s := NewScope()
	s.Leave()
	assert.Equal(t, 0, s.Depth())
	assert.Panics(t, func() { s.GetBinding("x") })
	assert.Panics(t, func() { s.Leave() })
}

func TestScopeRegister(t *testing.T) {
	s := NewScope()
	s.RegisterEvalForm("one", func(args []*Value) (*Value, error) {
		return Int(1), nil
	})
	s.RegisterSpecialForm("first", func(s *Scope, args []*Value) Command {
		return Ok(args[0])
	})
	b := s.GetBinding("one")
	require.NotNil(t, b)
	assert.Equal(t, BindEval, b.Kind)
	assert.Equal(t, BindSpecial, s.GetBinding("first").Kind)

	v, err := s.Eval(List(Symbol("one")))
	require.NoError(t, err)
	assert.Equal(t, int32(1), v.Int)

	v, err = s.Eval(List(Symbol("first"), Symbol("unbound")))
	require.NoError(t, err)
	assert.Equal(t, "unbound", v.Str)
}
