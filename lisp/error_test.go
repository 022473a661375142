// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrace() *Error {
	return Errorf(ErrUnboundSymbol, "unbound symbol '%s'", "y").
		Push("y", DirectLocation("a.nl", 1, 2, 1, 1)).
		Push(InternalFramePrefix+"expansion", NoLocation()).
		Push("f", DirectLocation("a.nl", 3, 1, 10, 1))
}

func TestErrorString(t *testing.T) {
	expect := "Evaluation error : unbound symbol 'y'\n\n" +
		"Stacktrace :\n" +
		"  >>>> : 'y' in file 'a.nl', at 1:2\n" +
		"  0001 : '#expansion' no location\n" +
		"  0002 : 'f' in file 'a.nl', at 3:1\n"
	assert.Equal(t, expect, testTrace().String())
	assert.Equal(t, "unbound symbol 'y'", testTrace().Error())
}

func TestErrorStringLight(t *testing.T) {
	expect := "Evaluation error : unbound symbol 'y'\n\n" +
		"Stacktrace :\n" +
		"  >>>> : 'y' in file 'a.nl', at 1:2\n" +
		"  0001 : 'f' in file 'a.nl', at 3:1\n"
	assert.Equal(t, expect, testTrace().StringLight())
}

func TestErrorNoFrames(t *testing.T) {
	err := Errorf(ErrCustom, "boom")
	assert.Equal(t, "Evaluation error : boom\n\nStacktrace :\n", err.String())
	_, ok := err.Source()
	assert.False(t, ok)
}

func TestErrorWriteTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := testTrace().WriteTrace(&buf)
	require.NoError(t, err)
	assert.Equal(t, testTrace().String(), buf.String())
}

func TestErrorSource(t *testing.T) {
	err := Errorf(ErrType, "bad").
		Push("+", Intern()).
		Push("g", DirectLocation("b.nl", 5, 3, 42, 1))
	loc, ok := err.Source()
	require.True(t, ok)
	assert.Equal(t, 5, loc.Line)
	assert.Equal(t, 3, loc.Column)
}

func TestAsError(t *testing.T) {
	lerr := Errorf(ErrArity, "arity")
	assert.Same(t, lerr, AsError(lerr))
	assert.Same(t, lerr, AsError(fmt.Errorf("wrapped: %w", lerr)))

	converted := AsError(errors.New("plain"))
	assert.Equal(t, ErrCustom, converted.Kind)
	assert.Equal(t, "plain", converted.Message)

	assert.True(t, IsKind(lerr, ErrArity))
	assert.False(t, IsKind(lerr, ErrType))
	assert.False(t, IsKind(errors.New("plain"), ErrCustom))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unbound-symbol", ErrUnboundSymbol.String())
	assert.Equal(t, "control-flow-error", ErrControlFlow.String())
	assert.Equal(t, "unknown-error", ErrorKind(200).String())
}

func TestCommandRethrow(t *testing.T) {
	c := Ok(Int(1)).Rethrow("f", NoLocation())
	assert.True(t, c.IsValue())
	assert.Equal(t, "value 1", c.String())

	c = EndLoop(Int(2)).Rethrow("f", NoLocation())
	assert.True(t, c.IsEndLoop())
	assert.Equal(t, int32(2), c.Value().Int)

	c = Failf(ErrCustom, "bad").Rethrow("f", NoLocation()).Rethrow("g", NoLocation())
	require.True(t, c.IsError())
	require.Len(t, c.Err().Frames, 2)
	assert.Equal(t, "f", c.Err().Frames[0].Name)
	assert.Equal(t, "g", c.Err().Frames[1].Name)

	assert.True(t, EndCall(Nil()).IsEndCall())
	assert.Nil(t, EndCall(Nil()).Err())
}
