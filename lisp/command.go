// Copyright © 2024 The NeoLisp authors

package lisp

import "fmt"

type commandKind uint8

const (
	cmdValue commandKind = iota
	cmdError
	cmdEndCall
	cmdEndLoop
)

// Command is the result of evaluating a node: a value, an error, or one of
// the in-flight signals raised by return (EndCall) and break (EndLoop).
// Code composing evaluations must hand any Command that is not a value back
// to its caller untouched, until a matching boundary consumes it.
type Command struct {
	kind  commandKind
	value *Value
	err   *Error
}

// Ok returns a successful command.
func Ok(v *Value) Command {
	return Command{kind: cmdValue, value: v}
}

// Fail returns a failed command.
func Fail(err *Error) Command {
	return Command{kind: cmdError, err: err}
}

// Failf returns a failed command with a new error.
func Failf(kind ErrorKind, format string, v ...interface{}) Command {
	return Fail(Errorf(kind, format, v...))
}

// EndCall returns the signal of a return statement carrying v.
func EndCall(v *Value) Command {
	return Command{kind: cmdEndCall, value: v}
}

// EndLoop returns the signal of a break statement carrying v.
func EndLoop(v *Value) Command {
	return Command{kind: cmdEndLoop, value: v}
}

// IsValue returns true if the command holds a plain value.
func (c Command) IsValue() bool { return c.kind == cmdValue }

// IsError returns true if the command holds an error.
func (c Command) IsError() bool { return c.kind == cmdError }

// IsEndCall returns true if the command is an in-flight return.
func (c Command) IsEndCall() bool { return c.kind == cmdEndCall }

// IsEndLoop returns true if the command is an in-flight break.
func (c Command) IsEndLoop() bool { return c.kind == cmdEndLoop }

// Value returns the value carried by a value, EndCall or EndLoop command.
func (c Command) Value() *Value { return c.value }

// Err returns the error of a failed command, or nil.
func (c Command) Err() *Error { return c.err }

// Rethrow pushes a frame onto the error of a failed command.  Other commands
// are returned unchanged.
func (c Command) Rethrow(name string, loc Location) Command {
	if c.kind == cmdError {
		c.err.Push(name, loc)
	}
	return c
}

func (c Command) String() string {
	switch c.kind {
	case cmdValue:
		return fmt.Sprintf("value %v", c.value)
	case cmdError:
		return fmt.Sprintf("error %q", c.err.Message)
	case cmdEndCall:
		return fmt.Sprintf("end-call %v", c.value)
	case cmdEndLoop:
		return fmt.Sprintf("end-loop %v", c.value)
	default:
		panic(fmt.Sprintf("invalid command kind: %d", c.kind))
	}
}
