// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorKind classifies evaluation errors.
type ErrorKind uint8

// Possible ErrorKind values.
const (
	ErrCustom ErrorKind = iota
	ErrUnboundSymbol
	ErrWrongBindingKind
	ErrArity
	ErrType
	ErrEscapeQuote
	ErrInvalidExpression
	ErrControlFlow
)

var errorKindStrings = []string{
	ErrCustom:            "custom-error",
	ErrUnboundSymbol:     "unbound-symbol",
	ErrWrongBindingKind:  "wrong-binding-kind",
	ErrArity:             "arity-error",
	ErrType:              "type-error",
	ErrEscapeQuote:       "escape-quote-misuse",
	ErrInvalidExpression: "invalid-expression",
	ErrControlFlow:       "control-flow-error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStrings) {
		return "unknown-error"
	}
	return errorKindStrings[k]
}

// InternalFramePrefix marks frames hidden by Error.StringLight.
const InternalFramePrefix = "#"

// Frame is an entry of the trail an error accumulates while it propagates.
type Frame struct {
	Name   string
	Source Location
}

// Error is an evaluation failure.  Frames are ordered from the point of
// failure outward to the top level.
type Error struct {
	Kind    ErrorKind
	Message string
	Frames  []Frame
}

// Errorf returns a new error of the given kind without frames.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

// AsError converts err into an *Error.  Errors which are not already
// evaluation errors are wrapped as ErrCustom.
func AsError(err error) *Error {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr
	}
	return &Error{Kind: ErrCustom, Message: err.Error()}
}

// IsKind reports whether err is an evaluation error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var lerr *Error
	return errors.As(err, &lerr) && lerr.Kind == kind
}

// Push appends a frame to e and returns e.
func (e *Error) Push(name string, loc Location) *Error {
	e.Frames = append(e.Frames, Frame{Name: name, Source: loc})
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// String renders the error and its complete stack trace.
func (e *Error) String() string {
	return e.render(e.Frames)
}

// StringLight renders the error like String but omits the frames whose name
// starts with InternalFramePrefix.
func (e *Error) StringLight() string {
	frames := make([]Frame, 0, len(e.Frames))
	for _, f := range e.Frames {
		if !strings.HasPrefix(f.Name, InternalFramePrefix) {
			frames = append(frames, f)
		}
	}
	return e.render(frames)
}

func (e *Error) render(frames []Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluation error : %s\n\n", e.Message)
	b.WriteString("Stacktrace :\n")
	for i, f := range frames {
		if i == 0 {
			fmt.Fprintf(&b, "  >>>> : '%s' %s\n", f.Name, f.Source)
		} else {
			fmt.Fprintf(&b, "  %04d : '%s' %s\n", i, f.Name, f.Source)
		}
	}
	return b.String()
}

// WriteTrace writes the rendered error to w.
func (e *Error) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	n, err := bw.WriteString(e.String())
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// Source returns the location of the innermost frame having a source
// position.
func (e *Error) Source() (Location, bool) {
	for _, f := range e.Frames {
		if loc, ok := f.Source.Direct(); ok {
			return loc, true
		}
	}
	return Location{}, false
}
