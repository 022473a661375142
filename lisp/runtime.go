// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Runtime holds the state shared by the levels of a Scope which is not a
// binding: output streams, the reader used to load source, the logger and
// an optional profiler.
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Reader   Reader
	Library  SourceLibrary
	Logger   logrus.FieldLogger
	Profiler Profiler
}

// StandardRuntime returns a Runtime writing to the process's standard
// streams and logging through the standard logrus logger.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logrus.StandardLogger(),
	}
}

// Out returns the writer used by output forms.
func (r *Runtime) Out() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

// ErrOut returns the writer used for diagnostics.
func (r *Runtime) ErrOut() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// Log returns the logger of the runtime.
func (r *Runtime) Log() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}

// profiling returns the profiler when one is attached and enabled.
func (r *Runtime) profiling() Profiler {
	if r.Profiler == nil || !r.Profiler.IsEnabled() {
		return nil
	}
	return r.Profiler
}
