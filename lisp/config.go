// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a scope or its runtime.
type Config func(s *Scope) error

// WithReader returns a Config that makes the scope use r to parse source
// streams.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(s *Scope) error {
		s.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes output forms write to w instead of
// os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(s *Scope) error {
		s.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes diagnostic output go to w instead
// of os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(s *Scope) error {
		s.Runtime.Stderr = w
		return nil
	}
}

// WithLibrary returns a Config that makes the scope load files from l.
func WithLibrary(l SourceLibrary) Config {
	return func(s *Scope) error {
		s.Runtime.Library = l
		return nil
	}
}

// WithLogger returns a Config that sets the logger of the runtime.
func WithLogger(log logrus.FieldLogger) Config {
	return func(s *Scope) error {
		s.Runtime.Logger = log
		return nil
	}
}

// WithProfiler returns a Config that attaches p to the runtime and enables
// it.
func WithProfiler(p Profiler) Config {
	return func(s *Scope) error {
		s.Runtime.Profiler = p
		if p.IsEnabled() {
			return nil
		}
		return p.Enable()
	}
}
