// Copyright © 2024 The NeoLisp authors

// Package nltest runs NeoLisp expressions and source files from Go tests.
package nltest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the package loader used to initialize the test scope.  When
	// Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader

	// Teardown runs after each file evaluated by RunTestFile.  Any error
	// returned by the teardown function is reported as a test failure.
	Teardown lisp.Loader
}

// NewScope returns a scope whose output and logs go to the test log.
func (r *Runner) NewScope(t testing.TB) (*lisp.Scope, error) {
	logger := NewLogger(t)
	s, err := lisp.NewInitializedScope(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(logger),
		lisp.WithStderr(logger),
		lisp.WithLogger(NewLogrus(t)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scope: %w", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	if err := loader(s); err != nil {
		return nil, fmt.Errorf("failed to load package library: %w", err)
	}
	return s, nil
}

// RunTestFile evaluates the file at path and reports an evaluation error as a
// test failure.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	s, err := r.NewScope(t)
	if err != nil {
		t.Error(err.Error())
		return
	}
	defer s.Runtime.Stdout.(*Logger).Flush()
	if r.Teardown != nil {
		defer func() {
			if err := r.Teardown(s); err != nil {
				t.Errorf("teardown: %v", err)
			}
		}()
	}
	_, err = s.LoadBytes(filepath.Base(path), source)
	if err != nil {
		r.LispError(t, err)
	}
}

// LispError reports err, with its stack trace when it is an evaluation error.
func (r *Runner) LispError(t testing.TB, err error) {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of expressions which are evaluated sequentially
// in one scope.
type TestSequence []struct {
	Expr   string // an expression
	Result string // the display form of the result, or the error message
	Output string // output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewSuiteScope returns a scope prepared like the scopes used by
// RunTestSuite, writing output to w.
func NewSuiteScope(w *bytes.Buffer) (*lisp.Scope, error) {
	s, err := lisp.NewInitializedScope(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(w),
		lisp.WithStderr(w),
	)
	if err != nil {
		return nil, err
	}
	if err := lisplib.LoadLibrary(s); err != nil {
		return nil, err
	}
	return s, nil
}

// EvalString reads and evaluates a single expression.  The display form of
// the result is returned, or the message of the error.
func EvalString(s *lisp.Scope, expr string) (string, error) {
	v, err := s.Runtime.Reader.Read("test", strings.NewReader(expr))
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}
	if len(v) != 1 {
		return "", fmt.Errorf("expected one expression (got %d)", len(v))
	}
	result, err := s.Eval(v[0])
	if err != nil {
		return err.Error(), nil
	}
	return result.String(), nil
}

// RunTestSuite runs each TestSequence in tests in an isolated scope.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Logf("test %d -- %s", i, test.Name)
		var outBuf bytes.Buffer
		s, err := NewSuiteScope(&outBuf)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			outBuf.Reset()
			result, err := EvalString(s, expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: %v", i, test.Name, j, err)
				continue
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if outBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, outBuf.String())
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		s, err := NewSuiteScope(&out)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			if _, err := s.Eval(expr); err != nil {
				b.Fatalf("expr %d: %v", i, err)
			}
		}
		b.StopTimer()
	}
}
