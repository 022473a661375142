// Copyright © 2024 The NeoLisp authors

// Package lisplib is used to conveniently load the builtin library into a
// scope.
package lisplib

import (
	"bytes"
	"fmt"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/libcheck"
	"github.com/neolisp/nl/lisp/lisplib/libconv"
	"github.com/neolisp/nl/lisp/lisplib/libflow"
	"github.com/neolisp/nl/lisp/lisplib/libhelp"
	"github.com/neolisp/nl/lisp/lisplib/libio"
	"github.com/neolisp/nl/lisp/lisplib/liblist"
	"github.com/neolisp/nl/lisp/lisplib/libmath"
	"github.com/neolisp/nl/parser"
	"github.com/sirupsen/logrus"
)

var packages = []struct {
	name string
	load lisp.Loader
}{
	{"flow", libflow.LoadPackage},
	{"check", libcheck.LoadPackage},
	{"conv", libconv.LoadPackage},
	{"math", libmath.LoadPackage},
	{"list", liblist.LoadPackage},
	{"io", libio.LoadPackage},
	{"help", libhelp.LoadPackage},
}

// LoadLibrary registers the builtin library in the innermost level of s.
func LoadLibrary(s *lisp.Scope) error {
	for _, pkg := range packages {
		if err := pkg.load(s); err != nil {
			return fmt.Errorf("load package %s: %w", pkg.name, err)
		}
		s.Runtime.Log().WithFields(logrus.Fields{
			"package": pkg.name,
		}).Debug("loaded library package")
	}
	return nil
}

// NewDocScope creates a scope with the library loaded, suitable for
// documentation queries.  Output forms write to a discarded buffer.
func NewDocScope() (*lisp.Scope, error) {
	s, err := lisp.NewInitializedScope(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&bytes.Buffer{}),
		lisp.WithStderr(&bytes.Buffer{}),
	)
	if err != nil {
		return nil, err
	}
	if err := LoadLibrary(s); err != nil {
		return nil, err
	}
	return s, nil
}
