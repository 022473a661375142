// Copyright © 2024 The NeoLisp authors

package parser

import (
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/parser/regexparser"
)

// SyntaxError is the error returned by readers when source text cannot be
// read.
type SyntaxError = regexparser.SyntaxError

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return regexparser.NewReader()
}
