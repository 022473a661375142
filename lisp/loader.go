// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// Loader is a function which prepares a scope, typically by registering
// forms or by evaluating source.
type Loader func(s *Scope) error

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of Values it contains,
	// with direct locations completed using name as the file.  The values
	// are evaluated in order, as if inside a progn.
	Read(name string, r io.Reader) ([]*Value, error)
}

// SourceLibrary resolves the location given to load-file into source text.
type SourceLibrary interface {
	LoadSource(loc string) (name string, source []byte, err error)
}

// FileSystemLibrary loads source files from an fs.FS.  A nil FS reads the
// host file system relative to the working directory.
type FileSystemLibrary struct {
	FS fs.FS
}

var _ SourceLibrary = (*FileSystemLibrary)(nil)

// LoadSource implements SourceLibrary.
func (lib *FileSystemLibrary) LoadSource(loc string) (string, []byte, error) {
	if lib.FS == nil {
		b, err := os.ReadFile(loc)
		return loc, b, err
	}
	name := path.Clean(strings.TrimPrefix(loc, "/"))
	b, err := fs.ReadFile(lib.FS, name)
	return name, b, err
}

// Load reads expressions from r with the runtime reader and evaluates them in
// order.  The value of the last expression is returned.
func (s *Scope) Load(name string, r io.Reader) (*Value, error) {
	if s.Runtime.Reader == nil {
		return nil, errors.New("no reader configured")
	}
	exprs, err := s.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	s.Runtime.Log().WithFields(logrus.Fields{
		"file":  name,
		"exprs": len(exprs),
	}).Debug("loading source")
	result := Nil()
	for _, expr := range exprs {
		result, err = s.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// LoadString evaluates the expressions in source.
func (s *Scope) LoadString(name, source string) (*Value, error) {
	return s.Load(name, strings.NewReader(source))
}

// LoadBytes evaluates the expressions in source.
func (s *Scope) LoadBytes(name string, source []byte) (*Value, error) {
	return s.Load(name, bytes.NewReader(source))
}

// LoadFile resolves loc through the runtime library (the host file system
// when none is configured) and evaluates its expressions.
func (s *Scope) LoadFile(loc string) (*Value, error) {
	lib := s.Runtime.Library
	if lib == nil {
		lib = &FileSystemLibrary{}
	}
	name, source, err := lib.LoadSource(loc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}
	return s.LoadBytes(name, source)
}
