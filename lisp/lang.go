// Copyright © 2024 The NeoLisp authors

package lisp

// Version is the version of the NeoLisp language implementation.
const Version = "0.3.0"

// Literal symbols recognized by the reader.
const (
	NilSymbol   = "nil"
	TrueSymbol  = "true"
	FalseSymbol = "false"
)

// InitializeScope applies configs to s and registers the core special forms
// in its innermost level.  Callers typically follow with
// lisplib.LoadLibrary to install the builtin library.
func InitializeScope(s *Scope, configs ...Config) error {
	for _, config := range configs {
		if err := config(s); err != nil {
			return err
		}
	}
	s.AddBuiltins(DefaultSpecialOps()...)
	return nil
}

// NewInitializedScope returns a new scope prepared by InitializeScope.
func NewInitializedScope(configs ...Config) (*Scope, error) {
	s := NewScope()
	if err := InitializeScope(s, configs...); err != nil {
		return nil, err
	}
	return s, nil
}
