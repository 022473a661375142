// Copyright © 2024 The NeoLisp authors

// Package profiler implements lisp.Profiler annotators which report form
// dispatch to tracing and profiling backends.
package profiler

import (
	"fmt"

	"github.com/neolisp/nl/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	scope      *lisp.Scope
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures an annotator.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(name string, loc lisp.Location) func() {
	return func() {}
}

// binding returns the binding name resolves to at dispatch time.
func (p *profiler) binding(name string) *lisp.Binding {
	if p.scope == nil || p.scope.Depth() == 0 {
		return nil
	}
	return p.scope.GetBinding(name)
}

// prettyFunName returns the label of a span and the name of the form.  The
// label is the form name unless a FunLabeler provides one.
func (p *profiler) prettyFunName(name string) (string, string) {
	label := name
	if p.funLabeler != nil {
		if l := p.funLabeler(name, p.binding(name)); l != "" {
			label = l
		}
	}
	return label, name
}

// skipTrace decides whether the dispatch of name is left out of the trace.
func (p *profiler) skipTrace(name string) bool {
	if !p.enabled {
		return true
	}
	b := p.binding(name)
	return defaultSkipFilter(name, b) || p.skipFilter != nil && p.skipFilter(name, b)
}

// sourcePosition is the source position of a dispatch, if it has one.
type sourcePosition struct {
	file   string
	line   int
	column int
}

func getSourceLoc(loc lisp.Location) *sourcePosition {
	direct, ok := loc.Direct()
	if !ok {
		return nil
	}
	return &sourcePosition{file: direct.File, line: direct.Line, column: direct.Column}
}

// kindOf names the binding kind of a form for span attributes.
func kindOf(b *lisp.Binding) string {
	if b == nil {
		return "unbound"
	}
	return b.Kind.String()
}
