// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/neolisp/nl/lisp"
)

// pprofAnnotator labels the goroutine with the form being evaluated so that
// pprof samples can be attributed to forms.  It does not start pprof.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler setting the "function" pprof label.
func NewPprofAnnotator(s *lisp.Scope, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler:       profiler{scope: s},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.scope.Runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

// Labels returns the labels currently applied by the annotator.
func (p *pprofAnnotator) Labels() map[string]string {
	labels := map[string]string{}
	pprof.ForLabels(p.currentContext, func(k, v string) bool {
		labels[k] = v
		return true
	})
	return labels
}

func (p *pprofAnnotator) Start(name string, loc lisp.Location) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	// Contexts are stacked rather than using pprof.Do so that dispatch does
	// not need to run inside a closure.
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(name)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	pprof.SetGoroutineLabels(p.currentContext)
	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
