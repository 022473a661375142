// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"context"
	"errors"

	"github.com/golang-collections/collections/stack"
	"github.com/neolisp/nl/lisp"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *stack.Stack
}

var _ lisp.Profiler = &ocAnnotator{}

// NewOpenCensusAnnotator returns a profiler creating one OpenCensus span per
// form dispatched in s.
func NewOpenCensusAnnotator(s *lisp.Scope, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler:       profiler{scope: s},
		currentContext: parentContext,
		contexts:       stack.New(),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the annotator with ctx as the parent of the
// spans it creates.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	p.scope.Runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(name string, loc lisp.Location) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	label, _ := p.prettyFunName(name)
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, label)
	return func() {
		p.end(loc)
	}
}

func (p *ocAnnotator) end(loc lisp.Location) {
	file, line := "no-source", 0
	if pos := getSourceLoc(loc); pos != nil {
		file, line = pos.file, pos.line
	}
	p.currentSpan.Annotate([]trace.Attribute{
		trace.StringAttribute("file", file),
		trace.Int64Attribute("line", int64(line)),
	}, "source")
	p.currentSpan.End()
	p.currentContext = p.contexts.Pop().(context.Context)
	p.currentSpan = trace.FromContext(p.currentContext)
}
