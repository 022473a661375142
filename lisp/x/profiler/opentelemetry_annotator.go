// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"context"
	"errors"

	"github.com/neolisp/nl/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context
// key.
const ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

// DefaultTracerName names the tracer used when the parent context does not
// provide one.
const DefaultTracerName = "neolisp"

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler creating one span per form
// dispatched in s.  Spans are children of the span found in parentContext.
func NewOpenTelemetryAnnotator(s *lisp.Scope, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler:       profiler{scope: s},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.scope.Runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = DefaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(name string, loc lisp.Location) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(name)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, prettyLabel)
	p.addCodeAttributes(funName, loc)
	return func() {
		p.currentSpan.End()
		p.currentContext = oldContext
		p.currentSpan = trace.SpanFromContext(p.currentContext)
	}
}

func (p *otelAnnotator) addCodeAttributes(funName string, loc lisp.Location) {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace(kindOf(p.binding(funName))),
		semconv.CodeFunction(funName),
	}
	if pos := getSourceLoc(loc); pos != nil {
		attrs = append(attrs,
			semconv.CodeColumn(pos.column),
			semconv.CodeFilepath(pos.file),
			semconv.CodeLineNumber(pos.line),
		)
	}
	p.currentSpan.SetAttributes(attrs...)
}
