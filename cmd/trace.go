// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/x/profiler"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Trace modes accepted by --trace.
const (
	TraceNone       = "none"
	TraceOTel       = "otel"
	TraceOpenCensus = "opencensus"
	TracePprof      = "pprof"
	TraceCallgrind  = "callgrind"
)

// startTracing attaches the profiler selected by the trace setting to s.  The
// returned function completes the trace.
func startTracing(s *lisp.Scope) (func() error, error) {
	mode := viper.GetString("trace")
	switch mode {
	case "", TraceNone:
		return func() error { return nil }, nil
	case TraceOTel:
		return startOTel(s)
	case TraceOpenCensus:
		return startOpenCensus(s)
	case TracePprof:
		return startPprof(s, traceFile("cpu.pprof"))
	case TraceCallgrind:
		return startCallgrind(s, traceFile("callgrind.out"))
	default:
		return nil, fmt.Errorf("unknown trace mode %q", mode)
	}
}

func traceFile(def string) string {
	if f := viper.GetString("trace-file"); f != "" {
		return f
	}
	return def
}

// spanLogger makes the finished spans visible at the info level.
func spanLogger() logrus.FieldLogger {
	if !logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger.WithField("trace", true)
}

// logSpanExporter is an OpenTelemetry exporter which logs finished spans.
type logSpanExporter struct {
	log logrus.FieldLogger
}

var _ sdktrace.SpanExporter = (*logSpanExporter)(nil)

func (e *logSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":     span.Name(),
			"duration": span.EndTime().Sub(span.StartTime()),
		}
		for _, kv := range span.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		e.log.WithFields(fields).Info("form traced")
	}
	return nil
}

func (e *logSpanExporter) Shutdown(context.Context) error {
	return nil
}

func startOTel(s *lisp.Scope) (func() error, error) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&logSpanExporter{log: spanLogger()}),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	p := profiler.NewOpenTelemetryAnnotator(s, context.Background())
	if err := p.Enable(); err != nil {
		return nil, err
	}
	return func() error {
		if err := p.Complete(); err != nil {
			return err
		}
		return tp.Shutdown(context.Background())
	}, nil
}

// ocLogExporter is an OpenCensus exporter which logs finished spans.
type ocLogExporter struct {
	log logrus.FieldLogger
}

func (e *ocLogExporter) ExportSpan(sd *octrace.SpanData) {
	fields := logrus.Fields{
		"span":     sd.Name,
		"duration": sd.EndTime.Sub(sd.StartTime),
	}
	for _, a := range sd.Annotations {
		for k, v := range a.Attributes {
			fields[k] = v
		}
	}
	e.log.WithFields(fields).Info("form traced")
}

func startOpenCensus(s *lisp.Scope) (func() error, error) {
	exporter := &ocLogExporter{log: spanLogger()}
	octrace.RegisterExporter(exporter)
	octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
	p := profiler.NewOpenCensusAnnotator(s, context.Background())
	if err := p.Enable(); err != nil {
		octrace.UnregisterExporter(exporter)
		return nil, err
	}
	return func() error {
		defer octrace.UnregisterExporter(exporter)
		return p.Complete()
	}, nil
}

func startPprof(s *lisp.Scope, file string) (func() error, error) {
	f, err := os.Create(file) //#nosec G304
	if err != nil {
		return nil, fmt.Errorf("creating cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}
	p := profiler.NewPprofAnnotator(s, context.Background())
	if err := p.Enable(); err != nil {
		pprof.StopCPUProfile()
		f.Close() //nolint:errcheck,gosec // already failing
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := p.Complete(); err != nil {
			f.Close() //nolint:errcheck,gosec // already failing
			return err
		}
		logger.WithField("file", file).Info("cpu profile written")
		return f.Close()
	}, nil
}

func startCallgrind(s *lisp.Scope, file string) (func() error, error) {
	p := profiler.NewCallgrindProfiler(s)
	if err := p.SetFile(file); err != nil {
		return nil, fmt.Errorf("creating callgrind profile: %w", err)
	}
	if err := p.Enable(); err != nil {
		return nil, err
	}
	return func() error {
		if err := p.Complete(); err != nil {
			return err
		}
		logger.WithField("file", file).Info("callgrind profile written")
		return nil
	}, nil
}
