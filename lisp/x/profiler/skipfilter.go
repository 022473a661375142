// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"regexp"
	"strings"

	"github.com/neolisp/nl/lisp"
)

// SkipFilter returns true for the forms which must not be traced.  The
// binding is nil when name is unbound.
type SkipFilter func(name string, b *lisp.Binding) bool

func defaultSkipFilter(name string, b *lisp.Binding) bool {
	return b == nil || strings.HasPrefix(name, lisp.InternalFramePrefix)
}

// WithDocFilter restricts tracing to forms whose docstring contains
// DocTrace.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. All forms with a docstring containing this string are
// traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(name string, b *lisp.Binding) bool {
	if b == nil {
		return true
	}
	doc := b.Docstring()
	if doc == "" {
		return true
	}
	return !docTraceRegExp.MatchString(doc)
}
