// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"regexp"
	"strings"

	"github.com/neolisp/nl/lisp"
)

// FunLabeler provides an alternative name for a form in the trace.  An empty
// label keeps the form name.
type FunLabeler func(name string, b *lisp.Binding) string

// WithDocLabeler labels spans using the DocLabel magic string of
// docstrings.
func WithDocLabeler() Option {
	return WithFunLabeler(docFunLabeler)
}

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// DocLabel is a magic string used to extract span labels from docstrings:
// "@trace{ label }".
const DocLabel = `@trace\s*{([^}]+)}`

var (
	docLabelRegExp   = regexp.MustCompile(DocLabel)
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func extractLabel(doc string) string {
	if doc == "" {
		return ""
	}
	match := docLabelRegExp.FindStringSubmatch(doc)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func cleanLabel(doc string) string {
	return sanitizeLabel(extractLabel(doc))
}

func docFunLabeler(name string, b *lisp.Binding) string {
	if b == nil {
		return ""
	}
	return cleanLabel(b.Docstring())
}
