// Copyright © 2024 The NeoLisp authors

// Package diagnostic renders annotated error reports for the NeoLisp command
// line tools.  It does not depend on the lisp package so that any front end
// can produce diagnostics.
package diagnostic

// Severity is the level reported in the header of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityNote:    "note",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Span points at source text.  Lines and columns are 1-based and columns
// count runes.
type Span struct {
	File  string
	Line  int
	Col   int
	Width int // runes underlined; 0 underlines the token at Col
	Label string
}

// Diagnostic is one report.  Code names the error kind and is shown in the
// header as error[code].  Each note usually describes a stack frame.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Spans    []Span
	Notes    []string
}

// Header returns the first line of the report without colors.
func (d Diagnostic) Header() string {
	return d.title() + ": " + d.Message
}

func (d Diagnostic) title() string {
	if d.Code == "" {
		return d.Severity.String()
	}
	return d.Severity.String() + "[" + d.Code + "]"
}
