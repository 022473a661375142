// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"
)

// LocationKind tells which fields of a Location are meaningful.
type LocationKind uint8

// Possible LocationKind values.
const (
	LocNone LocationKind = iota
	LocIntern
	LocDirect
	LocExpansion
)

// Location is the info attached to evaluated values.
//
//	LocNone       no information
//	LocIntern     File and Line name a position inside the evaluator itself
//	LocDirect     File, Line, Column, Index and Length locate source text
//	LocExpansion  Chain lists the macro expansions producing the node
type Location struct {
	Kind   LocationKind
	File   string
	Line   int
	Column int
	Index  int
	Length int
	Chain  []Expansion
}

// Expansion is an entry of an expansion chain.  The most recent expansion
// comes first in a chain.
type Expansion struct {
	MacroName string
	Form      *Object[Location] // i.e. *Value; spelled out for go1.21 (go.dev/issue/50729)
	Direct    Location
}

// Span is the light location produced by the reader: a byte offset and a
// length into the source text.
type Span struct {
	Index  int
	Length int
}

// NoLocation returns an empty location.
func NoLocation() Location {
	return Location{}
}

// Intern returns a location identifying the evaluator code calling it.
func Intern() Location {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return Location{Kind: LocIntern, File: "neolisp"}
	}
	return Location{Kind: LocIntern, File: filepath.Base(file), Line: line}
}

// LightLocation returns an incomplete direct location which must be finished
// with Complete before it is displayed.
func LightLocation(index, length int) Location {
	return Location{Kind: LocDirect, Index: index, Length: length}
}

// DirectLocation returns a complete direct location.
func DirectLocation(file string, line, column, index, length int) Location {
	return Location{
		Kind:   LocDirect,
		File:   file,
		Line:   line,
		Column: column,
		Index:  index,
		Length: length,
	}
}

// ExpansionLocation returns a location with the given chain.
func ExpansionLocation(chain ...Expansion) Location {
	return Location{Kind: LocExpansion, Chain: chain}
}

// IsNone returns true when the location carries no information.
func (loc Location) IsNone() bool { return loc.Kind == LocNone }

// IsDirect returns true for source locations.
func (loc Location) IsDirect() bool { return loc.Kind == LocDirect }

// Direct returns the source position closest to loc: loc itself when it is
// direct, or the position recorded by the most recent expansion.
func (loc Location) Direct() (Location, bool) {
	switch loc.Kind {
	case LocDirect:
		return loc, true
	case LocExpansion:
		for _, e := range loc.Chain {
			if e.Direct.Kind == LocDirect {
				return e.Direct, true
			}
		}
		return Location{}, false
	case LocNone, LocIntern:
		return Location{}, false
	default:
		panic(fmt.Sprintf("invalid location kind: %d", loc.Kind))
	}
}

// Complete fills the file, line and column of a light direct location.  Line
// is one more than the number of newlines preceding the offset.  Column
// counts runes from the start of that line, starting at 1.
func (loc *Location) Complete(file string, source string) {
	if loc.Kind != LocDirect {
		return
	}
	idx := clampOffset(loc.Index, source)
	before := source[:idx]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	loc.File = file
	loc.Line = 1 + strings.Count(before, "\n")
	loc.Column = 1 + utf8.RuneCountInString(before[lineStart:])
}

func clampOffset(i int, source string) int {
	if i < 0 {
		return 0
	}
	if i > len(source) {
		return len(source)
	}
	return i
}

// lineIndex precomputes newline offsets so a whole tree can be completed with
// one scan of the source.
type lineIndex struct {
	source   string
	newlines []int
}

func newLineIndex(source string) *lineIndex {
	idx := &lineIndex{source: source}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

func (idx *lineIndex) location(file string, span Span) Location {
	off := clampOffset(span.Index, idx.source)
	// number of newlines strictly before off
	n := sort.SearchInts(idx.newlines, off)
	lineStart := 0
	if n > 0 {
		lineStart = idx.newlines[n-1] + 1
	}
	return Location{
		Kind:   LocDirect,
		File:   file,
		Line:   n + 1,
		Column: 1 + utf8.RuneCountInString(idx.source[lineStart:off]),
		Index:  span.Index,
		Length: span.Length,
	}
}

// CompleteLocations converts a tree produced by a reader into a Value tree
// with complete direct locations.
func CompleteLocations(o *Object[Span], file string, source string) *Value {
	idx := newLineIndex(source)
	return Transform(o, func(span Span) Location {
		return idx.location(file, span)
	})
}

func (loc Location) String() string {
	switch loc.Kind {
	case LocNone:
		return "no location"
	case LocIntern:
		return fmt.Sprintf("in '%s' line %d", loc.File, loc.Line)
	case LocDirect:
		return fmt.Sprintf("in file '%s', at %d:%d", loc.File, loc.Line, loc.Column)
	case LocExpansion:
		lines := make([]string, len(loc.Chain))
		for i, e := range loc.Chain {
			lines[i] = e.String()
		}
		return strings.Join(lines, "\n")
	default:
		panic(fmt.Sprintf("invalid location kind: %d", loc.Kind))
	}
}

func (e Expansion) String() string {
	form := "nil"
	if e.Form != nil {
		form = e.Form.String()
	}
	return fmt.Sprintf("from the expansion of '%s', %s, from the expression %s",
		e.MacroName, e.Direct, form)
}

// stampExpansion returns a copy of v in which every node records that it was
// produced by expanding macro name at the call form.  Nodes which already
// carry an expansion chain get the new entry prepended.
func stampExpansion(v *Value, name string, form *Value) *Value {
	callSite, _ := form.Info.Direct()
	return Transform(v, func(loc Location) Location {
		direct, ok := loc.Direct()
		if !ok {
			direct = callSite
		}
		entry := Expansion{MacroName: name, Form: form, Direct: direct}
		if loc.Kind == LocExpansion {
			chain := make([]Expansion, 0, len(loc.Chain)+1)
			chain = append(chain, entry)
			chain = append(chain, loc.Chain...)
			return ExpansionLocation(chain...)
		}
		return ExpansionLocation(entry)
	})
}
