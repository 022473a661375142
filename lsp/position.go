// Copyright © 2024 The NeoLisp authors

package lsp

import (
	"strings"

	"github.com/neolisp/nl/lisp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// toLSPPosition converts a 1-based location to a 0-based LSP position.
// Locations without a source position map to the start of the document.
func toLSPPosition(loc lisp.Location) protocol.Position {
	direct, ok := loc.Direct()
	if !ok {
		return protocol.Position{}
	}
	return protocol.Position{
		Line:      safeUint(direct.Line - 1),
		Character: safeUint(direct.Column - 1),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// toLSPRange converts a location to a single line range of width runes.
func toLSPRange(loc lisp.Location, width int) protocol.Range {
	start := toLSPPosition(loc)
	return protocol.Range{
		Start: start,
		End:   protocol.Position{Line: start.Line, Character: start.Character + safeUint(width)},
	}
}

// containsPosition reports whether the 0-based position falls on the token
// of length width starting at loc.
func containsPosition(loc lisp.Location, width, line, col int) bool {
	direct, ok := loc.Direct()
	if !ok {
		return false
	}
	return direct.Line-1 == line && col >= direct.Column-1 && col <= direct.Column-1+width
}

// wordAtPosition extracts the symbol at the given 0-based LSP position from
// content.  The cursor can be inside or at the end of a word; in both cases
// the full word is returned.
func wordAtPosition(content string, line, col int) string {
	prefix, suffix := splitAtPosition(content, line, col)
	return prefix + suffix
}

// prefixAtPosition returns the part of the symbol at the position which
// precedes the cursor.
func prefixAtPosition(content string, line, col int) string {
	prefix, _ := splitAtPosition(content, line, col)
	return prefix
}

func splitAtPosition(content string, line, col int) (string, string) {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return "", ""
	}
	ln := []rune(strings.TrimSuffix(lines[line], "\r"))
	if col < 0 || col > len(ln) {
		return "", ""
	}
	start := col
	for start > 0 && isSymbolRune(ln[start-1]) {
		start--
	}
	end := col
	for end < len(ln) && isSymbolRune(ln[end]) {
		end++
	}
	return string(ln[start:col]), string(ln[col:end])
}

func isSymbolRune(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '\'', '`', ',', '"', ';':
		return false
	}
	return true
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
