// Copyright © 2024 The NeoLisp authors

package repl

import (
	"strings"

	"github.com/neolisp/nl/lisp"
)

// symbolCompleter implements readline.AutoCompleter over the names visible
// in a scope.
type symbolCompleter struct {
	scope *lisp.Scope
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// The word being typed extends back from the cursor to a delimiter.
	start := pos
	for start > 0 && isAtomRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	var result [][]rune
	for _, name := range c.candidates(prefix) {
		result = append(result, []rune(name[len(prefix):]))
	}
	if len(result) == 0 {
		return nil, 0
	}
	return result, len([]rune(prefix))
}

// candidates returns the sorted visible names starting with prefix.
func (c *symbolCompleter) candidates(prefix string) []string {
	var names []string
	for _, name := range c.scope.Names() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}
