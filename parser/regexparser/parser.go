// Copyright © 2024 The NeoLisp authors

/*
Package regexparser provides a NeoLisp reader built from regular expression
tokens combined with goparsec.

	expr    := <sugar> <expr> | '(' <expr>* ')' | <char> | <string> | <atom>
	sugar   := "'" | '`' | ','
	char    := '#' ( space | newline | tab | carriage-return | \n | \t | \r | \" | /./ )
	string  := '"' ( /[^"\\]/ | '\' /./ )* '"' | 'r"' ( /[^"]/ | '""' )* '"'
	atom    := /[a-zA-Z0-9+\-*\/%^~><=?.:!_]+/

An atom is classified after it is read: a number when the whole atom is an
integer (decimal, 0x, 0o or 0b, with optional '_' separators) or a float
(digits.digits), nil, true or false when the atom is exactly that word, a
keyword when it starts with ':', and a symbol otherwise.  Comments start with
';' and run to the end of the line.
*/
package regexparser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/neolisp/nl/lisp"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*lisp.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadString(name, string(b))
}

// ReadString parses every expression of source and completes their locations
// using name as the file name.
func ReadString(name string, source string) ([]*lisp.Value, error) {
	objs, err := ParseSpans([]byte(source))
	if err != nil {
		if serr, ok := err.(*SyntaxError); ok {
			serr.Source.Complete(name, source)
		}
		return nil, err
	}
	vals := make([]*lisp.Value, len(objs))
	for i, o := range objs {
		vals[i] = lisp.CompleteLocations(o, name, source)
	}
	return vals, nil
}

// SyntaxError is returned when source text cannot be read.
type SyntaxError struct {
	Message string
	Source  lisp.Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error : %s, %s", e.Message, e.Source)
}

func syntaxErrorf(index, length int, format string, v ...interface{}) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, v...),
		Source:  lisp.LightLocation(index, length),
	}
}

// ParseSpans parses the expressions of text.  Nodes carry the byte span of
// the text they were read from.
func ParseSpans(text []byte) ([]*lisp.Object[lisp.Span], error) {
	var objs []*lisp.Object[lisp.Span]
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
		if !ok {
			return nil, nodes[0].(error)
		}
		for _, n := range nodes {
			if o, ok := n.(*lisp.Object[lisp.Span]); ok {
				objs = append(objs, o)
			}
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		cursor := s.GetCursor()
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, syntaxErrorf(cursor, 1, "unexpected source text possibly starting: %s", b)
	}
	return objs, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeListUnmatched
	nodeSugar
)

var nodeTypeStrings = []string{
	nodeInvalid:       "INVALID",
	nodeTerm:          "TERM",
	nodeList:          "LIST",
	nodeListUnmatched: "LISTOPENUNMATCHED",
	nodeSugar:         "SUGAR",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	quote := parsec.Atom("'", "QUOTE")
	equote := parsec.Atom("`", "EQUOTE")
	escape := parsec.Atom(",", "ESCAPE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	char := parsec.Token(`#(?:space|newline|tab|carriage-return|\\[ntr"]|[^\\])`, "CHAR")
	rawstring := parsec.Token(`r"(?:[^"]|"")*"`, "RAWSTRING")
	str := parsec.Token(`"(?:[^"\\]|\\.)*"`, "STRING")
	atom := parsec.Token(`[a-zA-Z0-9+\-*/%^~><=?.:!_]+`, "ATOM")
	term := parsec.OrdChoice(astNode(nodeTerm),
		char,
		rawstring, // before atom, which would read the r
		str,
		atom,
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(astNode(nodeList), openP, exprList, closeP)
	listOUnmatched := parsec.And(astNode(nodeListUnmatched), openP, exprList, parsec.End())
	sugar := parsec.And(astNode(nodeSugar), parsec.OrdChoice(nil, quote, equote, escape), &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		list,
		sugar,
		// Error matching cases come last because they have the lowest
		// precedence.
		listOUnmatched,
	)
	return expr
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

var sugarSymbols = map[string]string{
	"QUOTE":  lisp.QuoteSymbol,
	"EQUOTE": lisp.EquoteSymbol,
	"ESCAPE": lisp.EscapeQuoteSymbol,
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	if len(nodes) == 0 {
		return syntaxErrorf(0, 0, "empty %s node", typ)
	}
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return syntaxErrorf(0, 0, "unexpected %T term", nodes[0])
		}
		return readTerm(term)
	case nodeList:
		open := nodes[0].(*parsec.Terminal)
		closep := nodes[len(nodes)-1].(*parsec.Terminal)
		cells := make([]*lisp.Object[lisp.Span], 0, len(nodes)-2)
		for _, c := range nodes {
			if o, ok := c.(*lisp.Object[lisp.Span]); ok {
				cells = append(cells, o)
			}
		}
		return &lisp.Object[lisp.Span]{
			Type:  lisp.LList,
			Info:  spanBetween(open.Position, closep.Position+1),
			Cells: cells,
		}
	case nodeListUnmatched:
		open := nodes[0].(*parsec.Terminal)
		rest := open.GetValue() + stringifyNodes(nodes[1:])
		if len(rest) > 10 {
			rest = rest[:10] + "..."
		}
		return syntaxErrorf(open.Position, 1, "unmatched %q starting: %v", open.GetValue(), rest)
	case nodeSugar:
		mark := nodes[0].(*parsec.Terminal)
		var inner *lisp.Object[lisp.Span]
		for _, c := range nodes[1:] {
			if o, ok := c.(*lisp.Object[lisp.Span]); ok {
				inner = o
				break
			}
		}
		if inner == nil {
			return syntaxErrorf(mark.Position, 1, "expected an expression after %q", mark.GetValue())
		}
		head := &lisp.Object[lisp.Span]{
			Type: lisp.LSymbol,
			Info: spanBetween(mark.Position, mark.Position+1),
			Str:  sugarSymbols[mark.GetName()],
		}
		return &lisp.Object[lisp.Span]{
			Type:  lisp.LList,
			Info:  spanBetween(mark.Position, inner.Info.Index+inner.Info.Length),
			Cells: []*lisp.Object[lisp.Span]{head, inner},
		}
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func spanBetween(from, to int) lisp.Span {
	return lisp.Span{Index: from, Length: to - from}
}

var (
	floatPattern   = regexp.MustCompile(`^[0-9][0-9_]*\.[0-9_]+$`)
	integerPattern = regexp.MustCompile(`^(?:0x[0-9a-fA-F_]+|0o[0-7_]+|0b[01_]+|[0-9][0-9_]*)$`)
)

var charNames = map[string]rune{
	"space":           ' ',
	"newline":         '\n',
	"tab":             '\t',
	"carriage-return": '\r',
	`\n`:              '\n',
	`\t`:              '\t',
	`\r`:              '\r',
	`\"`:              '"',
}

func readTerm(term *parsec.Terminal) parsec.ParsecNode {
	text := term.GetValue()
	obj := &lisp.Object[lisp.Span]{Info: spanBetween(term.Position, term.Position+len(text))}
	switch term.GetName() {
	case "CHAR":
		name := text[1:]
		if c, ok := charNames[name]; ok {
			obj.SetChar(c)
			return obj
		}
		obj.SetChar([]rune(name)[0])
	case "RAWSTRING":
		obj.SetString(strings.ReplaceAll(text[2:len(text)-1], `""`, `"`))
	case "STRING":
		s, err := unescapeString(text[1 : len(text)-1])
		if err != nil {
			return syntaxErrorf(term.Position, len(text), "%v", err)
		}
		obj.SetString(s)
	case "ATOM":
		return readAtom(obj, term)
	default:
		return syntaxErrorf(term.Position, len(text), "unexpected token %s", term.GetName())
	}
	return obj
}

func readAtom(obj *lisp.Object[lisp.Span], term *parsec.Terminal) parsec.ParsecNode {
	text := term.GetValue()
	switch {
	case floatPattern.MatchString(text):
		f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 32)
		if err != nil {
			return syntaxErrorf(term.Position, len(text), "bad number: %s", text)
		}
		obj.SetFloat(float32(f))
	case integerPattern.MatchString(text):
		x, err := parseInteger(text)
		if err != nil {
			return syntaxErrorf(term.Position, len(text), "bad number: %s", text)
		}
		obj.SetInt(x)
	case text == lisp.NilSymbol:
		obj.SetNil()
	case text == lisp.TrueSymbol:
		obj.SetBool(true)
	case text == lisp.FalseSymbol:
		obj.SetBool(false)
	case len(text) > 1 && text[0] == ':':
		obj.SetKeyword(text[1:])
	default:
		obj.SetSymbol(text)
	}
	return obj
}

func parseInteger(text string) (int32, error) {
	base := 10
	digits := text
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x':
			base, digits = 16, text[2:]
		case 'o':
			base, digits = 8, text[2:]
		case 'b':
			base, digits = 2, text[2:]
		}
	}
	x, err := strconv.ParseInt(strings.ReplaceAll(digits, "_", ""), base, 32)
	if err != nil {
		return 0, err
	}
	return int32(x), nil
}

func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"', '\\':
			b.WriteByte(s[i])
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}

func stringifyNodes(nodes []parsec.ParsecNode) string {
	var s []string
	for _, node := range nodes {
		switch node := node.(type) {
		case *parsec.Terminal:
			switch node.GetName() {
			case "OPENP", "CLOSEP", "EOF":
				continue
			}
			s = append(s, node.GetValue())
		case []parsec.ParsecNode:
			s = append(s, "("+stringifyNodes(node)+")")
		case *lisp.Object[lisp.Span]:
			s = append(s, node.String())
		}
	}
	return strings.Join(s, " ")
}

// cleanParsecNodeList flattens lis and drops comments.  When lis contains an
// error the error is returned alone with false.
func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "COMMENT" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			nodes = []parsec.ParsecNode{node}
			return nodes, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}
