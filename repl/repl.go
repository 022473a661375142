// Copyright © 2024 The NeoLisp authors

// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/readline"
	"github.com/muesli/termenv"
	"github.com/neolisp/nl/diagnostic"
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/lisp/x/pretty"
	"github.com/neolisp/nl/parser"
	"github.com/sirupsen/logrus"
)

// SourceName is the file name given to expressions typed at the prompt.
const SourceName = "REPL"

// DefaultPrompt is the prompt shown by the neolisp command.
const DefaultPrompt = "nl> "

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	maxDepth    int
	color       diagnostic.ColorMode
	lightTrace  bool
	historyFile string
	logger      logrus.FieldLogger
}

func newConfig(opts ...Option) *config {
	c := &config{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		maxDepth:    -1,
		historyFile: DefaultHistoryPath(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the REPL.
type Option func(*config)

// WithStdin overrides the input of the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout overrides the writer receiving results and program output.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr overrides the writer receiving errors.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// WithMaxDepth limits the depth at which results are displayed.  A negative
// depth shows results completely.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithColor sets when results are colorized.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithLightTrace hides internal frames from error traces.
func WithLightTrace(light bool) Option {
	return func(c *config) {
		c.lightTrace = light
	}
}

// WithHistoryFile sets the file storing the input history.  An empty path
// disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithLogger sets the logger of the evaluator.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = log
	}
}

// RunRepl runs a REPL in a fresh scope holding the builtin library.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	configs := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.FileSystemLibrary{}),
		lisp.WithStdout(cfg.stdout),
		lisp.WithStderr(cfg.stderr),
	}
	if cfg.logger != nil {
		configs = append(configs, lisp.WithLogger(cfg.logger))
	}
	s, err := lisp.NewInitializedScope(configs...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	if err := lisplib.LoadLibrary(s); err != nil {
		return fmt.Errorf("library initialization failure: %w", err)
	}
	return RunScope(s, prompt, ContinuePrompt(prompt), opts...)
}

// ContinuePrompt returns the prompt shown while input is incomplete: dots
// as wide as prompt.
func ContinuePrompt(prompt string) string {
	n := utf8.RuneCountInString(prompt)
	if n < 2 {
		return prompt
	}
	return strings.Repeat(".", n-1) + " "
}

// RunScope runs a REPL evaluating input in s.  Input continues on the cont
// prompt while its parentheses are unbalanced.  RunScope returns when the
// input is exhausted.
func RunScope(s *lisp.Scope, prompt, cont string, opts ...Option) error {
	if s.Runtime.Reader == nil {
		return errors.New("scope has no reader")
	}
	cfg := newConfig(opts...)
	ensureHistoryFilePermissions(cfg.historyFile)
	rlCfg := &readline.Config{
		Stdout:            cfg.stdout,
		Stderr:            cfg.stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{scope: s},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	session := &session{
		scope:   s,
		config:  cfg,
		profile: resultProfile(cfg),
	}
	var pending strings.Builder
	for {
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			if strings.TrimSpace(pending.String()) != "" {
				session.eval(pending.String())
			}
			return nil
		}
		pending.Write(line)
		pending.WriteString("\n")
		if incomplete(pending.String()) {
			rl.SetPrompt(cont)
			continue
		}
		session.eval(pending.String())
		pending.Reset()
		rl.SetPrompt(prompt)
	}
}

func resultProfile(cfg *config) termenv.Profile {
	return diagnostic.Profile(cfg.color, cfg.stdout)
}

type session struct {
	scope   *lisp.Scope
	config  *config
	profile termenv.Profile
}

// eval reads and evaluates one chunk of input, printing each result.
func (r *session) eval(input string) {
	if strings.TrimSpace(input) == "" {
		return
	}
	exprs, err := r.scope.Runtime.Reader.Read(SourceName, strings.NewReader(input))
	if err != nil {
		RenderError(r.config.stderr, err, r.config.color, map[string]string{SourceName: input})
		return
	}
	for _, expr := range exprs {
		v, err := r.scope.Eval(expr)
		if err != nil {
			r.printError(err)
			return
		}
		fmt.Fprintf(r.config.stdout, "=> %s\n", pretty.Sprint(v, r.config.maxDepth, r.profile)) //nolint:errcheck // best-effort REPL output
	}
}

func (r *session) printError(err error) {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		fmt.Fprintln(r.config.stderr, err) //nolint:errcheck // best-effort error display
		return
	}
	trace := lerr.String()
	if r.config.lightTrace {
		trace = lerr.StringLight()
	}
	io.WriteString(r.config.stderr, trace) //nolint:errcheck // best-effort error display
}

// DefaultHistoryPath returns the history file used when none is configured.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neolisp_history")
}

// ensureHistoryFilePermissions creates the history file when missing and
// restricts it to its owner.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path comes from configuration
	if err != nil {
		return
	}
	f.Close()            //nolint:errcheck,gosec // only created for its mode
	os.Chmod(path, 0600) //nolint:errcheck,gosec // best effort
}

// incomplete reports whether src has unclosed lists or an unterminated
// string, in which case more input is needed.
func incomplete(src string) bool {
	depth := 0
	rs := []rune(src)
	for i := 0; i < len(rs); i++ {
		switch c := rs[i]; {
		case c == ';':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case c == '#':
			if i+1 < len(rs) && rs[i+1] == '\\' {
				i++
			}
			i++
		case c == '"':
			raw := i > 0 && rs[i-1] == 'r' && (i == 1 || !isAtomRune(rs[i-2]))
			i++
			for ; i < len(rs) && rs[i] != '"'; i++ {
				if rs[i] == '\\' && !raw {
					i++
				}
			}
			if i >= len(rs) {
				return true
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth > 0
}

func isAtomRune(c rune) bool {
	return c != ' ' && c != '\t' && c != '\n' && c != '(' && c != ')' && c != '\'' && c != '`' && c != ','
}
