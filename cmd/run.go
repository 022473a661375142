// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/neolisp/nl/diagnostic"
	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/x/pretty"
	"github.com/neolisp/nl/repl"
	"github.com/spf13/cobra"
)

type runOptions struct {
	expression bool
	print      bool
	excludes   []string
}

// RunCommand creates the "run" cobra command.
func RunCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var ro runOptions
	cmd := &cobra.Command{
		Use:   "run [flags] FILE|EXPR ...",
		Short: "Run NeoLisp code",
		Long: `Run NeoLisp code supplied via the command line or files.

Files are evaluated in order in a single scope, so definitions made by a
file are visible to the files following it. An argument ending with "/..."
stands for every .nl file found recursively under the directory.

Examples:
  neolisp run main.nl
  neolisp run lib/... main.nl
  neolisp run -e '(defndynamic sq (x) (* x x))' '(sq 7)' -p`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cfg, ro, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&ro.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	cmd.Flags().BoolVarP(&ro.print, "print", "p", false,
		"Print the value of each argument to stdout")
	cmd.Flags().StringSliceVar(&ro.excludes, "exclude", nil,
		"Skip files matching a glob pattern, a base name or a directory name")
	return cmd
}

func runExec(cfg *cmdConfig, ro runOptions, args []string, stdout, stderr io.Writer) error {
	if !ro.expression {
		var err error
		args, err = expandArgs(args)
		if err != nil {
			return err
		}
		args = filterExcludes(args, ro.excludes)
	}
	s, err := cfg.newScope(lisp.WithStdout(stdout), lisp.WithStderr(stderr))
	if err != nil {
		return err
	}
	stop, err := startTracing(s)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			logger.WithError(err).Error("unable to complete trace")
		}
	}()

	profile := diagnostic.Profile(colorMode(), stdout)
	sources := map[string]string{}
	for i, arg := range args {
		var v *lisp.Value
		var err error
		if ro.expression {
			name := fmt.Sprintf("arg%d", i+1)
			sources[name] = arg
			v, err = s.LoadString(name, arg)
		} else {
			v, err = s.LoadFile(arg)
		}
		if err != nil {
			reportError(stderr, err, sources)
			return errReported
		}
		if ro.print {
			fmt.Fprintln(stdout, pretty.Sprint(v, maxDepth(), profile)) //nolint:errcheck // best-effort output
		}
	}
	return nil
}

// reportError writes err to w.  Evaluation errors are shown as their light
// stack trace when requested and as an annotated diagnostic otherwise.
func reportError(w io.Writer, err error, sources map[string]string) {
	var lerr *lisp.Error
	if lightTrace() && errors.As(err, &lerr) {
		io.WriteString(w, lerr.StringLight()) //nolint:errcheck // best-effort error display
		return
	}
	repl.RenderError(w, err, colorMode(), sources)
}
