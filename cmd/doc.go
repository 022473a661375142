// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

type docOptions struct {
	sourceFile string
	list       bool
	missing    bool
}

// DocCommand creates the "doc" cobra command.  Embedders can pass
// WithLoader so that their own forms are documented.
func DocCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var do docOptions
	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for forms and variables",
		Long: `Show built-in documentation for NeoLisp forms, macros and variables.

Without a name the names of all visible forms are listed. Use -f to load a
source file first, which is useful to document your own code.

Examples:
  neolisp doc                          List all forms
  neolisp doc defndynamic              Show docs for defndynamic
  neolisp doc -f mylib.nl my-func      Load a file, then show docs for my-func
  neolisp doc --missing                List forms without documentation`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return docExec(cfg, do, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&do.sourceFile, "source-file", "f", "",
		"Evaluate a source file before querying documentation.")
	cmd.Flags().BoolVarP(&do.list, "list", "l", false,
		"List the names of all visible forms.")
	cmd.Flags().BoolVar(&do.missing, "missing", false,
		"List the forms which have no documentation and fail if there are any.")
	return cmd
}

func docExec(cfg *cmdConfig, do docOptions, args []string, stdout, stderr io.Writer) error {
	// Output of the loaded code is discarded unless loading fails.
	errbuf := &bytes.Buffer{}
	s, err := cfg.newScope(lisp.WithStdout(io.Discard), lisp.WithStderr(errbuf))
	if err != nil {
		return err
	}
	if do.sourceFile != "" {
		if _, err := s.LoadFile(do.sourceFile); err != nil {
			_, _ = stderr.Write(errbuf.Bytes())
			reportError(stderr, err, nil)
			return errReported
		}
	}
	out := bufio.NewWriter(stdout)
	defer out.Flush() //nolint:errcheck // best-effort flush on exit
	switch {
	case do.missing:
		missing := libhelp.CheckMissing(s)
		for _, m := range missing {
			fmt.Fprintf(out, "%s %s\n", m.Kind, m.Name) //nolint:errcheck // checked by Flush
		}
		if len(missing) > 0 {
			return fmt.Errorf("%d forms have no documentation", len(missing))
		}
		return nil
	case do.list || len(args) == 0:
		return libhelp.RenderFormList(out, s)
	default:
		return libhelp.RenderVar(out, s, args[0])
	}
}
