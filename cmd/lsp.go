// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"fmt"
	"io"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lsp"
	"github.com/spf13/cobra"
)

// LSPCommand creates the "lsp" cobra command.  Embedders can pass
// WithLoader so that hover and completion cover their own forms.
func LSPCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)

	var (
		stdio bool
		port  int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the NeoLisp Language Server Protocol server",
		Long: `Start an LSP server for NeoLisp source files.

The language server publishes syntax errors as diagnostics and provides
hover documentation, completion, go-to-definition and document symbols.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  neolisp lsp                        Start with stdio transport
  neolisp lsp --port 7998            Start with TCP on port 7998`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			scope, err := cfg.newScope(lisp.WithStdout(io.Discard), lisp.WithStderr(io.Discard))
			if err != nil {
				return err
			}
			srv := lsp.New(lsp.WithScope(scope), lsp.WithLogger(logger))
			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				logger.WithField("addr", addr).Info("lsp server listening")
				if err := srv.RunTCP(addr); err != nil {
					return fmt.Errorf("lsp server error: %w", err)
				}
				return nil
			}
			if err := srv.RunStdio(); err != nil {
				return fmt.Errorf("lsp server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")

	return cmd
}
