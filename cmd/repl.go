// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"github.com/neolisp/nl/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ReplCommand creates the "repl" cobra command.
func ReplCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive NeoLisp REPL",
		Long: `Start an interactive read-eval-print loop for NeoLisp.

The builtin library is loaded automatically. Input continues on a new line
while parentheses are unbalanced. Tab completes the names of visible
bindings and the history is kept between sessions. Use Ctrl-D to exit.

Example REPL session:
  nl> (+ 1 2)
  => 3
  nl> (defndynamic square (x) (* x x))
  => nil
  nl> (square 5)
  => 25
  nl> (help square)
  ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cfg.newScope()
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
			prompt := viper.GetString("prompt")
			return repl.RunScope(s, prompt, repl.ContinuePrompt(prompt),
				repl.WithMaxDepth(maxDepth()),
				repl.WithColor(colorMode()),
				repl.WithLightTrace(lightTrace()),
				repl.WithHistoryFile(viper.GetString("history-file")),
				repl.WithLogger(logger),
			)
		},
	}
	cmd.Flags().String("prompt", repl.DefaultPrompt, "Prompt shown before input.")
	cmd.Flags().String("history-file", repl.DefaultHistoryPath(),
		"File keeping the input history, empty to disable history.")
	for _, name := range []string{"prompt", "history-file"} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}
