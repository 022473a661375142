// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"fmt"
	"runtime"

	"github.com/neolisp/nl/lisp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of NeoLisp",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "neolisp %s (Go %s %s/%s)\n", //nolint:errcheck // best-effort output
			lisp.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
