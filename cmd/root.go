// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/neolisp/nl/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// logger is shared by the commands and the scopes they create.
var logger = logrus.New()

// errReported is returned by commands which already rendered their error.
var errReported = errors.New("error reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "neolisp",
	Short: "NeoLisp interpreter",
	Long: `NeoLisp is a small Lisp with dynamic scoping, located values and
stack traces, implemented in Go.

Getting started:
  neolisp run file.nl            Run a source file
  neolisp run -e '(+ 1 2)' -p    Evaluate an expression and print it
  neolisp run src/...            Run every .nl file under src
  neolisp repl                   Start an interactive REPL
  neolisp doc defndynamic        Show documentation for a form
  neolisp lsp                    Start the language server

Language overview:
  Functions are defined with (defndynamic name (args) body) and macros with
  (defmacro name (args) body). Free names are resolved when they are
  evaluated, so functions see the bindings of their callers. The symbols
  true and false are booleans and nil is the empty value.

Configuration is read from $HOME/.neolisp.yaml and from NEOLISP_*
environment variables, e.g. NEOLISP_LOG_LEVEL=debug.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.neolisp.yaml)")
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn or error.")
	flags.Int("max-depth", -1, "Depth at which printed values are elided, negative for no limit.")
	flags.Bool("light-trace", false, "Print error stack traces without internal frames.")
	flags.String("trace", "none", "Trace form dispatch: otel, opencensus, pprof, callgrind or none.")
	flags.String("trace-file", "", `Output file of the pprof and callgrind traces (default "cpu.pprof" or "callgrind.out").`)
	for _, name := range []string{"color", "log-level", "max-depth", "light-trace", "trace", "trace-file"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		RunCommand(),
		ReplCommand(),
		DocCommand(),
		LSPCommand(),
		versionCmd,
	)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".neolisp")
	}

	viper.SetEnvPrefix("neolisp")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configErr := viper.ReadInConfig()
	configureLogger()
	if configErr == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	} else if cfgFile != "" {
		logger.WithError(configErr).Warn("unable to read config file")
	}
}

func configureLogger() {
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		logger.WithError(err).Warn("invalid log level")
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
}

func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(viper.GetString("color"))
}

func maxDepth() int {
	return viper.GetInt("max-depth")
}

func lightTrace() bool {
	return viper.GetBool("light-trace")
}
