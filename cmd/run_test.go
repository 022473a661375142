// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, ro runOptions, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runExec(newCmdConfig(), ro, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func setConfig(t *testing.T, key string, value interface{}) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

func TestRunExpressions(t *testing.T) {
	out, _, err := runArgs(t, runOptions{expression: true, print: true},
		"(defndynamic sq (x) (* x x))", "(sq 7)", `(println "hi")`)
	require.NoError(t, err)
	assert.Equal(t, "nil\n49\nhi\nnil\n", out)

	out, _, err = runArgs(t, runOptions{expression: true}, "(+ 1 2)")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunMaxDepth(t *testing.T) {
	setConfig(t, "max-depth", 1)
	out, _, err := runArgs(t, runOptions{expression: true, print: true}, "'(1 (2 (3)))")
	require.NoError(t, err)
	assert.Equal(t, "(1 (...))\n", out)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib", "sq.nl")
	require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0o755))
	require.NoError(t, os.WriteFile(lib, []byte("(defndynamic sq (x) (* x x))"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "skip.nl"), []byte("(car 1)"), 0o600))
	main := filepath.Join(dir, "main.nl")
	require.NoError(t, os.WriteFile(main, []byte("(display (sq 6))"), 0o600))

	out, errOut, err := runArgs(t, runOptions{excludes: []string{"skip.nl"}}, filepath.Join(dir, "lib")+"/...", main)
	require.NoError(t, err, errOut)
	assert.Equal(t, "36\n", out)
}

func TestRunErrorDiagnostic(t *testing.T) {
	setConfig(t, "color", "never")
	_, errOut, err := runArgs(t, runOptions{expression: true}, "(defndynamic f (x) (+ x y))", "(f 1)")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "error[unbound-symbol]: unbound symbol 'y'\n")
	assert.Contains(t, errOut, "--> arg1:1:25\n")
	assert.Contains(t, errOut, " 1 |  (defndynamic f (x) (+ x y))\n")
	assert.Contains(t, errOut, "= note: in 'f' at arg2:1:2\n")
}

func TestRunLightTrace(t *testing.T) {
	setConfig(t, "light-trace", true)
	_, errOut, err := runArgs(t, runOptions{expression: true}, "(defmacro bad () (list 'car 1))", "(bad)")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Evaluation error : unbound symbol 'car'")
	assert.NotContains(t, errOut, "#expansion")
}

func TestRunMissingFile(t *testing.T) {
	_, errOut, err := runArgs(t, runOptions{}, filepath.Join(t.TempDir(), "missing.nl"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "error: ")
	assert.Contains(t, errOut, "missing.nl")
}

func TestRunSyntaxError(t *testing.T) {
	setConfig(t, "color", "never")
	_, errOut, err := runArgs(t, runOptions{expression: true}, "(+ 1 2))")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "error[syntax-error]: ")
	assert.Contains(t, errOut, "--> arg1:1:")
}

func TestRootCommand(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"run", "repl", "doc", "lsp", "version"} {
		assert.True(t, names[name], "missing command %s", name)
	}
	for _, name := range []string{"config", "color", "log-level", "max-depth", "light-trace", "trace", "trace-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "neolisp ")
}
