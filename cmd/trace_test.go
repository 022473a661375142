// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTracing(t *testing.T) {
	for _, mode := range []string{TraceNone, TraceOTel, TraceOpenCensus} {
		t.Run(mode, func(t *testing.T) {
			setConfig(t, "trace", mode)
			s, err := newCmdConfig().newScope()
			require.NoError(t, err)
			stop, err := startTracing(s)
			require.NoError(t, err)
			_, err = s.LoadString("test.nl", "(+ 1 2)")
			require.NoError(t, err)
			assert.NoError(t, stop())
		})
	}
}

func TestStartTracingCallgrind(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prof.out")
	setConfig(t, "trace", TraceCallgrind)
	setConfig(t, "trace-file", out)
	s, err := newCmdConfig().newScope()
	require.NoError(t, err)
	stop, err := startTracing(s)
	require.NoError(t, err)
	_, err = s.LoadString("test.nl", "(defndynamic sq (x) (* x x)) (sq 3)")
	require.NoError(t, err)
	require.NoError(t, stop())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "version: 1\n"))
	assert.Contains(t, string(data), ") sq\n")
}

func TestStartTracingUnknown(t *testing.T) {
	setConfig(t, "trace", "jaeger")
	s, err := newCmdConfig().newScope()
	require.NoError(t, err)
	_, err = startTracing(s)
	assert.EqualError(t, err, `unknown trace mode "jaeger"`)
}
