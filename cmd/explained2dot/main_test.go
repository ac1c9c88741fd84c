package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tracePath(name string) string {
	return filepath.Join("..", "..", "testdata", "traces", name)
}

func TestRun_ExitCodes(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "bad.explain")
	require.NoError(t, os.WriteFile(malformed, []byte("function f()\nr := algebra.join(a);\n"), 0600))

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "converts a trace",
			args:       []string{tracePath("select.explain")},
			wantCode:   0,
			wantStdout: "digraph \"select\" {\n",
		},
		{
			name:       "help",
			args:       []string{"-h"},
			wantCode:   0,
			wantStdout: "Usage:",
		},
		{
			name:       "malformed trace",
			args:       []string{malformed},
			wantCode:   1,
			wantStderr: "Error [UNKNOWN_OPERAND]: parsing ",
		},
		{
			name:       "missing file",
			args:       []string{filepath.Join(t.TempDir(), "missing.explain")},
			wantCode:   2,
			wantStderr: "Error [E001]: reading explain file",
		},
		{
			name:       "unknown flag",
			args:       []string{"--bogus", tracePath("select.explain")},
			wantCode:   2,
			wantStderr: "Error [E001]: unknown flag",
		},
		{
			name:     "no arguments",
			args:     []string{},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestRun_MalformedTraceWritesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.explain")
	out := filepath.Join(dir, "bad.dot")
	require.NoError(t, os.WriteFile(in, []byte("function f(x:int)\nr := algebra.select(x:bat[int);\n"), 0600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", out, in}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, out)
	assert.Contains(t, stderr.String(), "line 2")
}
