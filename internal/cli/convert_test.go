package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brics-db/explained2dot/internal/explain"
)

func TestConvert_Stdout(t *testing.T) {
	stdout, _, err := execute(t, tracePath("select.explain"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "digraph \"select\" {\n\tnode [shape=box];\n"))
	assert.True(t, strings.HasSuffix(stdout, "}\n"))
	assert.Contains(t, stdout, "\tN2 [label=\"sql.mvc\\n()\" style=filled fillcolor=gainsboro];\n")
	assert.Contains(t, stdout, "\tA3 -> N4;\n")
}

func TestConvert_ExcludeMVC(t *testing.T) {
	stdout, _, err := execute(t, "-m", tracePath("select.explain"))
	require.NoError(t, err)

	assert.NotContains(t, stdout, "sql.mvc")
	assert.NotContains(t, stdout, "A3 ")
	assert.NotContains(t, stdout, "-> A3;")
	assert.Contains(t, stdout, "\tN4 [label=")
}

func TestConvert_CompactAndExcludeResult(t *testing.T) {
	stdout, _, err := execute(t, "-c", "-r", tracePath("select.explain"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "\tgraph [ranksep=0.25, nodesep=0.15];\n")
	assert.Contains(t, stdout, "\tN4 [label=\"sql.tid\" style=filled fillcolor=gainsboro];\n")
	assert.NotContains(t, stdout, "sql.resultSet")
	assert.NotContains(t, stdout, "bat.append")
	assert.NotContains(t, stdout, "bat.new")
}

func TestConvert_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plan.dot")

	stdout, stderr, err := execute(t, "-v", "-o", out, tracePath("select.explain"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote 10 node(s) to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph \"select\" {"))
}

func TestConvert_MalformedTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.explain")
	require.NoError(t, os.WriteFile(path, []byte("function f(x:int)\nr := algebra.select(x:bat[int);\n"), 0644))

	stdout, _, err := execute(t, path)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, explain.IsMalformedType(err))
}

func TestConvert_MissingFile(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "missing.explain"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_MissingRootIsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noroot.explain")
	require.NoError(t, os.WriteFile(path, []byte("function f(a:int)\nb := calc.inc(a);\n"), 0644))

	stdout, stderr, err := execute(t, "-m", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "calc.inc")
	assert.Contains(t, stderr, "MISSING_ROOT_NODE")
}

func TestGraphName(t *testing.T) {
	assert.Equal(t, "select", graphName("testdata/traces/select.explain"))
	assert.Equal(t, "plan.v2", graphName("/tmp/plan.v2.txt"))
	assert.Equal(t, "noext", graphName("noext"))
}

func TestConvert_OutputIsInput(t *testing.T) {
	data, err := os.ReadFile(tracePath("select.explain"))
	require.NoError(t, err)
	dir := t.TempDir()
	path := filepath.Join(dir, "select.explain")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, _, err = execute(t, "-o", filepath.Join(dir, ".", "select.explain"), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "would overwrite the explain file")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}
