package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brics-db/explained2dot/internal/explain"
	"github.com/brics-db/explained2dot/internal/ir"
)

func TestInspect_Text(t *testing.T) {
	stdout, _, err := execute(t, "inspect", tracePath("select.explain"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Function:      user.s4_1\n")
	assert.Contains(t, stdout, "Statements:    13\n")
	assert.Contains(t, stdout, "Declarations:  13\n")
	assert.Contains(t, stdout, "Nodes:         10\n")
	assert.Contains(t, stdout, "Arguments:     12\n")
	assert.Contains(t, stdout, "Literals:      1\n")
	assert.Contains(t, stdout, "Reassignments: 1\n")
	assert.Contains(t, stdout, "Input edges:   12\n")
	assert.Contains(t, stdout, "Output edges:  10\n")
	assert.Contains(t, stdout, "Root:          N2\n")
	assert.NotContains(t, stdout, "Excised:")
	assert.NotContains(t, stdout, "Warnings:")
	assert.True(t, strings.HasSuffix(stdout, "\n"))
	assert.False(t, strings.HasSuffix(stdout, "\n\n"))
}

func TestInspect_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "-m", "inspect", tracePath("select.explain"))
	require.NoError(t, err)

	var resp struct {
		Status string  `json:"status"`
		Data   Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "user.s4_1", resp.Data.Function)
	assert.Equal(t, ir.ID(2), resp.Data.Root)
	assert.Equal(t, ir.ID(3), resp.Data.Excised)
	assert.Equal(t, 9, resp.Data.InputEdges, "three edges from X_4 are excised")
	assert.Equal(t, 13, resp.Data.Declarations)
	assert.Len(t, resp.Data.Fingerprint, 64)
}

func TestInspect_FingerprintStable(t *testing.T) {
	first, _, err := execute(t, "inspect", tracePath("select.explain"))
	require.NoError(t, err)
	second, _, err := execute(t, "inspect", tracePath("select.explain"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInspect_JSONError(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "inspect", tracePath("missing.explain"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeGeneric, resp.Error.Code)
}

func TestSummarize_Warnings(t *testing.T) {
	res, err := explain.Parse("function f()\nX_1 := sql.mvc();\nX_2 := sql.mvc();", explain.Options{Rules: explain.DefaultRules()})
	require.NoError(t, err)

	s := Summarize(res)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "DUPLICATE_ROOT_NODE")
	assert.Equal(t, ir.ID(1), s.Root)
	assert.Equal(t, res.Graph.Fingerprint(res.Registry), s.Fingerprint)
}

func TestSummary_String(t *testing.T) {
	s := Summary{
		Function:    "user.f",
		Statements:  3,
		Root:        1,
		Fingerprint: "abc",
		Warnings:    []string{"DUPLICATE_ROOT_NODE: another sql.mvc node found, keeping node 1 (line 3)"},
	}

	out := s.String()
	assert.Contains(t, out, "Root:          N1\n")
	assert.NotContains(t, out, "Excised:")
	assert.True(t, strings.HasSuffix(out, "\n\nWarnings:\n  DUPLICATE_ROOT_NODE: another sql.mvc node found, keeping node 1 (line 3)"))

	assert.Contains(t, Summary{}.String(), "Root:          (none)\n")
}
