package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines_LineEndings(t *testing.T) {
	lines := SplitLines("a\r\nb\rc\nd")
	assert.Equal(t, []string{"a", "b", "c", "d"}, lines)
}

func TestSplitLines_KeepsEmptyLines(t *testing.T) {
	lines := SplitLines("a\n\nb\n")
	assert.Equal(t, []string{"a", "", "b", ""}, lines)
}

func TestNormalize_TrimsTableBorders(t *testing.T) {
	stmts := Normalize([]string{"|     X_4:int := sql.mvc();     |"}, DefaultRules())
	require.Len(t, stmts, 1)
	assert.Equal(t, "X_4:int := sql.mvc();", stmts[0].Text)
	assert.Equal(t, 1, stmts[0].Line)
}

func TestNormalize_MergesContinuationLines(t *testing.T) {
	raw := []string{
		"X_1:int := algebra.join(a,",
		":  b)  :",
		"X_2:int := sql.mvc();",
	}
	stmts := Normalize(raw, DefaultRules())
	require.Len(t, stmts, 2)
	assert.Equal(t, "X_1:int := algebra.join(a,b)", stmts[0].Text)
	assert.Equal(t, 1, stmts[0].Line)
	assert.Equal(t, "X_2:int := sql.mvc();", stmts[1].Text)
	assert.Equal(t, 3, stmts[1].Line, "line numbers stay physical after a merge")
}

func TestNormalize_ShortContinuationContributesNothing(t *testing.T) {
	stmts := Normalize([]string{"X_1 := f(a)", ":::"}, DefaultRules())
	require.Len(t, stmts, 1)
	assert.Equal(t, "X_1 := f(a)", stmts[0].Text)
}

func TestNormalize_DropsEmptyLines(t *testing.T) {
	stmts := Normalize([]string{"", "   ", "| |", "X := f()"}, DefaultRules())
	require.Len(t, stmts, 1)
	assert.Equal(t, 4, stmts[0].Line)
}

func TestNormalize_IgnoredPrefixOnlyAtStart(t *testing.T) {
	raw := []string{
		"barrier X_104:bit := language.dataflow();",
		"exit X_104:bit;",
		"end user.s4_1;",
		"+-----+",
		"mal",
		"X_5:int := calc.end (X_4);",
		"X_6:int := barrier.enter(X_5);",
	}
	rules := DefaultRules()
	rules.IgnoredOperators = nil
	stmts := Normalize(raw, rules)
	require.Len(t, stmts, 2)
	assert.Equal(t, "X_5:int := calc.end (X_4);", stmts[0].Text)
	assert.Equal(t, "X_6:int := barrier.enter(X_5);", stmts[1].Text)
}

func TestNormalize_IgnoredOperatorAnywhere(t *testing.T) {
	raw := []string{
		`X_1:void := querylog.define("q":str);`,
		"language.pass(X_8:bat[:int]);",
		"X_2:int := sql.mvc();",
	}
	stmts := Normalize(raw, DefaultRules())
	require.Len(t, stmts, 1)
	assert.Equal(t, "X_2:int := sql.mvc();", stmts[0].Text)
	assert.Equal(t, 3, stmts[0].Line)
}

func TestNormalize_ComposesUnicode(t *testing.T) {
	decomposed := "X_e\u0301 := f()"
	stmts := Normalize([]string{decomposed}, DefaultRules())
	require.Len(t, stmts, 1)
	assert.Equal(t, "X_\u00e9 := f()", stmts[0].Text)
}

func TestNormalize_ZeroRulesKeepEverything(t *testing.T) {
	stmts := Normalize([]string{"barrier x", "mal"}, Rules{})
	assert.Len(t, stmts, 2)
}
