package explain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// trimChars is stripped from both ends of every raw line: whitespace plus the
// table borders ('|') and continuation markers (':') of mclient output.
const trimChars = " \t\n\r\f\v|:"

// continuationMarker starts a physical line that continues the previous one.
const continuationMarker = ':'

// Statement is one logical trace entry after continuation merging.
type Statement struct {
	Text string // trimmed, merged statement text
	Line int    // 1-based physical line where the statement starts
}

// SplitLines splits content on CR, LF and CRLF, keeping one entry per
// physical line so line numbers stay meaningful.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// Normalize merges continuation lines and drops empty and ignorable lines.
// Order is preserved; no identifiers are allocated.
func Normalize(raw []string, rules Rules) []Statement {
	var stmts []Statement
	for i := 0; i < len(raw); i++ {
		start := i
		text := trim(norm.NFC.String(raw[i]))
		for i+1 < len(raw) && isContinuation(raw[i+1]) {
			i++
			text += trim(stripContinuation(norm.NFC.String(raw[i])))
		}
		if text == "" || rules.ignoredLine(text) {
			continue
		}
		stmts = append(stmts, Statement{Text: text, Line: start + 1})
	}
	return stmts
}

func trim(s string) string {
	return strings.Trim(s, trimChars)
}

func isContinuation(line string) bool {
	return line != "" && line[0] == continuationMarker
}

// stripContinuation removes the two-character frame on either side of a
// continuation line, e.g. ":  text  :".
func stripContinuation(line string) string {
	if len(line) < 4 {
		return ""
	}
	return line[2 : len(line)-2]
}

// ignoredLine reports whether a logical line starts with an ignorable prefix
// or mentions an ignorable operator anywhere.
func (r Rules) ignoredLine(text string) bool {
	for _, prefix := range r.IgnoredPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	for _, op := range r.IgnoredOperators {
		if strings.Contains(text, op) {
			return true
		}
	}
	return false
}
