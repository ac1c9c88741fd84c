package explain

import "strings"

// Fixed syntax of the MAL explain dialect.
const (
	headerMarker    = "function "
	optionsOpen     = "{"
	optionsClose    = "}"
	variablesOpen   = "("
	variablesClose  = ")"
	assignMarker    = " := "
	literalMarker   = "@"
	statementTrim   = " \t\n\r\f\v|;"
	defaultRootName = "sql.mvc"
)

// Rules configures which lines and operands the parser skips and which
// operators it treats specially. The zero value ignores nothing and has no
// root marker; use DefaultRules as a base.
type Rules struct {
	// IgnoredPrefixes drops logical lines starting with any of these.
	IgnoredPrefixes []string
	// IgnoredOperators drops logical lines containing any of these.
	IgnoredOperators []string
	// IgnoredNames are operand names that contribute no id or edge.
	IgnoredNames []string
	// RootMarker is the operator of the distinguished root call.
	RootMarker string
	// ResultSetMarker prefixes call statements without a return list.
	ResultSetMarker string
	// AutoCommitMarker on the first line moves the header to the second.
	AutoCommitMarker string
}

// DefaultRules returns the rules for MonetDB explain output.
func DefaultRules() Rules {
	return Rules{
		IgnoredPrefixes:  []string{"+", "mal", "barrier ", "exit ", "end "},
		IgnoredOperators: []string{"querylog.define", "language.dataflow", "language.pass"},
		IgnoredNames:     []string{"nil", "true", "false"},
		RootMarker:       defaultRootName,
		ResultSetMarker:  "sql.resultSet",
		AutoCommitMarker: "auto commit",
	}
}

// ignoredOperand reports whether an operand name is a literal or a reserved
// word rather than a variable reference.
func (r Rules) ignoredOperand(name string) bool {
	if isQuoted(name) || isNumeric(name) || isOIDLiteral(name) {
		return true
	}
	for _, ignored := range r.IgnoredNames {
		if name == ignored {
			return true
		}
	}
	return false
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

// isNumeric accepts an optional sign, digits, and at most one decimal point.
func isNumeric(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// isOIDLiteral matches MAL oid constants such as "0@0".
func isOIDLiteral(s string) bool {
	head, tail, ok := strings.Cut(s, literalMarker)
	return ok && isNumeric(head) && isNumeric(tail)
}
