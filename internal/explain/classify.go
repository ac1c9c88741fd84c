package explain

import "strings"

// Kind is the shape of a trace statement.
type Kind int

const (
	// KindSkip is a statement without assignment: a tail line or a no-op.
	KindSkip Kind = iota
	// KindCall is "ret := module.fn(args)".
	KindCall
	// KindResultSet is a result-set call, which has no return list.
	KindResultSet
	// KindReassign is "new := old": a new name for an existing value.
	KindReassign
	// KindLiteral is "name := <value with @>": a constant binding.
	KindLiteral
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindCall:
		return "call"
	case KindResultSet:
		return "result_set"
	case KindReassign:
		return "reassign"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Classification is the tagged result of Classify.
type Classification struct {
	Kind Kind
	// Left is the return-value text; empty for KindSkip and KindResultSet.
	Left string
	// Label is the operator name for calls, the source name for
	// reassignments, and the value text for literals.
	Label string
	// Args is the argument list text of a call, up to the final ')', with
	// double quotes replaced by single quotes.
	Args string
	// Operands is Args before quote replacement; the parser scans it.
	Operands string
}

// Classify decides the shape of one normalized statement. It does not touch
// any registry, so it can be applied to statements in isolation.
func Classify(text string, rules Rules) Classification {
	resultSet := rules.ResultSetMarker != "" && strings.HasPrefix(text, rules.ResultSetMarker)
	pos := strings.Index(text, assignMarker)
	if !resultSet && pos < 0 {
		return Classification{Kind: KindSkip}
	}

	left, right := "", text
	if !resultSet {
		left = strings.TrimSpace(text[:pos])
		right = text[pos+len(assignMarker):]
	}

	paren := strings.Index(right, variablesOpen)
	if paren < 0 {
		if resultSet {
			return Classification{Kind: KindSkip}
		}
		label := strings.Trim(right, statementTrim)
		kind := KindReassign
		if strings.Contains(label, literalMarker) {
			kind = KindLiteral
		}
		return Classification{Kind: kind, Left: left, Label: label}
	}

	args := right[paren:]
	if end := strings.LastIndex(right, variablesClose); end > paren {
		args = right[paren : end+1]
	}
	operands := strings.Trim(args, statementTrim)

	kind := KindCall
	if resultSet {
		kind = KindResultSet
	}
	return Classification{
		Kind:     kind,
		Left:     left,
		Label:    strings.TrimSpace(right[:paren]),
		Args:     strings.ReplaceAll(operands, `"`, `'`),
		Operands: operands,
	}
}
