package explain

import (
	"errors"
	"strings"

	"github.com/brics-db/explained2dot/internal/ir"
)

// errUnclosedBracket is returned by scanOperands for a '[' without ']'.
var errUnclosedBracket = errors.New("composite type without closing ']'")

// operand is one "name[:type]" entry of an operand list.
type operand struct {
	Name string
	Type string
}

// scanOperands splits operand-list text into operands.
//
// Two shapes are accepted. A parenthesized list "(a:int, b:bat[:oid], c)"
// is split on commas that are neither inside a bracketed sub-type nor inside
// a quoted literal; scanning stops at the closing ')'. Any other text is a
// single bare operand and is never split. Quoted literals may contain the
// other quote character and backslash escapes.
//
// Empty entries are dropped. An unclosed '[' fails with errUnclosedBracket.
func scanOperands(text string) ([]operand, error) {
	list := strings.HasPrefix(text, variablesOpen)
	body := text
	if list {
		body = text[1:]
	}

	var ops []operand
	start, depth := 0, 0
	var q quoteState
	flush := func(end int) {
		if op, ok := parseOperand(body[start:end]); ok {
			ops = append(ops, op)
		}
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case q.step(c):
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case list && c == ',':
			flush(i)
			start = i + 1
		case list && c == ')':
			flush(i)
			return ops, nil
		}
	}
	if depth > 0 {
		return nil, errUnclosedBracket
	}
	flush(len(body))
	return ops, nil
}

// quoteState tracks a quoted literal during a byte scan. A literal closes
// only on the quote character that opened it; a backslash inside a literal
// escapes the next byte.
type quoteState struct {
	open   byte
	escape bool
}

// step consumes c and reports whether c belongs to a quoted literal,
// delimiters included.
func (q *quoteState) step(c byte) bool {
	switch {
	case q.escape:
		q.escape = false
	case q.open != 0 && c == '\\':
		q.escape = true
	case q.open != 0 && c == q.open:
		q.open = 0
	case q.open != 0:
	case c == '"' || c == '\'':
		q.open = c
	default:
		return false
	}
	return true
}

// parseOperand splits "name:type" at the first colon outside quotes.
// Returns false for an entry with an empty name.
func parseOperand(seg string) (operand, bool) {
	var q quoteState
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case q.step(c):
		case c == ':':
			name := trim(seg[:i])
			if name == "" {
				return operand{}, false
			}
			return operand{Name: name, Type: strings.TrimSpace(seg[i+1:])}, true
		}
	}
	name := trim(seg)
	if name == "" {
		return operand{}, false
	}
	return operand{Name: name}, true
}

// parseOperands binds the operands of text to node. Inputs resolve to
// existing identifiers and become input edges; outputs are declared fresh
// and become output edges. Ignored operands contribute nothing.
func (p *Parser) parseOperands(node ir.ID, text string, isIn bool, stmt Statement) error {
	ops, err := scanOperands(text)
	if err != nil {
		return &FormatError{
			Code:    ErrCodeMalformedType,
			Message: "did not find finalizing ']' in " + text,
			Line:    stmt.Line,
			Text:    stmt.Text,
			Err:     err,
		}
	}
	for _, op := range ops {
		if p.rules.ignoredOperand(op.Name) {
			continue
		}
		if isIn {
			id, err := p.registry.Resolve(op.Name)
			if err != nil {
				return &FormatError{
					Code:    ErrCodeUnknownOperand,
					Message: "no id for name " + quoteName(op.Name),
					Line:    stmt.Line,
					Text:    stmt.Text,
					Err:     err,
				}
			}
			p.graph.AddInput(node, id)
			continue
		}
		p.graph.AddOutput(node, p.registry.Declare(op.Name, op.Type))
	}
	return nil
}

func quoteName(name string) string {
	return `"` + name + `"`
}
