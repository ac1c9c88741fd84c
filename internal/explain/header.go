package explain

import "strings"

// header is the enclosing function declaration of a trace, e.g.
// "function user.s4_1{autoCommit=true}(A0:int, A1:str):void;".
type header struct {
	Name string
	Vars []operand
}

// parseHeader extracts the function name and its variable list. An options
// block "{...}" directly after the name is skipped. The variable list must
// close on the same logical line.
func parseHeader(stmt Statement) (header, error) {
	text := stmt.Text
	pos := strings.Index(text, headerMarker)
	if pos < 0 {
		return header{}, newFormatError(ErrCodeMissingHeaderMarker, stmt,
			"could not find root node %q", headerMarker)
	}
	rest := text[pos+len(headerMarker):]

	var name string
	open := strings.Index(rest, variablesOpen)
	brace := strings.Index(rest, optionsOpen)
	if brace >= 0 && (open < 0 || brace < open) {
		name = rest[:brace]
		end := strings.Index(rest[brace+1:], optionsClose)
		if end < 0 {
			return header{}, newFormatError(ErrCodeUnterminatedOptions, stmt,
				"options block of root function is not closed with %q", optionsClose)
		}
		after := brace + 1 + end + 1
		open = strings.Index(rest[after:], variablesOpen)
		if open >= 0 {
			open += after
		}
	} else if open >= 0 {
		name = rest[:open]
	}
	if open < 0 {
		return header{}, newFormatError(ErrCodeMissingVariableSection, stmt,
			"could not find variables section of root function")
	}

	end := strings.Index(rest[open+1:], variablesClose)
	if end < 0 {
		return header{}, newFormatError(ErrCodeUnterminatedVariableSection, stmt,
			"root function variables do not terminate on the same line")
	}
	vars, err := scanOperands(rest[open : open+1+end+1])
	if err != nil {
		fe := newFormatError(ErrCodeMalformedType, stmt, "malformed type in root function variables")
		fe.Err = err
		return header{}, fe
	}
	return header{Name: strings.TrimSpace(name), Vars: vars}, nil
}
