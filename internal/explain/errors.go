package explain

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes format errors.
type ErrorCode string

const (
	// ErrCodeMissingHeaderMarker indicates the header lacks the function marker.
	ErrCodeMissingHeaderMarker ErrorCode = "MISSING_HEADER_MARKER"

	// ErrCodeMissingVariableSection indicates the header has no "(" variable list.
	ErrCodeMissingVariableSection ErrorCode = "MISSING_VARIABLE_SECTION"

	// ErrCodeUnterminatedVariableSection indicates the variable list does not
	// close on the header line.
	ErrCodeUnterminatedVariableSection ErrorCode = "UNTERMINATED_VARIABLE_SECTION"

	// ErrCodeUnterminatedOptions indicates a "{" options block without "}".
	ErrCodeUnterminatedOptions ErrorCode = "UNTERMINATED_OPTIONS"

	// ErrCodeUnknownOperand indicates an input name that was never declared.
	ErrCodeUnknownOperand ErrorCode = "UNKNOWN_OPERAND"

	// ErrCodeMalformedType indicates a composite type without closing "]".
	ErrCodeMalformedType ErrorCode = "MALFORMED_TYPE"

	// ErrCodeMissingRootNode indicates excision was requested but no root
	// node (or no root output) exists. Warning only.
	ErrCodeMissingRootNode ErrorCode = "MISSING_ROOT_NODE"

	// ErrCodeDuplicateRootNode indicates a second root marker call. The first
	// one is kept. Warning only.
	ErrCodeDuplicateRootNode ErrorCode = "DUPLICATE_ROOT_NODE"
)

// Warning reports whether errors with this code are non-fatal.
func (c ErrorCode) Warning() bool {
	return c == ErrCodeMissingRootNode || c == ErrCodeDuplicateRootNode
}

// FormatError is a parse failure (or warning) tied to a trace statement.
//
// Line is the 1-based physical line where the offending statement starts;
// it is zero for conditions that are not tied to a statement. Text is the
// literal text that triggered the failure.
type FormatError struct {
	Code    ErrorCode
	Message string
	Line    int
	Text    string
	Err     error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Text != "":
		return fmt.Sprintf("%s: %s (line %d: %q)", e.Code, e.Message, e.Line, e.Text)
	case e.Line > 0:
		return fmt.Sprintf("%s: %s (line %d)", e.Code, e.Message, e.Line)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is matches another *FormatError by code, so callers can write
// errors.Is(err, &FormatError{Code: ErrCodeMalformedType}).
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newFormatError(code ErrorCode, stmt Statement, format string, args ...any) *FormatError {
	return &FormatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    stmt.Line,
		Text:    stmt.Text,
	}
}

// CodeOf returns the code of the first FormatError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// IsUnknownOperand returns true if err is an unknown operand error.
// Uses errors.As to handle wrapped errors.
func IsUnknownOperand(err error) bool {
	return CodeOf(err) == ErrCodeUnknownOperand
}

// IsMalformedType returns true if err is a malformed type error.
func IsMalformedType(err error) bool {
	return CodeOf(err) == ErrCodeMalformedType
}

// IsWarning returns true if err is a non-fatal format condition.
func IsWarning(err error) bool {
	return CodeOf(err).Warning()
}
