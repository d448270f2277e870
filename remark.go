/*
Package remark is a simple regex-based lexer/parser for inline markup.

Consists of subpackages:
  - cmd/remark: console utility parsing marked-up text to JSON segments, HTML, or styled terminal output;
  - token: defines tokens which should be parsed from text, built from regex fragments;
  - parser: compiles token definitions into a compound regex and parses text to a flat list of segments;
  - markdown: ready-made Markdown dialect and a compact tag-based way to define similar dialects;
  - ruledef: converts token-set description (written in YAML) to token definitions;
  - render: renders parsed segments as inline HTML or ANSI-styled terminal text.

Typical usage is:

1. Describe tokens either in Go (token.New, markdown.NewTag) or in a YAML
rule file parsable by ruledef. Each token is a regex fragment for its start
marker and, for paired tokens, its end marker, plus styling params to
attach to text it encloses.

2. Create a parser for the token set (parser.New or markdown.NewParser).
The parser is immutable and may be shared between goroutines.

3. Feed it text. The result is a flat list of segments, each carrying its
text and the merged styling params of all formatting tokens open at that
point. Render the segments yourself or with the render subpackage.
*/
package remark

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ParserErrors  = 101 // used by parser
	RuleDefErrors = 201 // used by ruledef
)

// Error is the error type used by remark subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message.
	Message string
}

// NewError creates new Error structure.
func NewError(code int, msg string) *Error {
	return &Error{code, msg}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg)
}
