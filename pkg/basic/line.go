// Package basic provides just enough line-numbered BASIC lexing to rewrite
// programs statement by statement without disturbing the surrounding text.
package basic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNoLineNumber indicates a program line without a leading line number.
	ErrNoLineNumber = errors.New("missing line number")

	// ErrBadLineNumber indicates a line number that does not fit an int.
	ErrBadLineNumber = errors.New("invalid line number")

	// ErrUnterminatedString indicates unbalanced string quoting.
	ErrUnterminatedString = errors.New("unterminated string literal")
)

// ParseError reports a structural problem with a single program line.
type ParseError struct {
	// Index is the 1-based line index in the source file.
	Index int

	// Number is the BASIC line number, or -1 if none could be read.
	Number int

	// Text is the original line text.
	Text string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Number >= 0 {
		return fmt.Sprintf("line %d (BASIC %d): %v: %q", e.Index, e.Number, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Index, e.Err, e.Text)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Line is a single numbered program line.
type Line struct {
	// Index is the 1-based line index in the source file (0 for synthesized lines).
	Index int

	// Indent is any whitespace before the line number.
	Indent string

	// NumberText is the line number exactly as written.
	NumberText string

	// Number is the parsed line number.
	Number int

	// Sep is the whitespace between the line number and the first statement.
	Sep string

	// Statements holds the colon-separated statements in order.
	Statements []Statement
}

// NewLine builds a synthesized line from a number and statement texts.
func NewLine(number int, statements ...string) Line {
	line := Line{
		NumberText: strconv.Itoa(number),
		Number:     number,
		Sep:        " ",
	}
	for _, s := range statements {
		line.Statements = append(line.Statements, Statement(s))
	}
	return line
}

// Body returns the statements rejoined with colons.
func (l Line) Body() string {
	parts := make([]string, len(l.Statements))
	for i, s := range l.Statements {
		parts[i] = string(s)
	}
	return strings.Join(parts, ":")
}

// String renders the line, byte-for-byte identical to the input when no
// statement has been replaced.
func (l Line) String() string {
	return l.Indent + l.NumberText + l.Sep + l.Body()
}

// Clone returns a copy that does not share the statement slice.
func (l Line) Clone() Line {
	out := l
	out.Statements = append([]Statement(nil), l.Statements...)
	return out
}

// ParseLine splits raw into its line number and statements.
// index is the 1-based source line index, used only for error reporting.
func ParseLine(index int, raw string) (Line, error) {
	rest := raw
	indent := rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))]
	rest = rest[len(indent):]

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return Line{}, &ParseError{Index: index, Number: -1, Text: raw, Err: ErrNoLineNumber}
	}

	numberText := rest[:digits]
	number, err := strconv.Atoi(numberText)
	if err != nil {
		return Line{}, &ParseError{Index: index, Number: -1, Text: raw, Err: ErrBadLineNumber}
	}
	rest = rest[digits:]

	body := strings.TrimLeft(rest, " \t")
	sep := rest[:len(rest)-len(body)]

	statements, err := SplitStatements(body)
	if err != nil {
		return Line{}, &ParseError{Index: index, Number: number, Text: raw, Err: err}
	}

	return Line{
		Index:      index,
		Indent:     indent,
		NumberText: numberText,
		Number:     number,
		Sep:        sep,
		Statements: statements,
	}, nil
}
