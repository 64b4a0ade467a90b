package subobject

import (
	"errors"
	"fmt"
	"strings"
)

const (
	highlightStart = "\x1b[31;47m"
	highlightEnd   = "\x1b[0m"
)

// ErrSyntax is matched by every *ParsingError through errors.Is.
var ErrSyntax = errors.New("subobject: syntax error")

// ParsingError reports a malformed selector. Position and Length are rune
// offsets into the source pattern. A ParsingError is immutable once built.
type ParsingError struct {
	position   int
	length     int
	message    string
	pattern    string
	hasPattern bool
}

// NewParsingError returns a ParsingError without source text. Negative
// position or length are clamped to zero.
func NewParsingError(position, length int, message string) *ParsingError {
	return &ParsingError{
		position: max(position, 0),
		length:   max(length, 0),
		message:  message,
	}
}

// Position returns the rune offset where the offending span starts.
func (e *ParsingError) Position() int {
	return e.position
}

// Length returns the number of runes the offending span covers.
func (e *ParsingError) Length() int {
	return e.length
}

// Message returns the description of the problem.
func (e *ParsingError) Message() string {
	return e.message
}

// WithPattern returns a copy of e carrying the source text, which enables
// highlighted rendering.
func (e *ParsingError) WithPattern(pattern string) *ParsingError {
	c := *e
	c.pattern = pattern
	c.hasPattern = true
	return &c
}

// Pattern returns the source text, if one was attached.
func (e *ParsingError) Pattern() (string, bool) {
	return e.pattern, e.hasPattern
}

func (e *ParsingError) Error() string {
	return e.Format(false)
}

func (e *ParsingError) String() string {
	return e.Format(false)
}

func (e *ParsingError) Unwrap() error {
	return ErrSyntax
}

// Format renders the error. With ansiHighlight set and a pattern attached, a
// second line repeats the pattern with the offending span highlighted.
func (e *ParsingError) Format(ansiHighlight bool) string {
	base := fmt.Sprintf("ParsingError: %s (position: %d, length: %d)", e.message, e.position, e.length)
	if !ansiHighlight || !e.hasPattern {
		return base
	}

	return base + "\n" + e.highlight()
}

func (e *ParsingError) highlight() string {
	runes := []rune(e.pattern)
	start := min(max(e.position, 0), len(runes))
	end := start + min(max(e.length, 0), len(runes)-start)

	var b strings.Builder
	b.Grow(len(e.pattern) + len(highlightStart) + len(highlightEnd))
	b.WriteString(string(runes[:start]))
	b.WriteString(highlightStart)
	b.WriteString(string(runes[start:end]))
	b.WriteString(highlightEnd)
	b.WriteString(string(runes[end:]))
	return b.String()
}
