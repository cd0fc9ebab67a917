package types

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when a required input is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSyntax is returned when the DDL text cannot be decomposed.
	ErrSyntax = errors.New("syntax error")
)

// Position is a 1-based line and column inside a script.
type Position struct {
	Line   int32
	Column int32
}

// SyntaxError represents a malformed statement with position information.
// Offset is a byte offset into the text that was being scanned.
type SyntaxError struct {
	Message  string
	Offset   int
	Position *Position
}

// NewSyntaxError creates a SyntaxError at offset of text.
func NewSyntaxError(text string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
		Position: PositionOf(text, offset),
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("syntax error at line %d, column %d: %s",
			e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// PositionOf converts a byte offset to a line/column pair. CR, LF and CRLF
// each count as one line break.
func PositionOf(text string, offset int) *Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line, col := int32(1), int32(1)
	for i := 0; i < offset; i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		case '\n':
			line++
			col = 1
		default:
			col++
		}
	}
	return &Position{Line: line, Column: col}
}
