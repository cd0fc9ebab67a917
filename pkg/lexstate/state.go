// Package lexstate tracks whether a scan position in SQL text is live SQL,
// inside a comment, or inside a string literal.
//
// Every component that looks for a delimiter (statement splitter, parenthesis
// matcher, field decomposer, keyword detector) asks the same Tracker, so they
// all agree on what is live.
package lexstate

// State is the lexical state at a scan cursor.
type State int

const (
	// Live is SQL text with syntactic meaning.
	Live State = iota
	// InSingleLineComment is inside a "--" comment; it ends with the line.
	InSingleLineComment
	// InMultiLineComment is inside a "/* ... */" comment.
	InMultiLineComment
	// InStringLiteral is inside a '...' literal. There are no escape sequences.
	InStringLiteral
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case InSingleLineComment:
		return "single-line-comment"
	case InMultiLineComment:
		return "multi-line-comment"
	case InStringLiteral:
		return "string-literal"
	default:
		return "unknown"
	}
}
