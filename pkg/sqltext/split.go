package sqltext

import (
	"github.com/nsxbet/sql-uidx/pkg/lexstate"
)

// SplitStatements splits script after every live ";". Each piece keeps its
// delimiter; a trailing piece without one is returned as is. Concatenating
// the pieces gives back script.
func SplitStatements(script string) []string {
	var (
		statements []string
		start      int
	)
	lexstate.Walk(script, ";", func(offset int, live bool) bool {
		if live {
			statements = append(statements, script[start:offset+1])
			start = offset + 1
		}
		return true
	})
	if start < len(script) {
		statements = append(statements, script[start:])
	}
	return statements
}

// SplitTopLevel splits a definition list on commas that are live and not
// nested inside a parenthesis pair. Segments keep their whitespace, so
// joining them with "," gives back text.
func SplitTopLevel(text string) []string {
	nested := MatchParentheses(text)
	var (
		parts []string
		start int
	)
	lexstate.Walk(text, ",", func(offset int, live bool) bool {
		if !live {
			return true
		}
		for _, span := range nested {
			if span.Encloses(offset) {
				return true
			}
		}
		parts = append(parts, text[start:offset])
		start = offset + 1
		return true
	})
	return append(parts, text[start:])
}

// DecomposeFields returns the column and constraint definitions of a CREATE
// TABLE statement together with the outermost span enclosing them.
func DecomposeFields(statement string) ([]string, Span, error) {
	span, err := MatchFirstOutermost(statement)
	if err != nil {
		return nil, Span{}, err
	}
	return SplitTopLevel(span.Interior(statement)), span, nil
}
