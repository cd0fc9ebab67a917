// Package constraint finds UNIQUE constraints in CREATE TABLE statements and
// removes them from the statement text.
package constraint

import (
	"strings"

	"github.com/nsxbet/sql-uidx/pkg/lexstate"
	"github.com/nsxbet/sql-uidx/pkg/sqltext"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

const keyword = "UNIQUE"

// Kind classifies a field definition.
type Kind int

const (
	NotUnique Kind = iota
	SingleColumn
	Composite
)

func (k Kind) String() string {
	switch k {
	case SingleColumn:
		return "single-column"
	case Composite:
		return "composite"
	default:
		return "not-unique"
	}
}

// Classification is the result of Classify.
type Classification struct {
	Kind Kind
	// Columns covered by the constraint, in declaration order without
	// duplicates.
	Columns []string
	// Keyword is the offset of UNIQUE in the definition, or -1.
	Keyword int
}

// Classify looks for a live, boundary-delimited UNIQUE keyword in a column or
// table constraint definition. "UNIQUE (a, b)" is Composite; a UNIQUE that is
// not followed by "(" belongs to the column named by the first token of the
// definition.
//
// It fails with a *types.SyntaxError when a composite declaration has no
// closing parenthesis or no columns.
func Classify(definition string) (Classification, error) {
	k := findKeyword(definition)
	if k < 0 {
		return Classification{Kind: NotUnique, Keyword: -1}, nil
	}

	rest := strings.TrimLeft(definition[k+len(keyword):], " \t\r\n")
	if !strings.HasPrefix(rest, "(") {
		fields := strings.Fields(lexstate.RemoveComments(definition))
		return Classification{Kind: SingleColumn, Columns: fields[:1], Keyword: k}, nil
	}

	open := len(definition) - len(rest)
	var span *sqltext.Span
	for _, s := range sqltext.MatchParentheses(definition) {
		if s.Start == open {
			span = &s
			break
		}
	}
	if span == nil {
		return Classification{}, types.NewSyntaxError(definition, open, "UNIQUE column list is not closed")
	}

	var columns []string
	seen := make(map[string]bool)
	for _, token := range sqltext.SplitTopLevel(span.Interior(definition)) {
		column := strings.TrimSpace(lexstate.RemoveComments(token))
		if column == "" || seen[column] {
			continue
		}
		seen[column] = true
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		return Classification{}, types.NewSyntaxError(definition, open, "UNIQUE column list is empty")
	}
	return Classification{Kind: Composite, Columns: columns, Keyword: k}, nil
}

// findKeyword returns the offset of the first UNIQUE that is live and
// delimited on both sides, or -1.
func findKeyword(s string) int {
	for i := 0; i+len(keyword) <= len(s); i++ {
		if !hasKeywordAt(s, i) {
			continue
		}
		if i > 0 && !isSpace(s[i-1]) {
			continue
		}
		if end := i + len(keyword); end < len(s) && !isSpace(s[end]) && s[end] != '(' {
			continue
		}
		if lexstate.LiveAt(s, i) {
			return i
		}
	}
	return -1
}

func hasKeywordAt(s string, i int) bool {
	for j := 0; j < len(keyword); j++ {
		c := s[i+j]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != keyword[j] {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
