// Package sqltext splits SQL text on structural delimiters that are live SQL:
// statements on ";", parenthesis pairs, and definition lists on top-level ",".
package sqltext

import (
	"github.com/nsxbet/sql-uidx/pkg/lexstate"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

// Span is a matched parenthesis pair. Start and End are the offsets of "("
// and ")" in the scanned text.
type Span struct {
	Start int
	End   int
}

// Interior returns the text strictly between the parentheses.
func (s Span) Interior(text string) string {
	return text[s.Start+1 : s.End]
}

// Encloses reports whether offset lies strictly inside the pair.
func (s Span) Encloses(offset int) bool {
	return s.Start < offset && offset < s.End
}

// MatchParentheses returns every matched pair of live parentheses in text,
// in the order their closing parenthesis appears. Unmatched ")" are ignored.
func MatchParentheses(text string) []Span {
	var (
		stack []int
		spans []Span
	)
	lexstate.Walk(text, "()", func(offset int, live bool) bool {
		if !live {
			return true
		}
		if text[offset] == '(' {
			stack = append(stack, offset)
			return true
		}
		if n := len(stack); n > 0 {
			spans = append(spans, Span{Start: stack[n-1], End: offset})
			stack = stack[:n-1]
		}
		return true
	})
	return spans
}

// MatchFirstOutermost returns the pair opened by the first live "(" in text.
// It fails with a *types.SyntaxError when there is no live "(" or when that
// parenthesis is never closed.
func MatchFirstOutermost(text string) (Span, error) {
	first := lexstate.IndexLive(text, '(')
	if first < 0 {
		return Span{}, types.NewSyntaxError(text, len(text), "no opening parenthesis found")
	}
	for _, span := range MatchParentheses(text) {
		if span.Start == first {
			return span, nil
		}
	}
	return Span{}, types.NewSyntaxError(text, first, "parenthesis is not closed")
}
