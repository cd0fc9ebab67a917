package sqltext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

func TestMatchParentheses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{name: "none", text: "abc", want: nil},
		{name: "single", text: "(a)", want: []Span{{0, 2}}},
		{name: "nested", text: "(a(b))", want: []Span{{2, 4}, {0, 5}}},
		{name: "siblings", text: "(a)(b)", want: []Span{{0, 2}, {3, 5}}},
		{name: "paren in literal", text: "(')')", want: []Span{{0, 4}}},
		{name: "paren in dash comment", text: "( -- )\n)", want: []Span{{0, 7}}},
		{name: "paren in block comment", text: "(/*(*/)", want: []Span{{0, 6}}},
		{name: "unmatched close ignored", text: ")(a))", want: []Span{{1, 3}}},
		{name: "unmatched open", text: "((a)", want: []Span{{1, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, MatchParentheses(tt.text)); diff != "" {
				t.Errorf("MatchParentheses() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchFirstOutermost(t *testing.T) {
	text := "CREATE TABLE t (a varchar(10), b int) WITH (fillfactor=70);"
	span, err := MatchFirstOutermost(text)
	require.NoError(t, err)
	assert.Equal(t, "a varchar(10), b int", span.Interior(text))

	_, err = MatchFirstOutermost("CREATE TABLE t AS SELECT 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSyntax))

	_, err = MatchFirstOutermost("CREATE TABLE t (a varchar(10)")
	require.Error(t, err)
	var syntaxErr *types.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 15, syntaxErr.Offset)

	_, err = MatchFirstOutermost("CREATE TABLE t -- (\n")
	assert.True(t, errors.Is(err, types.ErrSyntax))
}

func TestSpanEncloses(t *testing.T) {
	s := Span{Start: 2, End: 5}
	assert.False(t, s.Encloses(2))
	assert.True(t, s.Encloses(3))
	assert.False(t, s.Encloses(5))
}
