package lexstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	tests := []struct {
		name      string
		fragment  string
		endOfLine bool
		want      State
	}{
		{name: "plain sql", fragment: "id int,", want: Live},
		{name: "open literal", fragment: "DEFAULT('x", want: InStringLiteral},
		{name: "closed literal", fragment: "DEFAULT('x')", want: Live},
		{name: "doubled quote", fragment: "'it''s'", want: Live},
		{name: "dash comment mid line", fragment: "id int -- note", want: InSingleLineComment},
		{name: "dash comment at end of line", fragment: "id int -- note", endOfLine: true, want: Live},
		{name: "quote inside dash comment", fragment: "-- it's", want: InSingleLineComment},
		{name: "open block comment", fragment: "/* a", want: InMultiLineComment},
		{name: "closed block comment", fragment: "/* a */ b", want: Live},
		{name: "block comment survives end of line", fragment: "/* a", endOfLine: true, want: InMultiLineComment},
		{name: "quote inside block comment", fragment: "/* ' */", want: Live},
		{name: "dashes inside literal", fragment: "'--'", want: Live},
		{name: "comment opener inside literal", fragment: "'/*' x", want: Live},
		{name: "slash star slash is still open", fragment: "/*/", want: InMultiLineComment},
		{name: "many adjacent comments", fragment: "/**//**//**//**/'a'/**/", want: Live},
		{name: "earliest token wins", fragment: "' -- /*", want: InStringLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			tr.Observe(tt.fragment, tt.endOfLine)
			assert.Equal(t, tt.want, tr.State())
			assert.Equal(t, tt.want == Live, tr.IsLive())
		})
	}
}

func TestObserveAcrossLines(t *testing.T) {
	tr := New()
	tr.Observe("id int, -- first", true)
	assert.True(t, tr.IsLive())

	tr.Observe("name text /* multi", true)
	assert.Equal(t, InMultiLineComment, tr.State())

	tr.Observe("still comment", true)
	assert.Equal(t, InMultiLineComment, tr.State())

	tr.Observe("end */ x 'open", true)
	assert.Equal(t, InStringLiteral, tr.State())

	tr.Observe("literal', y", false)
	assert.True(t, tr.IsLive())
}

// Splitting a fragment at any point must not change the resulting state.
func TestObserveSplitInvariant(t *testing.T) {
	fragments := []string{
		"a -- b",
		"a - - b",
		"x /* y */ z",
		"x /* y * / z",
		"'a''b' -- c",
		"/**/'x'--",
		"a/ *b",
		"-'-'-",
		"/*/ */ 'q",
		"DEFAULT(';') , UNIQUE",
	}

	for _, f := range fragments {
		for _, eol := range []bool{false, true} {
			whole := New()
			whole.Observe(f, eol)

			for cut := 0; cut <= len(f); cut++ {
				split := New()
				split.Observe(f[:cut], false)
				split.Observe(f[cut:], eol)
				assert.Equal(t, whole.State(), split.State(), "fragment %q cut at %d eol=%v", f, cut, eol)
			}
		}
	}
}

func TestFeed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want State
	}{
		{name: "comment closed by LF", text: "a -- b\nc", want: Live},
		{name: "comment closed by CR", text: "a -- b\rc", want: Live},
		{name: "comment closed by CRLF", text: "a -- b\r\nc", want: Live},
		{name: "comment on last line", text: "a\nb -- c", want: InSingleLineComment},
		{name: "literal spans lines", text: "'a\nb", want: InStringLiteral},
		{name: "block spans lines", text: "/*\r\n*/", want: Live},
		{name: "dash split by line break", text: "a -\n- b", want: Live},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			tr.Feed(tt.text)
			assert.Equal(t, tt.want, tr.State())
		})
	}
}

func TestReset(t *testing.T) {
	tr := New()
	tr.Observe("'open", false)
	assert.False(t, tr.IsLive())
	tr.Reset()
	assert.True(t, tr.IsLive())
}
