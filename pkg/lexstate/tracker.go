package lexstate

import "strings"

// Tracker is an incremental lexical state machine. Text is fed in fragments
// with Observe; the state after the last fragment is reported by State and
// IsLive.
//
// Observing two adjacent fragments gives the same state as observing their
// concatenation, provided only the last call marks the end of a line. Two
// character tokens ("--", "/*", "*/") split across fragments are handled by
// holding back their first byte.
//
// The zero Tracker is ready to use and starts Live.
type Tracker struct {
	state State
	// first byte of a token that may be completed by the next fragment
	pending byte
}

// New creates a Tracker in the Live state.
func New() *Tracker {
	return &Tracker{}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// IsLive reports whether the cursor is in live SQL.
func (t *Tracker) IsLive() bool {
	return t.state == Live
}

// Reset returns the tracker to the Live state.
func (t *Tracker) Reset() {
	t.state = Live
	t.pending = 0
}

// Observe advances the tracker over fragment. endOfLine marks that the
// fragment finishes a physical line, which closes a "--" comment.
func (t *Tracker) Observe(fragment string, endOfLine bool) {
	s := fragment
	if t.pending != 0 {
		s = string(t.pending) + s
		t.pending = 0
	}

	i := 0
	for i < len(s) {
		switch t.state {
		case InSingleLineComment:
			i = len(s)

		case InMultiLineComment:
			j := strings.Index(s[i:], "*/")
			if j < 0 {
				if s[len(s)-1] == '*' {
					t.pending = '*'
				}
				i = len(s)
				continue
			}
			t.state = Live
			i += j + 2

		case InStringLiteral:
			j := strings.IndexByte(s[i:], '\'')
			if j < 0 {
				i = len(s)
				continue
			}
			t.state = Live
			i += j + 1

		default:
			j, tok := earliestToken(s[i:])
			if j < 0 {
				if last := s[len(s)-1]; last == '-' || last == '/' {
					t.pending = last
				}
				i = len(s)
				continue
			}
			switch tok {
			case "--":
				t.state = InSingleLineComment
				i = len(s)
			case "/*":
				t.state = InMultiLineComment
				i += j + 2
			default:
				t.state = InStringLiteral
				i += j + 1
			}
		}
	}

	if endOfLine {
		t.pending = 0
		if t.state == InSingleLineComment {
			t.state = Live
		}
	}
}

// Feed observes text that may span several lines. CR, LF and CRLF end a
// line; the trailing partial line is observed without end-of-line.
func (t *Tracker) Feed(text string) {
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			t.Observe(text[start:i], true)
			start = i + 1
		case '\r':
			t.Observe(text[start:i], true)
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		t.Observe(text[start:], false)
	}
}

// earliestToken returns the offset and text of the first "--", "/*" or "'"
// in s, or -1 when none occurs.
func earliestToken(s string) (int, string) {
	best, tok := -1, ""
	for _, candidate := range [...]string{"--", "/*", "'"} {
		j := strings.Index(s, candidate)
		if j >= 0 && (best < 0 || j < best) {
			best, tok = j, candidate
		}
	}
	return best, tok
}
