package lexstate

// RemoveComments deletes "--" and "/* */" comments from text. A "--" comment
// is removed up to, but not including, its line break. String literals are
// copied untouched.
func RemoveComments(text string) string {
	out := make([]byte, 0, len(text))
	state := Live
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch state {
		case InSingleLineComment:
			if c == '\r' || c == '\n' {
				state = Live
				out = append(out, c)
			}
		case InMultiLineComment:
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				state = Live
				i++
			}
		case InStringLiteral:
			out = append(out, c)
			if c == '\'' {
				state = Live
			}
		default:
			switch {
			case c == '-' && i+1 < len(text) && text[i+1] == '-':
				state = InSingleLineComment
				i++
			case c == '/' && i+1 < len(text) && text[i+1] == '*':
				state = InMultiLineComment
				i++
			case c == '\'':
				state = InStringLiteral
				out = append(out, c)
			default:
				out = append(out, c)
			}
		}
	}
	return string(out)
}
