package lexstate

import "strings"

// Walk scans text and calls fn for every byte that appears in controls,
// passing its offset and whether it is live. Text between control bytes is
// fed to a fresh Tracker line by line. Walk stops early when fn returns false.
func Walk(text, controls string, fn func(offset int, live bool) bool) {
	t := New()
	last := 0
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(controls, text[i]) < 0 {
			continue
		}
		t.Feed(text[last:i])
		last = i
		if !fn(i, t.IsLive()) {
			return
		}
	}
}

// LiveAt reports whether offset in text is live SQL.
func LiveAt(text string, offset int) bool {
	if offset > len(text) {
		offset = len(text)
	}
	t := New()
	t.Feed(text[:offset])
	return t.IsLive()
}

// IndexLive returns the offset of the first live occurrence of the byte c in
// text, or -1.
func IndexLive(text string, c byte) int {
	found := -1
	Walk(text, string(c), func(offset int, live bool) bool {
		if live {
			found = offset
			return false
		}
		return true
	})
	return found
}
