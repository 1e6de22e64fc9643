package colors

import "strings"

// escapeSpan returns the end (exclusive) of the escape sequence starting at
// start. A sequence without a terminator runs to the end of text.
func escapeSpan(text string, start int) int {
	end := strings.IndexByte(text[start+1:], ESCAPE_TERMINATOR)
	if end < 0 {
		return len(text)
	}
	return start + 1 + end + 1
}

// CountEscapeBytes returns the number of bytes taken by escape sequences in
// text. A sequence starts at the introducer byte and ends at the next 'm'
// inclusive; sequences are scanned left to right and never overlap. An
// unterminated sequence counts up to the end of text.
func CountEscapeBytes(text string) int {
	count := 0
	pos := strings.IndexByte(text, ESCAPE_INTRODUCER)
	for pos >= 0 {
		end := escapeSpan(text, pos)
		count += end - pos
		next := strings.IndexByte(text[end:], ESCAPE_INTRODUCER)
		if next < 0 {
			break
		}
		pos = end + next
	}
	return count
}

// StripEscapes removes every escape sequence (as defined by
// CountEscapeBytes) from text and keeps all other bytes in order. Text
// without an introducer byte is returned as is.
func StripEscapes(text string) string {
	pos := strings.IndexByte(text, ESCAPE_INTRODUCER)
	if pos < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) - CountEscapeBytes(text))
	prev := 0
	for pos >= 0 {
		b.WriteString(text[prev:pos])
		prev = escapeSpan(text, pos)
		next := strings.IndexByte(text[prev:], ESCAPE_INTRODUCER)
		if next < 0 {
			break
		}
		pos = prev + next
	}
	b.WriteString(text[prev:])
	return b.String()
}
