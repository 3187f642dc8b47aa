package toon

import (
	"fmt"
	"strings"
)

// escapeString escapes backslash, double quote, newline, carriage return and tab.
func escapeString(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func quoteString(s string) string {
	return `"` + escapeString(s) + `"`
}

// escapeError reports a bad escape sequence at byte offset Off of the
// unescaped input.
type escapeError struct {
	Off int
	Msg string
}

func (e *escapeError) Error() string { return e.Msg }

// unescapeString reverses escapeString. Unknown escapes and a trailing
// backslash are errors.
func unescapeString(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", &escapeError{Off: i, Msg: "dangling backslash at end of string"}
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", &escapeError{Off: i - 1, Msg: fmt.Sprintf("invalid escape sequence \\%c", s[i])}
		}
	}
	return b.String(), nil
}

// findClosingQuote returns the index of the quote closing the one at open,
// skipping escaped characters, or -1.
func findClosingQuote(s string, open int) int {
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// findUnquoted returns the index of the first c at or after start that is not
// inside a quoted span, or -1. An unterminated quote hides the rest of s.
func findUnquoted(s string, c byte, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case c:
			return i
		case '"':
			end := findClosingQuote(s, i)
			if end < 0 {
				return -1
			}
			i = end
		}
	}
	return -1
}

// span is a piece of a line together with its byte offset in that line.
type span struct {
	text string
	off  int
}

// splitDelimited splits s on delim outside quoted spans. Pieces are returned
// untrimmed. An unterminated quote yields an escapeError at the quote.
func splitDelimited(s string, delim byte) ([]span, error) {
	var out []span
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case delim:
			out = append(out, span{text: s[start:i], off: start})
			start = i + 1
		case '"':
			end := findClosingQuote(s, i)
			if end < 0 {
				return nil, &escapeError{Off: i, Msg: "unterminated quoted string"}
			}
			i = end
		}
	}
	return append(out, span{text: s[start:], off: start}), nil
}

// trimSpan trims spaces from sp and moves its offset past the leading ones.
func trimSpan(sp span) span {
	lead := len(sp.text) - len(strings.TrimLeft(sp.text, " "))
	return span{text: strings.TrimRight(sp.text[lead:], " "), off: sp.off + lead}
}
