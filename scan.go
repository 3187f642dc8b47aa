package toon

import "strings"

// line is one non-blank input line.
type line struct {
	num     int    // 1-based line number
	raw     string // line as read, without the line terminator
	indent  int    // indentation width in spaces
	depth   int
	content string // line with indentation and trailing spaces removed
}

// col converts a byte offset within content to a 1-based column of raw.
func (l *line) col(off int) int {
	return l.indent + off + 1
}

// scanned is the input split into lines, with blank lines tracked apart.
type scanned struct {
	lines  []line
	blanks []int
}

// scan splits text into lines and measures indentation. In strict mode a tab
// in the indentation or a width that is not a multiple of indentSize is an
// error; otherwise a tab counts as one level.
func scan(text string, indentSize int, strict bool) (*scanned, error) {
	s := &scanned{}
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			s.blanks = append(s.blanks, i+1)
			continue
		}

		ln := line{num: i + 1, raw: raw}
		width, n := 0, 0
	indent:
		for ; n < len(raw); n++ {
			switch raw[n] {
			case ' ':
				width++
			case '\t':
				if strict {
					ln.indent = n
					return nil, newError(IndentationError, &ln, n+1, "tab character in indentation")
				}
				width += indentSize
			default:
				break indent
			}
		}
		ln.indent = n
		ln.depth = width / indentSize
		ln.content = strings.TrimRight(raw[n:], " ")
		if strict && width%indentSize != 0 {
			return nil, newError(IndentationError, &ln, n+1,
				"indentation of %d spaces is not a multiple of %d", width, indentSize)
		}
		s.lines = append(s.lines, ln)
	}
	return s, nil
}

// blankBetween returns the first blank line strictly between lines from and
// to, or 0.
func (s *scanned) blankBetween(from, to int) int {
	for _, b := range s.blanks {
		if b > from && b < to {
			return b
		}
	}
	return 0
}
