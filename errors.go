package toon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	UnknownError     ErrorKind = iota
	SyntaxError                // unterminated quotes, unbalanced brackets, bad escapes
	RangeError                 // declared counts that do not match the items, rows or fields present
	ValidationError            // strict structural rules: blank lines in arrays, values that need quoting, stray lines
	IndentationError           // tabs or widths that are not a multiple of the indent
	DelimiterError             // unsupported or inconsistent delimiters
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "Syntax"
	case RangeError:
		return "Range"
	case ValidationError:
		return "Validation"
	case IndentationError:
		return "Indentation"
	case DelimiterError:
		return "Delimiter"
	default:
		return "Unknown"
	}
}

// Error is returned for every violation detected while decoding. Line and
// Column are 1-based; zero means the position is not known.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Line   int
	Column int
	Source string // offending source line, as read
	Depth  int    // nesting depth of the offending line
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("toon: ")
	b.WriteString(strings.ToLower(e.Kind.String()))
	b.WriteString(" error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// Snippet renders the error together with the offending line and a caret
// under the reported column.
func (e *Error) Snippet() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Msg)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
		b.WriteByte(')')
	}
	if e.Source != "" {
		b.WriteString("\n  > ")
		b.WriteString(e.Source)
		if e.Column > 0 {
			b.WriteString("\n    ")
			b.WriteString(caretPad(e.Source, e.Column-1))
			b.WriteByte('^')
		}
	}
	return b.String()
}

// caretPad keeps tabs from the source so the caret lines up in a terminal.
func caretPad(source string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i < len(source) && source[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// IsKind reports whether err is, or wraps, a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, ln *line, col int, format string, args ...interface{}) *Error {
	e := &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	if ln != nil {
		e.Line = ln.num
		e.Column = col
		e.Source = ln.raw
		e.Depth = ln.depth
	}
	return e
}
