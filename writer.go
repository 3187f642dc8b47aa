package toon

import "strings"

const listItemPrefix = "- "

// lineWriter collects output lines. It belongs to a single encode call.
type lineWriter struct {
	indentSize  int
	indentCache []string
	lines       []string
}

func newLineWriter(indentSize int) *lineWriter {
	return &lineWriter{indentSize: indentSize}
}

func (w *lineWriter) indent(depth int) string {
	for len(w.indentCache) <= depth {
		w.indentCache = append(w.indentCache, strings.Repeat(" ", len(w.indentCache)*w.indentSize))
	}
	return w.indentCache[depth]
}

func (w *lineWriter) push(depth int, content string) {
	w.lines = append(w.lines, w.indent(depth)+content)
}

// pushListItem writes "- content". An empty content writes a bare dash.
func (w *lineWriter) pushListItem(depth int, content string) {
	if content == "" {
		w.push(depth, strings.TrimRight(listItemPrefix, " "))
		return
	}
	w.push(depth, listItemPrefix+content)
}

// String joins the lines with "\n" and no trailing newline.
func (w *lineWriter) String() string {
	return strings.Join(w.lines, "\n")
}
