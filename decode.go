package toon

import (
	"errors"
	"strconv"
	"strings"
)

type decoder struct {
	opts   Options
	strict bool
	doc    *scanned
	pos    int
	lines  []line
}

func newDecoder(opts Options) *decoder {
	return &decoder{opts: opts, strict: !opts.Lenient}
}

// header is a parsed array header: key[#N|]{fields}: rest
type header struct {
	key      string
	keyed    bool
	n        int
	delim    Delimiter
	fields   []string
	rest     string
	restOff  int // offset of rest within the line content
	countOff int // offset of '['
	line     *line
}

// position locates one parsed element for error reporting.
type position struct {
	line *line
	off  int
}

func (d *decoder) decode(data string) (Value, error) {
	doc, err := scan(data, d.opts.Indent, d.strict)
	if err != nil {
		return Value{}, err
	}
	d.doc, d.lines, d.pos = doc, doc.lines, 0
	if len(d.lines) == 0 {
		return ObjectValue(nil), nil
	}

	first := &d.lines[0]
	if d.strict && first.depth > 0 {
		return Value{}, newError(IndentationError, first, first.col(0), "root value must not be indented")
	}
	depth := first.depth

	var v Value
	switch {
	case strings.HasPrefix(first.content, "["):
		h, err := d.parseHeader(first, first.content, 0)
		if err != nil {
			return Value{}, err
		}
		d.pos = 1
		if v, err = d.parseArray(h, depth+1); err != nil {
			return Value{}, err
		}
	case len(d.lines) == 1 && findUnquoted(first.content, ':', 0) < 0:
		d.pos = 1
		if v, err = d.parseToken(first, span{text: first.content}, d.opts.Delimiter); err != nil {
			return Value{}, err
		}
	default:
		obj := NewObject()
		if err := d.parseFields(obj, depth); err != nil {
			return Value{}, err
		}
		v = ObjectValue(obj)
	}

	if d.pos < len(d.lines) {
		ln := &d.lines[d.pos]
		if ln.depth > depth {
			return Value{}, d.unexpectedIndent(ln)
		}
		return Value{}, newError(ValidationError, ln, ln.col(0), "unexpected content after the root value")
	}
	return v, nil
}

func (d *decoder) unexpectedIndent(ln *line) error {
	return newError(ValidationError, ln, ln.col(0), "unexpected indentation at depth %d", ln.depth)
}

// escapeErr turns an escapeError found in text starting at base into a
// positioned syntax error.
func (d *decoder) escapeErr(ln *line, base int, err error) error {
	var ee *escapeError
	if errors.As(err, &ee) {
		return newError(SyntaxError, ln, ln.col(base+ee.Off), "%s", ee.Msg)
	}
	return newError(SyntaxError, ln, ln.col(base), "%v", err)
}

// parseFields reads key lines at depth into obj until a shallower line.
func (d *decoder) parseFields(obj *Object, depth int) error {
	for d.pos < len(d.lines) {
		ln := &d.lines[d.pos]
		if ln.depth < depth {
			return nil
		}
		if ln.depth > depth {
			return d.unexpectedIndent(ln)
		}
		d.pos++
		if err := d.parseField(obj, ln, ln.content, 0, depth, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// parseField reads one "key: value" or "key[N]...:" starting at text, which
// sits at offset off of ln's content. Array bodies go one level below depth;
// a nested object body goes at objDepth.
func (d *decoder) parseField(obj *Object, ln *line, text string, off, depth, objDepth int) error {
	h, err := d.parseHeader(ln, text, off)
	if err != nil {
		return err
	}
	if h != nil {
		if !h.keyed {
			return newError(SyntaxError, ln, ln.col(off), "array header inside an object needs a key")
		}
		v, err := d.parseArray(h, depth+1)
		if err != nil {
			return err
		}
		obj.Set(h.key, v)
		return nil
	}

	key, after, err := d.parseKey(ln, text, off)
	if err != nil {
		return err
	}
	rest := strings.TrimLeft(text[after:], " ")
	restOff := off + len(text) - len(rest)

	switch {
	case rest == "":
		child := NewObject()
		if d.pos < len(d.lines) && d.lines[d.pos].depth >= objDepth {
			if err := d.parseFields(child, objDepth); err != nil {
				return err
			}
		}
		obj.Set(key, ObjectValue(child))
	case rest[0] == '[':
		h, err := d.parseHeader(ln, rest, restOff)
		if err != nil {
			return err
		}
		v, err := d.parseArray(h, depth+1)
		if err != nil {
			return err
		}
		obj.Set(key, v)
	default:
		v, err := d.parseToken(ln, span{text: rest, off: restOff}, d.opts.Delimiter)
		if err != nil {
			return err
		}
		obj.Set(key, v)
	}
	return nil
}

// parseKey returns the key and the index in text just past its colon.
func (d *decoder) parseKey(ln *line, text string, off int) (string, int, error) {
	if strings.HasPrefix(text, `"`) {
		end := findClosingQuote(text, 0)
		if end < 0 {
			return "", 0, newError(SyntaxError, ln, ln.col(off), "unterminated quoted key")
		}
		key, err := unescapeString(text[1:end])
		if err != nil {
			return "", 0, d.escapeErr(ln, off+1, err)
		}
		i := end + 1
		for i < len(text) && text[i] == ' ' {
			i++
		}
		if i >= len(text) || text[i] != ':' {
			return "", 0, newError(SyntaxError, ln, ln.col(off+i), "missing colon after key")
		}
		return key, i + 1, nil
	}

	colon := strings.IndexByte(text, ':')
	if colon < 0 {
		return "", 0, newError(SyntaxError, ln, ln.col(off), "missing colon after key")
	}
	key := strings.TrimSpace(text[:colon])
	if key == "" {
		return "", 0, newError(SyntaxError, ln, ln.col(off), "missing key before colon")
	}
	return key, colon + 1, nil
}

// parseHeader recognises an array header at the start of text. It returns
// nil without error when text is not a header.
func (d *decoder) parseHeader(ln *line, text string, off int) (*header, error) {
	h := &header{line: ln, delim: Comma}

	var br int
	if strings.HasPrefix(text, `"`) {
		end := findClosingQuote(text, 0)
		if end < 0 || end+1 >= len(text) || text[end+1] != '[' {
			return nil, nil
		}
		key, err := unescapeString(text[1:end])
		if err != nil {
			return nil, d.escapeErr(ln, off+1, err)
		}
		h.key, h.keyed, br = key, true, end+1
	} else {
		br = strings.IndexByte(text, '[')
		colon := strings.IndexByte(text, ':')
		if br < 0 || (colon >= 0 && colon < br) {
			return nil, nil
		}
		h.key = strings.TrimSpace(text[:br])
		h.keyed = h.key != ""
	}
	h.countOff = off + br

	end := strings.IndexByte(text[br:], ']')
	if end < 0 {
		return nil, newError(SyntaxError, ln, ln.col(off+br), "unterminated array header: missing ']'")
	}
	end += br

	inner := text[br+1 : end]
	innerOff := br + 1
	if strings.HasPrefix(inner, "#") {
		inner, innerOff = inner[1:], innerOff+1
	}
	digits := 0
	for digits < len(inner) && inner[digits] >= '0' && inner[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return nil, newError(SyntaxError, ln, ln.col(off+innerOff), "invalid array length %q", text[br:end+1])
	}
	n, err := strconv.Atoi(inner[:digits])
	if err != nil {
		return nil, newError(SyntaxError, ln, ln.col(off+innerOff), "invalid array length %q", inner[:digits])
	}
	h.n = n

	switch suffix := inner[digits:]; len(suffix) {
	case 0:
	case 1:
		delim := Delimiter(suffix[0])
		if !delim.valid() {
			return nil, newError(DelimiterError, ln, ln.col(off+innerOff+digits), "unsupported delimiter %q in array header", suffix)
		}
		h.delim = delim
	default:
		return nil, newError(SyntaxError, ln, ln.col(off+innerOff+digits), "invalid array header %q", text[br:end+1])
	}

	i := end + 1
	if i < len(text) && text[i] == '{' {
		closeBrace := findUnquoted(text, '}', i+1)
		if closeBrace < 0 {
			return nil, newError(SyntaxError, ln, ln.col(off+i), "unterminated field list: missing '}'")
		}
		fields, err := d.parseFieldNames(ln, text[i+1:closeBrace], off+i+1, h.delim)
		if err != nil {
			return nil, err
		}
		h.fields = fields
		i = closeBrace + 1
	}

	if i >= len(text) || text[i] != ':' {
		return nil, newError(SyntaxError, ln, ln.col(off+i), "missing colon after array header")
	}
	rest := text[i+1:]
	h.rest = strings.TrimLeft(rest, " ")
	h.restOff = off + i + 1 + len(rest) - len(h.rest)
	return h, nil
}

// parseFieldNames splits a tabular field list. Another supported delimiter
// outside quotes means the list disagrees with the bracket.
func (d *decoder) parseFieldNames(ln *line, s string, off int, delim Delimiter) ([]string, error) {
	for _, other := range []Delimiter{Comma, Tab, Pipe} {
		if other == delim {
			continue
		}
		if i := findUnquoted(s, byte(other), 0); i >= 0 {
			return nil, newError(DelimiterError, ln, ln.col(off+i),
				"field list is separated by %s but the header declares %s", other, delim)
		}
	}

	spans, err := splitDelimited(s, byte(delim))
	if err != nil {
		return nil, d.escapeErr(ln, off, err)
	}
	names := make([]string, 0, len(spans))
	for _, sp := range spans {
		sp.off += off
		sp = trimSpan(sp)
		switch {
		case sp.text == "":
			return nil, newError(SyntaxError, ln, ln.col(sp.off), "empty field name")
		case sp.text[0] == '"':
			name, err := d.unquote(ln, sp)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		default:
			names = append(names, sp.text)
		}
	}
	return names, nil
}

func (d *decoder) parseArray(h *header, bodyDepth int) (Value, error) {
	if h.fields != nil {
		return d.parseTabular(h, bodyDepth)
	}

	items := []Value{}
	var pos []position
	if h.rest != "" {
		spans, err := splitDelimited(h.rest, byte(h.delim))
		if err != nil {
			return Value{}, d.escapeErr(h.line, h.restOff, err)
		}
		for _, sp := range spans {
			sp.off += h.restOff
			sp = trimSpan(sp)
			v, err := d.parseToken(h.line, sp, h.delim)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
			pos = append(pos, position{line: h.line, off: sp.off})
		}
	}

	for d.pos < len(d.lines) {
		ln := &d.lines[d.pos]
		if ln.depth > bodyDepth {
			return Value{}, d.unexpectedIndent(ln)
		}
		if ln.depth != bodyDepth || !isListItem(ln.content) {
			break
		}
		d.pos++
		v, err := d.parseListItem(ln, bodyDepth, h.delim)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		pos = append(pos, position{line: ln})
	}

	if err := d.checkArray(h, pos, "items"); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func (d *decoder) parseTabular(h *header, bodyDepth int) (Value, error) {
	if h.rest != "" {
		return Value{}, newError(ValidationError, h.line, h.line.col(h.restOff), "unexpected content after tabular header")
	}

	rows := []Value{}
	var pos []position
	for d.pos < len(d.lines) {
		ln := &d.lines[d.pos]
		if ln.depth > bodyDepth {
			return Value{}, d.unexpectedIndent(ln)
		}
		if ln.depth != bodyDepth || !isTabularRow(ln.content, h.delim) {
			break
		}
		d.pos++
		row, err := d.parseRow(h, ln)
		if err != nil {
			return Value{}, err
		}
		rows = append(rows, row)
		pos = append(pos, position{line: ln})
	}

	if err := d.checkArray(h, pos, "rows"); err != nil {
		return Value{}, err
	}
	return Array(rows...), nil
}

func (d *decoder) parseRow(h *header, ln *line) (Value, error) {
	spans, err := splitDelimited(ln.content, byte(h.delim))
	if err != nil {
		return Value{}, d.escapeErr(ln, 0, err)
	}
	if d.strict && len(spans) != len(h.fields) {
		return Value{}, newError(RangeError, ln, ln.col(0),
			"row has %d fields, header declares %d", len(spans), len(h.fields))
	}

	obj := NewObject()
	for i, name := range h.fields {
		v := Null()
		if i < len(spans) {
			if v, err = d.parseToken(ln, trimSpan(spans[i]), h.delim); err != nil {
				return Value{}, err
			}
		}
		obj.Set(name, v)
	}
	return ObjectValue(obj), nil
}

// checkArray enforces the strict rules for a finished array body: no blank
// lines inside it and exactly the declared number of elements.
func (d *decoder) checkArray(h *header, pos []position, noun string) error {
	if !d.strict {
		return nil
	}
	if d.pos > 0 {
		last := d.lines[d.pos-1].num
		if b := d.doc.blankBetween(h.line.num, last); b != 0 {
			return newError(ValidationError, &line{num: b, depth: h.line.depth + 1}, 1, "blank line inside array")
		}
	}
	if len(pos) == h.n {
		return nil
	}
	if len(pos) > h.n {
		p := pos[h.n]
		return newError(RangeError, p.line, p.line.col(p.off),
			"array declares %d %s, found %d", h.n, noun, len(pos))
	}
	return newError(RangeError, h.line, h.line.col(h.countOff),
		"array declares %d %s, found %d", h.n, noun, len(pos))
}

func isListItem(content string) bool {
	return content == "-" || strings.HasPrefix(content, listItemPrefix)
}

// isTabularRow tells rows apart from key lines that follow a table at the
// same depth: a row has no unquoted colon, or its first delimiter comes
// before that colon and no header bracket does.
func isTabularRow(content string, delim Delimiter) bool {
	if isListItem(content) {
		return false
	}
	colon := findUnquoted(content, ':', 0)
	if colon < 0 {
		return true
	}
	if br := findUnquoted(content, '[', 0); br >= 0 && br < colon {
		return false
	}
	i := findUnquoted(content, byte(delim), 0)
	return i >= 0 && i < colon
}

// parseListItem reads one "- ..." line at depth. An object item keeps its
// first field on the dash line and the others one level deeper.
func (d *decoder) parseListItem(ln *line, depth int, delim Delimiter) (Value, error) {
	if ln.content == "-" {
		return ObjectValue(nil), nil
	}
	text := strings.TrimLeft(ln.content[len(listItemPrefix):], " ")
	off := len(ln.content) - len(text)

	if strings.HasPrefix(text, "[") {
		h, err := d.parseHeader(ln, text, off)
		if err != nil {
			return Value{}, err
		}
		return d.parseArray(h, depth+1)
	}

	if findUnquoted(text, ':', 0) >= 0 {
		obj := NewObject()
		if err := d.parseField(obj, ln, text, off, depth, depth+2); err != nil {
			return Value{}, err
		}
		if err := d.parseFields(obj, depth+1); err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	}

	return d.parseToken(ln, span{text: text, off: off}, delim)
}

// parseToken classifies a trimmed scalar token: quoted string, boolean or
// null, number, then bare string. Strict mode rejects bare strings that the
// encoder would have quoted.
func (d *decoder) parseToken(ln *line, sp span, delim Delimiter) (Value, error) {
	t := sp.text
	switch {
	case t == "":
		if d.strict {
			return Value{}, newError(ValidationError, ln, ln.col(sp.off), "empty value must be quoted")
		}
		return String(""), nil
	case t[0] == '"':
		s, err := d.unquote(ln, sp)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case t == nullLiteral:
		return Null(), nil
	case t == trueLiteral:
		return Bool(true), nil
	case t == falseLiteral:
		return Bool(false), nil
	case isNumericLiteral(t):
		return Value{typ: TypeNumber, s: t}, nil
	}
	if d.strict && !isSafeUnquotedValue(t, delim) {
		return Value{}, newError(ValidationError, ln, ln.col(sp.off), "value %q must be quoted", t)
	}
	return String(t), nil
}

// unquote reads a token that must be exactly one quoted string.
func (d *decoder) unquote(ln *line, sp span) (string, error) {
	end := findClosingQuote(sp.text, 0)
	if end < 0 {
		return "", newError(SyntaxError, ln, ln.col(sp.off), "unterminated quoted string")
	}
	if end != len(sp.text)-1 {
		return "", newError(SyntaxError, ln, ln.col(sp.off+end+1), "unexpected characters after closing quote")
	}
	s, err := unescapeString(sp.text[1:end])
	if err != nil {
		return "", d.escapeErr(ln, sp.off+1, err)
	}
	return s, nil
}
