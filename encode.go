package toon

import (
	"math"
	"strconv"
	"strings"
)

type encoder struct {
	opts Options
	w    *lineWriter
}

func newEncoder(opts Options) *encoder {
	return &encoder{opts: opts, w: newLineWriter(opts.Indent)}
}

func (e *encoder) encode(v Value) string {
	switch v.typ {
	case TypeObject:
		e.encodeObject(v.obj, 0)
	case TypeArray:
		e.encodeArray("", v.arr, 0, false)
	default:
		return e.encodePrimitive(v)
	}
	return e.w.String()
}

func (e *encoder) encodePrimitive(v Value) string {
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeNumber:
		return encodeNumber(v.s)
	case TypeString:
		if isSafeUnquotedValue(v.s, e.opts.Delimiter) {
			return v.s
		}
		return quoteString(v.s)
	}
	return nullLiteral
}

// encodeNumber writes the number text unchanged when it reads back as the
// same literal. Non-finite sentinels become null and negative zero becomes 0.
func encodeNumber(text string) string {
	switch text {
	case nanText, posInfText, negInfText:
		return nullLiteral
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nullLiteral
	}
	if f == 0 && math.Signbit(f) {
		return "0"
	}
	if isNumericLiteral(text) {
		return text
	}
	return formatFloat(f)
}

func encodeKey(key string) string {
	if isValidUnquotedKey(key) {
		return key
	}
	return quoteString(key)
}

// formatHeader renders [#N|]{f1|f2}: with prefix being the encoded key or "".
func (e *encoder) formatHeader(prefix string, n int, fields []string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('[')
	if e.opts.LengthMarker {
		b.WriteByte('#')
	}
	b.WriteString(strconv.Itoa(n))
	if e.opts.Delimiter != Comma {
		b.WriteByte(byte(e.opts.Delimiter))
	}
	b.WriteByte(']')
	if len(fields) > 0 {
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(byte(e.opts.Delimiter))
			}
			b.WriteString(encodeKey(f))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}

func (e *encoder) encodeObject(o *Object, depth int) {
	for _, f := range o.Fields() {
		e.encodeField(f.Key, f.Value, depth)
	}
}

func (e *encoder) encodeField(key string, v Value, depth int) {
	ek := encodeKey(key)
	switch v.typ {
	case TypeObject:
		e.w.push(depth, ek+":")
		e.encodeObject(v.obj, depth+1)
	case TypeArray:
		e.encodeArray(ek, v.arr, depth, false)
	default:
		e.w.push(depth, ek+": "+e.encodePrimitive(v))
	}
}

// arrayForm is the rendering chosen for one array.
type arrayForm int

const (
	formEmpty arrayForm = iota
	formInline
	formArrays
	formTabular
	formList
)

// classifyArray picks the first form that fits, in priority order. For
// formTabular the shared field names are returned too.
func classifyArray(items []Value) (arrayForm, []string) {
	if len(items) == 0 {
		return formEmpty, nil
	}
	if isPrimitiveArray(items) {
		return formInline, nil
	}
	if isArrayOfPrimitiveArrays(items) {
		return formArrays, nil
	}
	if fields := tabularFields(items); fields != nil {
		return formTabular, fields
	}
	return formList, nil
}

func isPrimitiveArray(items []Value) bool {
	for _, item := range items {
		if !item.IsPrimitive() {
			return false
		}
	}
	return true
}

func isArrayOfPrimitiveArrays(items []Value) bool {
	for _, item := range items {
		if item.typ != TypeArray || !isPrimitiveArray(item.arr) {
			return false
		}
	}
	return true
}

// tabularFields returns the key order shared by every element, or nil when
// the elements are not all objects with the same keys in the same order and
// only scalar values.
func tabularFields(items []Value) []string {
	first := items[0]
	if first.typ != TypeObject || first.obj.Len() == 0 {
		return nil
	}
	fields := first.obj.Keys()
	for _, item := range items {
		if item.typ != TypeObject || item.obj.Len() != len(fields) {
			return nil
		}
		for i, f := range item.obj.Fields() {
			if f.Key != fields[i] || !f.Value.IsPrimitive() {
				return nil
			}
		}
	}
	return fields
}

// encodeArray writes the header at depth, on a dash line when asItem is set,
// and the body one level deeper.
func (e *encoder) encodeArray(prefix string, items []Value, depth int, asItem bool) {
	head := func(content string) {
		if asItem {
			e.w.pushListItem(depth, content)
		} else {
			e.w.push(depth, content)
		}
	}

	form, fields := classifyArray(items)
	switch form {
	case formEmpty:
		head(e.formatHeader(prefix, 0, nil))
	case formInline:
		head(e.inlineArray(prefix, items))
	case formArrays:
		head(e.formatHeader(prefix, len(items), nil))
		for _, item := range items {
			e.w.pushListItem(depth+1, e.inlineArray("", item.arr))
		}
	case formTabular:
		head(e.formatHeader(prefix, len(items), fields))
		for _, item := range items {
			e.w.push(depth+1, e.joinPrimitives(fieldValues(item.obj)))
		}
	case formList:
		head(e.formatHeader(prefix, len(items), nil))
		for _, item := range items {
			e.encodeListItem(item, depth+1)
		}
	}
}

func (e *encoder) inlineArray(prefix string, items []Value) string {
	header := e.formatHeader(prefix, len(items), nil)
	if len(items) == 0 {
		return header
	}
	return header + " " + e.joinPrimitives(items)
}

func (e *encoder) joinPrimitives(items []Value) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte(byte(e.opts.Delimiter))
		}
		b.WriteString(e.encodePrimitive(item))
	}
	return b.String()
}

func fieldValues(o *Object) []Value {
	fields := o.Fields()
	values := make([]Value, len(fields))
	for i, f := range fields {
		values[i] = f.Value
	}
	return values
}

// encodeListItem writes one element of a list-form array at depth. An
// object's first field shares the dash line; the rest sit one level deeper.
func (e *encoder) encodeListItem(v Value, depth int) {
	switch v.typ {
	case TypeArray:
		e.encodeArray("", v.arr, depth, true)
	case TypeObject:
		fields := v.obj.Fields()
		if len(fields) == 0 {
			e.w.pushListItem(depth, "")
			return
		}
		first := fields[0]
		ek := encodeKey(first.Key)
		switch first.Value.typ {
		case TypeObject:
			e.w.pushListItem(depth, ek+":")
			e.encodeObject(first.Value.obj, depth+2)
		case TypeArray:
			e.encodeArray(ek, first.Value.arr, depth, true)
		default:
			e.w.pushListItem(depth, ek+": "+e.encodePrimitive(first.Value))
		}
		for _, f := range fields[1:] {
			e.encodeField(f.Key, f.Value, depth+1)
		}
	default:
		e.w.pushListItem(depth, e.encodePrimitive(v))
	}
}
