package toon

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var jsonNumberRegex = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

// FromJSON converts a JSON document to a Value, keeping object key order and
// number text.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	r := &jsonReader{data: data, dec: dec}

	v, err := r.value(0)
	if err == nil {
		err = r.finish()
	}
	if err != nil {
		return Value{}, fmt.Errorf("toon: invalid JSON: %w", err)
	}
	return v, nil
}

// jsonReader walks the decoder's token stream in one pass. The decoder
// skips ',' and ':' without checking them, so the reader follows along in
// data and checks the bytes between tokens itself.
type jsonReader struct {
	data []byte
	dec  *json.Decoder
	pos  int // offset in data just past the last token
}

// token reads the next token, which must be preceded by exactly the
// separator sep, or by nothing but whitespace when sep is 0.
func (r *jsonReader) token(sep byte) (json.Token, error) {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	i, seen := r.pos, false
	for ; i < len(r.data); i++ {
		c := r.data[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if c != ',' && c != ':' {
			break
		}
		if c != sep || seen {
			return nil, fmt.Errorf("unexpected %q at offset %d", c, i)
		}
		seen = true
	}
	if sep != 0 && !seen {
		return nil, fmt.Errorf("missing %q before offset %d", sep, i)
	}
	r.pos = i + rawTokenLen(r.data[i:], tok)
	return tok, nil
}

// rawTokenLen is the width of tok as written at the start of b.
func rawTokenLen(b []byte, tok json.Token) int {
	switch t := tok.(type) {
	case nil:
		return len(nullLiteral)
	case bool:
		if t {
			return len(trueLiteral)
		}
		return len(falseLiteral)
	case json.Number:
		return len(t)
	case string:
		for i := 1; i < len(b); i++ {
			switch b[i] {
			case '\\':
				i++
			case '"':
				return i + 1
			}
		}
		return len(b)
	}
	return 1
}

func (r *jsonReader) value(sep byte) (Value, error) {
	tok, err := r.token(sep)
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if !jsonNumberRegex.MatchString(string(t)) {
			return Value{}, fmt.Errorf("invalid number %q before offset %d", string(t), r.pos)
		}
		// The token shares the decoder's buffer.
		return Value{typ: TypeNumber, s: strings.Clone(string(t))}, nil
	case json.Delim:
		switch t {
		case '{':
			return r.object()
		case '[':
			return r.array()
		}
	}
	return Value{}, fmt.Errorf("unexpected %v before offset %d", tok, r.pos)
}

func (r *jsonReader) object() (Value, error) {
	obj := NewObject()
	var sep byte
	for r.dec.More() {
		kt, err := r.token(sep)
		if err != nil {
			return Value{}, err
		}
		key, ok := kt.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key %v before offset %d is not a string", kt, r.pos)
		}
		v, err := r.value(':')
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
		sep = ','
	}
	if err := r.close('}'); err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

func (r *jsonReader) array() (Value, error) {
	items := []Value{}
	var sep byte
	for r.dec.More() {
		v, err := r.value(sep)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		sep = ','
	}
	if err := r.close(']'); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func (r *jsonReader) close(want json.Delim) error {
	tok, err := r.token(0)
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v before offset %d, found %v", want, r.pos, tok)
	}
	return nil
}

// finish rejects anything but whitespace after the top-level value.
func (r *jsonReader) finish() error {
	for i := r.pos; i < len(r.data); i++ {
		switch r.data[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return fmt.Errorf("unexpected %q after top-level value at offset %d", r.data[i], i)
		}
	}
	return nil
}

// ToJSON renders v as compact JSON. Non-finite numbers become null and number
// text that JSON cannot carry is rewritten in canonical form.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSONIndent is ToJSON with each level indented by indent.
func ToJSONIndent(v Value, indent string) ([]byte, error) {
	b, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", indent); err != nil {
		return nil, fmt.Errorf("toon: indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.typ {
	case TypeNull:
		buf.WriteString(nullLiteral)
	case TypeBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case TypeNumber:
		buf.WriteString(jsonNumber(v.s))
	case TypeString:
		return writeJSONString(buf, v.s)
	case TypeArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TypeObject:
		buf.WriteByte('{')
		for i, f := range v.obj.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("toon: encoding JSON string: %w", err)
	}
	buf.Write(b)
	return nil
}

func jsonNumber(text string) string {
	if jsonNumberRegex.MatchString(text) {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || text == nanText || text == posInfText || text == negInfText {
		return nullLiteral
	}
	return formatFloat(f)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return ToJSON(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	val, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
