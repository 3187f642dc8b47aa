// Package toon implements the TOON (Token-Oriented Object Notation) format.
// TOON is a line-oriented, indentation-based text format that encodes the JSON data model
// with explicit structure and minimal quoting.
//
// Arrays of uniform objects are written as a header plus one delimited row per
// element:
//
//	users[2]{id,name}:
//	  1,alice
//	  2,bob
//
// Decoding is strict by default: counts, indentation and quoting are checked
// and every violation is reported as an *Error carrying its position.
package toon

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Delimiter separates inline values, tabular rows and tabular field names.
type Delimiter byte

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

func (d Delimiter) valid() bool {
	return d == Comma || d == Tab || d == Pipe
}

// String returns the delimiter name.
func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	}
	return fmt.Sprintf("Delimiter(%q)", byte(d))
}

// ParseDelimiter accepts "comma", "tab" or "pipe", or the character itself.
func ParseDelimiter(name string) (Delimiter, error) {
	switch name {
	case "comma", ",":
		return Comma, nil
	case "tab", "\t", `\t`:
		return Tab, nil
	case "pipe", "|":
		return Pipe, nil
	}
	return 0, &Error{Kind: DelimiterError, Msg: fmt.Sprintf("unsupported delimiter %q", name)}
}

// Options configures encoding and decoding.
type Options struct {
	Indent       int       // Spaces per indentation level (default: 2)
	Delimiter    Delimiter // Inline and tabular separator (default: Comma)
	Lenient      bool      // Skip strict structural validation when decoding
	LengthMarker bool      // Write array lengths as [#N]
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{Indent: 2, Delimiter: Comma}
}

// resolve fills in defaults and rejects unusable settings. The caller's
// options are left untouched.
func (o *Options) resolve() (Options, error) {
	if o == nil {
		return *DefaultOptions(), nil
	}
	r := *o
	if r.Indent < 0 {
		return r, fmt.Errorf("toon: negative indent %d", r.Indent)
	}
	if r.Indent == 0 {
		r.Indent = 2
	}
	if r.Delimiter == 0 {
		r.Delimiter = Comma
	}
	if !r.Delimiter.valid() {
		return r, &Error{Kind: DelimiterError, Msg: fmt.Sprintf("unsupported delimiter %q", byte(r.Delimiter))}
	}
	return r, nil
}

// Encode converts v to TOON using the default options. v may be a Value or
// any Go value accepted by FromAny.
func Encode(v interface{}) (string, error) {
	return EncodeWithOptions(v, nil)
}

// EncodeWithOptions converts v to TOON with custom options.
func EncodeWithOptions(v interface{}, opts *Options) (string, error) {
	o, err := opts.resolve()
	if err != nil {
		return "", err
	}
	val, err := FromAny(v)
	if err != nil {
		return "", err
	}
	return newEncoder(o).encode(val), nil
}

// Decode parses TOON text using the default options.
func Decode(data string) (Value, error) {
	return DecodeWithOptions(data, nil)
}

// DecodeWithOptions parses TOON text with custom options. Empty input
// decodes to an empty object.
func DecodeWithOptions(data string, opts *Options) (Value, error) {
	o, err := opts.resolve()
	if err != nil {
		return Value{}, err
	}
	return newDecoder(o).decode(data)
}

// Marshal encodes v with the default options.
func Marshal(v interface{}) ([]byte, error) {
	s, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Unmarshal decodes data and stores the result in out, which is filled the
// way encoding/json would fill it.
func Unmarshal(data []byte, out interface{}) error {
	v, err := Decode(string(data))
	if err != nil {
		return err
	}
	b, err := ToJSON(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("toon: unmarshal: %w", err)
	}
	return nil
}
