package toon

import (
	"fmt"
	"io"
)

// Encoder writes TOON documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts *Options
}

// NewEncoder returns an encoder that writes to w using the default options.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetOptions replaces the options used by later calls to Encode.
func (e *Encoder) SetOptions(opts *Options) {
	e.opts = opts
}

// Encode writes the TOON encoding of v followed by a newline.
func (e *Encoder) Encode(v interface{}) error {
	s, err := EncodeWithOptions(v, e.opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, s+"\n"); err != nil {
		return fmt.Errorf("toon: write: %w", err)
	}
	return nil
}

// Decoder reads a TOON document from an input stream.
type Decoder struct {
	r    io.Reader
	opts *Options
}

// NewDecoder returns a decoder that reads from r using the default options.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// SetOptions replaces the options used by later calls to Decode.
func (d *Decoder) SetOptions(opts *Options) {
	d.opts = opts
}

// Decode reads the rest of the stream and decodes it as one document.
func (d *Decoder) Decode() (Value, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return Value{}, fmt.Errorf("toon: read: %w", err)
	}
	return DecodeWithOptions(string(data), d.opts)
}
