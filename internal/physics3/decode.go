package physics3

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// maxDepth bounds object and array nesting.
const maxDepth = 10000

// Option configures decoding.
type Option func(*decoder)

// WithStrict rejects object keys that are not part of the schema. By default
// unknown keys are ignored.
func WithStrict() Option {
	return func(d *decoder) { d.strict = true }
}

// Decode reads a single .physics3.json document from r. The input must be
// valid UTF-8, object keys must be unique and trailing content after the
// document is rejected.
func Decode(r io.Reader, opts ...Option) (*Physics3, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("physics3: read: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, &SyntaxError{Offset: invalidUTF8(data), Msg: "invalid UTF-8"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	raw, err := readValue(dec, "", 0)
	if err != nil {
		return nil, readError(err, dec.InputOffset())
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, &SyntaxError{Offset: dec.InputOffset(), Msg: "trailing data after document"}
		}
		return nil, readError(err, dec.InputOffset())
	}

	if err := d.validate(raw); err != nil {
		return nil, err
	}
	var doc Physics3
	if err := decodeObject(d, raw, "", documentFields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse decodes a document held in a string.
func Parse(s string, opts ...Option) (*Physics3, error) {
	return Decode(strings.NewReader(s), opts...)
}

// Unmarshal decodes a document held in a byte slice. The result does not
// reference data.
func Unmarshal(data []byte, opts ...Option) (*Physics3, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// UnmarshalJSON implements json.Unmarshaler with the default options.
func (p *Physics3) UnmarshalJSON(data []byte) error {
	doc, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*p = *doc
	return nil
}

// readValue builds the generic tree token by token so that a repeated key
// can be reported instead of silently overwriting the earlier value.
func readValue(dec *json.Decoder, path string, depth int) (any, error) {
	if depth > maxDepth {
		return nil, &SyntaxError{Offset: dec.InputOffset(), Msg: "exceeded max depth"}
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		obj := map[string]any{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			if _, dup := obj[key]; dup {
				return nil, &SchemaError{Path: path, Field: key, Duplicate: true}
			}
			v, err := readValue(dec, join(path, key), depth+1)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case json.Delim('['):
		arr := []any{}
		for i := 0; dec.More(); i++ {
			v, err := readValue(dec, index(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return tok, nil
}

func invalidUTF8(data []byte) int64 {
	for i := 0; i < len(data); {
		r, n := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && n <= 1 {
			return int64(i)
		}
		i += n
	}
	return int64(len(data))
}

func readError(err error, offset int64) error {
	var (
		syn    *json.SyntaxError
		ours   *SyntaxError
		schema *SchemaError
	)
	switch {
	case errors.As(err, &ours), errors.As(err, &schema):
		return err
	case errors.As(err, &syn):
		return &SyntaxError{Offset: syn.Offset, Msg: syn.Error(), Err: err}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &SyntaxError{Offset: offset, Msg: "unexpected end of input", Err: err}
	default:
		return fmt.Errorf("physics3: read: %w", err)
	}
}
