package physics3

import (
	"bytes"
	"encoding/json"
	"io"
)

// Marshal encodes the document in the external shape. Keys are written in
// schema order, empty lists as [], and an absent Normalization is omitted.
// A nil Source or Destination is reported as a *SchemaError.
func Marshal(p *Physics3) ([]byte, error) {
	o, err := encodeObject(documentFields, p, "")
	if err != nil {
		return nil, err
	}
	return json.Marshal(o)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(p *Physics3, prefix, indent string) ([]byte, error) {
	data, err := Marshal(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the document to w followed by a newline.
func Encode(w io.Writer, p *Physics3, indent string) error {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = Marshal(p)
	} else {
		data, err = MarshalIndent(p, "", indent)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// MarshalJSON implements json.Marshaler.
func (p Physics3) MarshalJSON() ([]byte, error) {
	return Marshal(&p)
}
