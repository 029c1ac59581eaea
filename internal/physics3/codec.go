package physics3

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// field maps one external key of record type T onto its Go field. The tables
// built from it drive validation, decoding and encoding, so a rename is
// declared once.
type field[T any] struct {
	key      string // external JSON key
	name     string // internal name, for documentation and diagnostics
	required bool
	// schema describes the wire value for the validator.
	schema func(strict bool) *openapi3.Schema
	// fallback is applied when an optional key is absent.
	fallback func(dst *T)
	decode   func(d *decoder, v any, path string, dst *T) error
	// encode returns the wire value, or false to omit the key.
	encode func(src *T, path string) (any, bool, error)
}

type decoder struct {
	strict bool
}

// decodeObject projects a validated object onto dst.
func decodeObject[T any](d *decoder, v any, path string, fields []field[T], dst *T) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return mismatch(path, "object", v)
	}
	for _, f := range fields {
		raw, ok := obj[f.key]
		if !ok {
			if f.fallback != nil {
				f.fallback(dst)
			}
			continue
		}
		if err := f.decode(d, raw, join(path, f.key), dst); err != nil {
			return err
		}
	}
	return nil
}

// decodeArray always returns a non-nil slice, even for an empty array.
func decodeArray[E any](d *decoder, v any, path string, elem func(d *decoder, v any, path string, dst *E) error) ([]E, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "array", v)
	}
	out := make([]E, len(arr))
	for i, item := range arr {
		if err := elem(d, item, index(path, i), &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) integer(v any, path string) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, mismatch(path, "non-negative integer", v)
	}
	i, err := strconv.ParseInt(string(n), 10, strconv.IntSize)
	if err != nil || i < 0 {
		return 0, &SchemaError{Path: path, Expected: "non-negative integer", Got: "number " + string(n)}
	}
	return int(i), nil
}

func (d *decoder) float(v any, path string) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, mismatch(path, "number", v)
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, &SchemaError{Path: path, Expected: "finite number", Got: "number " + string(n)}
	}
	return f, nil
}

func (d *decoder) str(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, "string", v)
	}
	return s, nil
}

func (d *decoder) boolean(v any, path string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(path, "bool", v)
	}
	return b, nil
}

func (d *decoder) physicsType(v any, path string) (Type, error) {
	s, err := d.str(v, path)
	if err != nil {
		return 0, err
	}
	t, ok := ParseType(s)
	if !ok {
		return 0, &UnknownVariantError{Path: path, Field: "Type", Value: s, Known: append([]string(nil), typeNames[:]...)}
	}
	return t, nil
}

func (d *decoder) target(v any, path string) (Target, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch(path, "object", v)
	}
	tag, _ := obj[targetTagKey].(string)
	decode, ok := targetDecoders[TargetKind(tag)]
	if !ok {
		return nil, &UnknownVariantError{Path: join(path, targetTagKey), Field: targetTagKey, Value: tag, Known: targetKinds()}
	}
	return decode(d, obj, path)
}

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number:
		return "number " + string(v)
	case float64:
		return "number " + strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func mismatch(path, expected string, v any) error {
	return &SchemaError{Path: path, Expected: expected, Got: describe(v)}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// object is an encoded record whose keys keep table order.
type object []member

type member struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeObject[T any](fields []field[T], src *T, path string) (object, error) {
	out := make(object, 0, len(fields))
	for _, f := range fields {
		v, ok, err := f.encode(src, join(path, f.key))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, member{key: f.key, value: v})
		}
	}
	return out, nil
}

func encodeArray[E any](fields []field[E], src []E, path string) ([]object, error) {
	out := make([]object, len(src))
	for i := range src {
		o, err := encodeObject(fields, &src[i], index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}

func encodeTarget(t Target, path string) (object, error) {
	switch t := t.(type) {
	case ParameterTarget:
		return encodeObject(parameterFields, &t, path)
	case *ParameterTarget:
		if t != nil {
			return encodeObject(parameterFields, t, path)
		}
	}
	return nil, &SchemaError{Path: path, Expected: "target", Got: "null"}
}

// Field table constructors.

func intField[T any](key, name string, get func(*T) *int) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(bool) *openapi3.Schema { return openapi3.NewIntegerSchema().WithMin(0) },
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.integer(v, path)
			return err
		},
		encode: func(src *T, _ string) (any, bool, error) { return *get(src), true, nil },
	}
}

func floatField[T any](key, name string, get func(*T) *float64) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(bool) *openapi3.Schema { return openapi3.NewFloat64Schema() },
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.float(v, path)
			return err
		},
		encode: func(src *T, _ string) (any, bool, error) { return *get(src), true, nil },
	}
}

func stringField[T any](key, name string, get func(*T) *string) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(bool) *openapi3.Schema { return openapi3.NewStringSchema() },
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.str(v, path)
			return err
		},
		encode: func(src *T, _ string) (any, bool, error) { return *get(src), true, nil },
	}
}

func boolField[T any](key, name string, get func(*T) *bool) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(bool) *openapi3.Schema { return openapi3.NewBoolSchema() },
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.boolean(v, path)
			return err
		},
		encode: func(src *T, _ string) (any, bool, error) { return *get(src), true, nil },
	}
}

func typeField[T any](key, name string, get func(*T) *Type) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(bool) *openapi3.Schema { return enumSchema(typeNames[:]) },
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.physicsType(v, path)
			return err
		},
		encode: func(src *T, _ string) (any, bool, error) { return get(src).String(), true, nil },
	}
}

func targetField[T any](key, name string, get func(*T) *Target) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: targetSchema,
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = d.target(v, path)
			return err
		},
		encode: func(src *T, path string) (any, bool, error) {
			o, err := encodeTarget(*get(src), path)
			return o, true, err
		},
	}
}

func objectField[T, F any](key, name string, fields []field[F], get func(*T) *F) field[T] {
	return field[T]{
		key: key, name: name, required: true,
		schema: func(strict bool) *openapi3.Schema { return objectSchema(fields, strict) },
		decode: func(d *decoder, v any, path string, dst *T) error {
			return decodeObject(d, v, path, fields, get(dst))
		},
		encode: func(src *T, path string) (any, bool, error) {
			o, err := encodeObject(fields, get(src), path)
			return o, true, err
		},
	}
}

// arrayField declares a list of records. When optional, an absent key falls
// back to an empty list.
func arrayField[T, E any](key, name string, required bool, fields []field[E], get func(*T) *[]E) field[T] {
	f := field[T]{
		key: key, name: name, required: required,
		schema: func(strict bool) *openapi3.Schema {
			return openapi3.NewArraySchema().WithItems(objectSchema(fields, strict))
		},
		decode: func(d *decoder, v any, path string, dst *T) (err error) {
			*get(dst), err = decodeArray(d, v, path, func(d *decoder, v any, path string, e *E) error {
				return decodeObject(d, v, path, fields, e)
			})
			return err
		},
		encode: func(src *T, path string) (any, bool, error) {
			a, err := encodeArray(fields, *get(src), path)
			return a, true, err
		},
	}
	if !required {
		f.fallback = func(dst *T) { *get(dst) = []E{} }
	}
	return f
}

func optional[T any](f field[T], fallback func(dst *T)) field[T] {
	f.required = false
	f.fallback = fallback
	return f
}
