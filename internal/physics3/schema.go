package physics3

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// The document shape is checked by an OpenAPI schema generated from the
// field tables. Projection onto the Go types runs only on a tree that passed.

var (
	lenientSchema = sync.OnceValue(func() *openapi3.Schema { return objectSchema(documentFields, false) })
	strictSchema  = sync.OnceValue(func() *openapi3.Schema { return objectSchema(documentFields, true) })
)

// DocumentSchema returns the OpenAPI schema a document is validated against.
// With strict set, every object rejects additional properties. The returned
// schema is shared and must not be modified.
func DocumentSchema(strict bool) *openapi3.Schema {
	if strict {
		return strictSchema()
	}
	return lenientSchema()
}

func objectSchema[T any](fields []field[T], strict bool) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, f := range fields {
		s.WithProperty(f.key, f.schema(strict))
		if f.required {
			s.Required = append(s.Required, f.key)
		}
	}
	if strict {
		s.WithoutAdditionalProperties()
	}
	return s
}

func enumSchema(values []string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

// targetSchema describes the tagged Target object. Parameter is the only
// variant, so its table is the object shape and the tag is an enum.
func targetSchema(strict bool) *openapi3.Schema {
	s := objectSchema(parameterFields, strict)
	s.WithProperty(targetTagKey, enumSchema(targetKinds()))
	return s
}

// validate checks tree against the document schema and reports the
// shallowest violation, ties going to the first one found.
func (d *decoder) validate(tree any) error {
	err := DocumentSchema(d.strict).VisitJSON(plain(tree), openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var (
		best  error
		depth = -1
	)
	for _, se := range flatten(err) {
		issue, n := schemaIssue(se)
		if depth < 0 || n < depth {
			best, depth = issue, n
		}
	}
	if best == nil {
		return &SchemaError{Expected: "document", Got: err.Error()}
	}
	return best
}

func flatten(err error) []*openapi3.SchemaError {
	var me openapi3.MultiError
	if errors.As(err, &me) {
		var out []*openapi3.SchemaError
		for _, e := range me {
			out = append(out, flatten(e)...)
		}
		return out
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return []*openapi3.SchemaError{se}
	}
	return nil
}

// schemaIssue converts one schema violation and returns the depth of the
// offending member; a missing or unknown key sits one level below its object.
func schemaIssue(se *openapi3.SchemaError) (error, int) {
	ptr := se.JSONPointer()
	switch se.SchemaField {
	case "required":
		key := missingKey(se)
		if n := len(ptr); n > 0 && ptr[n-1] == key {
			ptr = ptr[:n-1]
		}
		return &SchemaError{Path: pointerPath(ptr), Field: key, Missing: true}, len(ptr) + 1
	case "properties", "additionalProperties":
		return &SchemaError{Path: pointerPath(ptr), Field: unknownKey(se), Unknown: true}, len(ptr) + 1
	case "enum":
		if s, ok := se.Value.(string); ok && len(ptr) > 0 {
			return &UnknownVariantError{
				Path:  pointerPath(ptr),
				Field: ptr[len(ptr)-1],
				Value: s,
				Known: enumValues(se.Schema),
			}, len(ptr)
		}
	}
	return &SchemaError{Path: pointerPath(ptr), Expected: expected(se.Schema), Got: describe(se.Value)}, len(ptr)
}

func missingKey(se *openapi3.SchemaError) string {
	if se.Schema == nil {
		return ""
	}
	obj, _ := se.Value.(map[string]any)
	for _, k := range se.Schema.Required {
		if _, ok := obj[k]; !ok {
			return k
		}
	}
	return ""
}

func unknownKey(se *openapi3.SchemaError) string {
	if se.Schema == nil {
		return ""
	}
	obj, _ := se.Value.(map[string]any)
	var unknown []string
	for k := range obj {
		if _, ok := se.Schema.Properties[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return ""
	}
	sort.Strings(unknown)
	return unknown[0]
}

func enumValues(s *openapi3.Schema) []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func expected(s *openapi3.Schema) string {
	if s == nil || s.Type == nil {
		return "value"
	}
	switch {
	case s.Type.Is(openapi3.TypeInteger):
		return "non-negative integer"
	case s.Type.Is(openapi3.TypeNumber):
		return "number"
	case s.Type.Is(openapi3.TypeBoolean):
		return "bool"
	case s.Type.Is(openapi3.TypeString):
		return "string"
	case s.Type.Is(openapi3.TypeArray):
		return "array"
	case s.Type.Is(openapi3.TypeObject):
		return "object"
	}
	return "value"
}

// pointerPath renders a JSON pointer as PhysicsSettings[0].Input[1].Weight.
func pointerPath(ptr []string) string {
	var b strings.Builder
	for _, p := range ptr {
		if _, err := strconv.Atoi(p); err == nil && b.Len() > 0 {
			b.WriteString("[" + p + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// plain rewrites json.Number leaves as float64 for the validator. Numbers
// outside float64 range become zero here and are rejected during projection.
func plain(v any) any {
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0.0
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}
		return out
	}
	return v
}
