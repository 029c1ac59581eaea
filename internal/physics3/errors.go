package physics3

import (
	"errors"
	"fmt"
	"strings"
)

// Decode error classes, matched with errors.Is.
var (
	// ErrSyntax indicates input that is not well-formed JSON.
	ErrSyntax = errors.New("physics3: malformed JSON")

	// ErrSchema indicates fields or value types that do not fit the document shape.
	ErrSchema = errors.New("physics3: document does not match schema")

	// ErrUnknownVariant indicates an enum or tagged-union value outside the known set.
	ErrUnknownVariant = errors.New("physics3: unknown variant")
)

// SyntaxError reports malformed JSON text.
type SyntaxError struct {
	// Offset is the byte offset at which the problem was detected.
	Offset int64
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("physics3: syntax error at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// SchemaError reports a structural mismatch at Path.
type SchemaError struct {
	Path      string
	Field     string
	Expected  string
	Got       string
	Missing   bool
	Unknown   bool
	Duplicate bool
}

func (e *SchemaError) Error() string {
	switch {
	case e.Missing:
		return fmt.Sprintf("physics3: %s: missing field %q", locate(e.Path), e.Field)
	case e.Unknown:
		return fmt.Sprintf("physics3: %s: unknown field %q", locate(e.Path), e.Field)
	case e.Duplicate:
		return fmt.Sprintf("physics3: %s: duplicate field %q", locate(e.Path), e.Field)
	default:
		return fmt.Sprintf("physics3: %s: expected %s, got %s", locate(e.Path), e.Expected, e.Got)
	}
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// UnknownVariantError reports an unrecognized enum tag.
type UnknownVariantError struct {
	Path  string
	Field string
	Value string
	Known []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("physics3: %s: unknown %s %q, expected one of %s",
		locate(e.Path), e.Field, e.Value, strings.Join(e.Known, ", "))
}

func (e *UnknownVariantError) Is(target error) bool { return target == ErrUnknownVariant }

func locate(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
