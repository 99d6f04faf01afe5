package resource

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrNotFound = errors.New("record not found")

// FieldError reports which document field failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindList
)

// Field describes one document field of a generic entity: its type, whether
// it is required, its literal default and any enum or numeric constraints.
type Field struct {
	Name      string
	Kind      Kind
	Required  bool
	Default   any
	Enum      []string
	Lowercase bool
	Min       *float64
	Max       *float64
	Integer   bool
}

// Definition declares a generic entity: the route segment it is served
// under, the shared-table collection name, its fields and which fields the
// list operation filters on (exact match and case-insensitive substring).
type Definition struct {
	Name       string
	Collection string
	Fields     []Field
	IDFilter   string
	NameFilter string
}

func (d Definition) field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// protected keys are always server-managed and stripped from client input.
var protectedKeys = []string{"id", "createdAt", "updatedAt"}

func isProtected(key string) bool {
	for _, p := range protectedKeys {
		if p == key {
			return true
		}
	}
	return false
}

// BuildCreate assembles a new document from client input: unknown and
// protected keys are dropped, defaults applied, and every field validated.
func (d Definition) BuildCreate(input map[string]any) (map[string]any, error) {
	doc := map[string]any{}

	for _, f := range d.Fields {
		v, present := input[f.Name]
		if !present || v == nil {
			if f.Default != nil {
				doc[f.Name] = f.Default
			}
			continue
		}

		coerced, err := coerce(f, v)
		if err != nil {
			return nil, err
		}
		doc[f.Name] = coerced
	}

	if err := d.checkRequired(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplyPatch merges the present input keys over the existing document and
// re-validates. Unknown and protected keys are ignored.
func (d Definition) ApplyPatch(doc, input map[string]any) (map[string]any, error) {
	merged := map[string]any{}
	for k, v := range doc {
		merged[k] = v
	}

	for k, v := range input {
		if isProtected(k) {
			continue
		}
		f, ok := d.field(k)
		if !ok {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		coerced, err := coerce(f, v)
		if err != nil {
			return nil, err
		}
		merged[k] = coerced
	}

	if err := d.checkRequired(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (d Definition) checkRequired(doc map[string]any) error {
	for _, f := range d.Fields {
		if !f.Required {
			continue
		}
		v, ok := doc[f.Name]
		if !ok {
			return &FieldError{Field: f.Name, Message: "is required"}
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return &FieldError{Field: f.Name, Message: "is required"}
		}
	}
	return nil
}

func coerce(f Field, v any) (any, error) {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, &FieldError{Field: f.Name, Message: "must be a string"}
		}
		s = strings.TrimSpace(s)
		if f.Lowercase {
			s = strings.ToLower(s)
		}
		if len(f.Enum) > 0 && !containsString(f.Enum, s) {
			return nil, &FieldError{Field: f.Name,
				Message: "must be one of " + strings.Join(f.Enum, ", ")}
		}
		return s, nil

	case KindNumber:
		n, ok := v.(float64)
		if !ok {
			return nil, &FieldError{Field: f.Name, Message: "must be a number"}
		}
		if f.Min != nil && n < *f.Min {
			return nil, &FieldError{Field: f.Name,
				Message: fmt.Sprintf("must be at least %g", *f.Min)}
		}
		if f.Max != nil && n > *f.Max {
			return nil, &FieldError{Field: f.Name,
				Message: fmt.Sprintf("cannot exceed %g", *f.Max)}
		}
		if f.Integer && n != math.Trunc(n) {
			return nil, &FieldError{Field: f.Name, Message: "must be an integer"}
		}
		return n, nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, &FieldError{Field: f.Name, Message: "must be a boolean"}
		}
		return b, nil

	case KindList:
		l, ok := v.([]any)
		if !ok {
			return nil, &FieldError{Field: f.Name, Message: "must be an array"}
		}
		return l, nil
	}

	return v, nil
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
