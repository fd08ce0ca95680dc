package field

import (
	"fmt"
	"regexp"
)

// Kind is the value type of a corpus field. Every kind maps to an encoded,
// byte-comparable string in storage; keyword fields are stored as-is.
type Kind string

// Field kind constants.
const (
	Keyword   Kind = "keyword"
	Integer   Kind = "integer"
	Timestamp Kind = "timestamp"
	Date      Kind = "date"
)

// IsValid checks if the kind is supported.
func (k Kind) IsValid() bool {
	switch k {
	case Keyword, Integer, Timestamp, Date:
		return true
	}
	return false
}

// nameRegex excludes hyphens: field names appear in @name query syntax
// where a hyphen reads as negation.
var nameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var reservedFieldNames = map[string]bool{
	"id": true,
}

// Field is an immutable value object describing a corpus field.
type Field struct {
	name string
	kind Kind
}

// New validates and creates a Field.
// Name: letter first, then alphanumerics/underscores, max 64 chars, not reserved.
func New(name string, kind Kind) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > 64 {
		return Field{}, fmt.Errorf("field name %q too long (max 64)", name)
	}
	if !nameRegex.MatchString(name) {
		return Field{}, fmt.Errorf("field name %q must start with a letter and contain only letters, digits and underscores", name)
	}
	if reservedFieldNames[name] {
		return Field{}, fmt.Errorf("field name %q is reserved", name)
	}
	if !kind.IsValid() {
		return Field{}, fmt.Errorf("invalid field kind %q for %q", kind, name)
	}
	return Field{name: name, kind: kind}, nil
}

// Reconstruct creates a Field without validation (storage hydration).
func Reconstruct(name string, kind Kind) Field {
	return Field{name: name, kind: kind}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldKind returns the field's value kind.
func (f Field) FieldKind() Kind { return f.kind }

// Encodable reports whether values of this field pass through the codec
// or time encoders before storage. Keyword values are stored raw.
func (f Field) Encodable() bool { return f.kind != Keyword }
