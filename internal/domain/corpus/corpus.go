package corpus

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MirrorSuffix is appended to an integer field's name to form its NUMERIC
// mirror attribute in the index.
const MirrorSuffix = "_num"

// MirrorName returns the index attribute holding the raw numeric copy of
// an encoded integer field.
func MirrorName(fieldName string) string { return fieldName + MirrorSuffix }

// CodecParams carries the encoding domain of a corpus's integer fields.
// Deep validation (10^width span arithmetic) happens where the codec is
// constructed; the aggregate checks structure only.
type CodecParams struct {
	Width int
	Min   int64
	Max   int64
}

// Corpus is the verified-collection aggregate (immutable value object).
type Corpus struct {
	name          string
	fields        []field.Field
	codec         CodecParams
	numericMirror bool
	createdAt     int64
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("corpus name is required")
	}
	if len(name) > 64 {
		return fmt.Errorf("corpus name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("corpus name must be alphanumeric with underscores and hyphens")
	}
	return nil
}

func validateFields(fields []field.Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	if len(fields) > 64 {
		return fmt.Errorf("too many fields (max 64)")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return fmt.Errorf("duplicate field name: %s", f.Name())
		}
		if strings.HasSuffix(f.Name(), MirrorSuffix) {
			return fmt.Errorf("field name %s collides with numeric mirror attributes (suffix %s)", f.Name(), MirrorSuffix)
		}
		seen[f.Name()] = true
	}
	return nil
}

func validateCodec(p CodecParams) error {
	if p.Width < 1 || p.Width > 20 {
		return fmt.Errorf("codec width must be in [1, 20], got %d", p.Width)
	}
	if p.Min > p.Max {
		return fmt.Errorf("codec min %d exceeds max %d", p.Min, p.Max)
	}
	return nil
}

// New validates and creates a Corpus.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars. Fields: 1-64, unique names, no
// mirror-suffix collisions. Codec: structural bounds only.
func New(name string, fields []field.Field, codec CodecParams, numericMirror bool) (Corpus, error) {
	if err := validateName(name); err != nil {
		return Corpus{}, err
	}
	if err := validateFields(fields); err != nil {
		return Corpus{}, err
	}
	if err := validateCodec(codec); err != nil {
		return Corpus{}, err
	}

	return Corpus{
		name:          name,
		fields:        fields,
		codec:         codec,
		numericMirror: numericMirror,
		createdAt:     time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Corpus without validation (storage hydration).
func Reconstruct(
	name string, fields []field.Field, codec CodecParams,
	numericMirror bool, createdAt int64,
) Corpus {
	return Corpus{
		name:          name,
		fields:        fields,
		codec:         codec,
		numericMirror: numericMirror,
		createdAt:     createdAt,
	}
}

// Name returns the corpus name.
func (c Corpus) Name() string { return c.name }

// Fields returns the field definitions.
func (c Corpus) Fields() []field.Field { return c.fields }

// Codec returns the encoding domain for integer fields.
func (c Corpus) Codec() CodecParams { return c.codec }

// NumericMirror reports whether integer fields carry a raw NUMERIC copy.
func (c Corpus) NumericMirror() bool { return c.numericMirror }

// CreatedAt returns the creation timestamp (unix millis).
func (c Corpus) CreatedAt() int64 { return c.createdAt }

// HasField checks if a field with the given name and kind exists.
func (c Corpus) HasField(name string, k field.Kind) bool {
	for _, f := range c.fields {
		if f.Name() == name && f.FieldKind() == k {
			return true
		}
	}
	return false
}

// FieldByName looks up a field by name.
func (c Corpus) FieldByName(name string) (field.Field, bool) {
	for _, f := range c.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}

// IntegerFields returns the fields whose values go through the codec.
func (c Corpus) IntegerFields() []field.Field {
	var out []field.Field
	for _, f := range c.fields {
		if f.FieldKind() == field.Integer {
			out = append(out, f)
		}
	}
	return out
}
